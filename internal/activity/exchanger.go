package activity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// TokenExchanger swaps an authorization code for an access token.
type TokenExchanger interface {
	Exchange(ctx context.Context, code string) (string, error)
}

// HTTPTokenExchanger posts the code to the token exchange server, normally
// on the same origin as the client.
type HTTPTokenExchanger struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPTokenExchanger(baseURL string) *HTTPTokenExchanger {
	return &HTTPTokenExchanger{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Client:  &http.Client{},
	}
}

func (e *HTTPTokenExchanger) Exchange(ctx context.Context, code string) (string, error) {
	body, err := json.Marshal(map[string]string{"code": code})

	if err != nil {
		return "", fmt.Errorf("failed to encode exchange request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.BaseURL+"/api/token", bytes.NewReader(body))

	if err != nil {
		return "", fmt.Errorf("failed to create exchange request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	res, err := e.Client.Do(req)

	if err != nil {
		return "", fmt.Errorf("failed to reach token exchange server: %w", err)
	}

	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)

	if err != nil {
		return "", fmt.Errorf("failed to read exchange response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		var errorBody struct {
			Error string `json:"error"`
		}

		// best effort, the status alone is enough to fail on
		_ = json.Unmarshal(resBody, &errorBody)

		if errorBody.Error != "" {
			return "", fmt.Errorf("token exchange failed with status %d: %s", res.StatusCode, errorBody.Error)
		}

		return "", fmt.Errorf("token exchange failed with status %d", res.StatusCode)
	}

	var result struct {
		AccessToken string `json:"access_token"`
	}

	if err := json.Unmarshal(resBody, &result); err != nil {
		return "", fmt.Errorf("failed to decode exchange response: %w", err)
	}

	if result.AccessToken == "" {
		return "", fmt.Errorf("token exchange response did not contain an access token")
	}

	return result.AccessToken, nil
}
