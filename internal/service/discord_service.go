package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/collabland/discord-miniapp-framework/internal/config"

	"golang.org/x/oauth2"
)

// TokenExchangeResult is the narrowed response returned to the embedded
// client. Refresh token, scope and expiry from the provider are discarded
// before the response leaves this boundary.
type TokenExchangeResult struct {
	AccessToken string `json:"access_token"`
}

// ProviderError is an upstream rejection from the identity provider. The
// status and raw body are kept so the token endpoint can forward them
// verbatim.
type ProviderError struct {
	Status int
	Body   []byte
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider rejected the request with status %d", e.Status)
}

// Details parses the provider error body best-effort; an unparseable body
// yields an empty object rather than an error.
func (e *ProviderError) Details() map[string]any {
	details := make(map[string]any)
	if err := json.Unmarshal(e.Body, &details); err != nil {
		return map[string]any{}
	}
	return details
}

type DiscordServiceConfig struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	APIBaseURL   string
}

// DiscordService performs the confidential-client half of the OAuth flow
// and proxies bearer-token REST queries. It is the only component holding
// the client secret.
type DiscordService struct {
	config DiscordServiceConfig
	oauth  oauth2.Config
	client *http.Client
}

func NewDiscordService(config DiscordServiceConfig) *DiscordService {
	return &DiscordService{
		config: config,
	}
}

func (discord *DiscordService) Init() error {
	if discord.config.TokenURL == "" {
		discord.config.TokenURL = config.DiscordTokenURL
	}

	if discord.config.APIBaseURL == "" {
		discord.config.APIBaseURL = config.DiscordAPIBaseURL
	}

	discord.client = &http.Client{}
	discord.oauth = oauth2.Config{
		ClientID:     discord.config.ClientID,
		ClientSecret: discord.config.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL: discord.config.TokenURL,
			// Discord expects client_id/client_secret in the form body
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	return nil
}

// ExchangeCode exchanges a single-use authorization code for an access
// token. Provider rejections surface as *ProviderError; anything else is a
// transport failure.
func (discord *DiscordService) ExchangeCode(ctx context.Context, code string) (TokenExchangeResult, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, discord.client)

	token, err := discord.oauth.Exchange(ctx, code)

	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			return TokenExchangeResult{}, &ProviderError{
				Status: retrieveErr.Response.StatusCode,
				Body:   retrieveErr.Body,
			}
		}
		return TokenExchangeResult{}, fmt.Errorf("token exchange failed: %w", err)
	}

	return TokenExchangeResult{AccessToken: token.AccessToken}, nil
}

// CurrentUser fetches the profile of the user the token belongs to.
func (discord *DiscordService) CurrentUser(ctx context.Context, accessToken string) (config.User, error) {
	var user config.User
	err := discord.get(ctx, accessToken, "/users/@me", &user)
	return user, err
}

// CurrentUserGuilds lists the guilds of the user the token belongs to.
func (discord *DiscordService) CurrentUserGuilds(ctx context.Context, accessToken string) ([]config.Guild, error) {
	var guilds []config.Guild
	err := discord.get(ctx, accessToken, "/users/@me/guilds", &guilds)
	return guilds, err
}

// Channel fetches a single channel, typically the voice channel hosting
// the activity.
func (discord *DiscordService) Channel(ctx context.Context, accessToken string, channelID string) (config.Channel, error) {
	var channel config.Channel
	err := discord.get(ctx, accessToken, "/channels/"+url.PathEscape(channelID), &channel)
	return channel, err
}

func (discord *DiscordService) get(ctx context.Context, accessToken string, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, discord.config.APIBaseURL+path, nil)

	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)

	res, err := discord.client.Do(req)

	if err != nil {
		return fmt.Errorf("failed to perform request: %w", err)
	}

	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("request failed with status: %s", res.Status)
	}

	body, err := io.ReadAll(res.Body)

	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
