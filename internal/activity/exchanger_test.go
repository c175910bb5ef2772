package activity_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/collabland/discord-miniapp-framework/internal/activity"

	"gotest.tools/v3/assert"
)

func TestHTTPTokenExchangerSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/token", r.URL.Path)

		var req map[string]string
		assert.NilError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "code-abc", req["code"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok_123"}`))
	}))
	defer server.Close()

	exchanger := activity.NewHTTPTokenExchanger(server.URL)

	token, err := exchanger.Exchange(context.Background(), "code-abc")

	assert.NilError(t, err)
	assert.Equal(t, "tok_123", token)
}

func TestHTTPTokenExchangerServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Authorization code is required"}`))
	}))
	defer server.Close()

	exchanger := activity.NewHTTPTokenExchanger(server.URL)

	_, err := exchanger.Exchange(context.Background(), "bad")

	assert.ErrorContains(t, err, "status 400")
	assert.ErrorContains(t, err, "Authorization code is required")
}

func TestHTTPTokenExchangerMissingToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	exchanger := activity.NewHTTPTokenExchanger(server.URL)

	_, err := exchanger.Exchange(context.Background(), "code")

	assert.ErrorContains(t, err, "did not contain an access token")
}

func TestHTTPTokenExchangerUnreachable(t *testing.T) {
	exchanger := activity.NewHTTPTokenExchanger("http://127.0.0.1:1")

	_, err := exchanger.Exchange(context.Background(), "code")

	assert.ErrorContains(t, err, "failed to reach token exchange server")
}
