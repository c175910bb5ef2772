// Package activity implements the client half of the mini app handshake:
// a strictly ordered ready/authorize/exchange/authenticate sequence driven
// against the vendor embedded SDK.
package activity

import (
	"context"

	"github.com/collabland/discord-miniapp-framework/internal/config"
)

// PromptNone requests a non-interactive authorize prompt; the hosting
// shell reuses a previous consent where possible.
const PromptNone = "none"

type AuthorizeRequest struct {
	ClientID     string   `json:"client_id"`
	ResponseType string   `json:"response_type"`
	Prompt       string   `json:"prompt"`
	Scopes       []string `json:"scope"`
}

// SDK is the embedded SDK surface the authentication flow depends on.
// Every call suspends until the hosting shell responds; no timeouts are
// imposed here beyond what the caller's context carries.
type SDK interface {
	// Ready blocks until the hosting shell signals the iframe is
	// attached and communicating.
	Ready(ctx context.Context) error

	// Authorize runs the authorize command and returns a single-use
	// authorization code. It fails when the user denies authorization
	// or the host does not respond.
	Authorize(ctx context.Context, req AuthorizeRequest) (string, error)

	// Authenticate presents the access token to the hosting shell and
	// returns the authenticated user profile.
	Authenticate(ctx context.Context, accessToken string) (config.User, error)
}
