package activity

import (
	"context"
	"fmt"

	"github.com/collabland/discord-miniapp-framework/internal/config"
)

type State string

const (
	StateIdle                  State = "idle"
	StateAwaitingReady         State = "awaiting_ready"
	StateAwaitingAuthorization State = "awaiting_authorization"
	StateExchangingToken       State = "exchanging_token"
	StateAuthenticating        State = "authenticating"
	StateAuthenticated         State = "authenticated"
	StateFailed                State = "failed"
)

type FlowConfig struct {
	ClientID string
	// Scopes defaults to the fixed activity scope set.
	Scopes []string
	// API optionally enables session queries against the provider API
	// after authentication.
	API DiscordAPI
}

// Flow runs the authentication handshake as an explicit state machine
// with single-direction transitions. A flow runs at most once; any
// failure is terminal and a new flow must be started by the caller. There
// is no retry at any step.
type Flow struct {
	config       FlowConfig
	sdk          SDK
	exchanger    TokenExchanger
	state        State
	err          error
	onTransition func(from State, to State)
}

func NewFlow(config FlowConfig, sdk SDK, exchanger TokenExchanger) *Flow {
	return &Flow{
		config:    config,
		sdk:       sdk,
		exchanger: exchanger,
		state:     StateIdle,
	}
}

// OnTransition registers an observer called on every state change, used
// by UIs to render progress and by tests to assert ordering. Must be set
// before Run.
func (f *Flow) OnTransition(fn func(from State, to State)) {
	f.onTransition = fn
}

func (f *Flow) State() State {
	return f.state
}

// Err returns the terminal failure, nil unless the flow is in StateFailed.
func (f *Flow) Err() error {
	return f.err
}

func (f *Flow) transition(to State) {
	from := f.state
	f.state = to
	if f.onTransition != nil {
		f.onTransition(from, to)
	}
}

func (f *Flow) fail(err error) error {
	f.err = err
	f.transition(StateFailed)
	return err
}

// Run executes the handshake: wait for the SDK ready signal, authorize,
// exchange the code, authenticate. The sequence is linear with no
// concurrent branches; the first failure short-circuits the rest.
func (f *Flow) Run(ctx context.Context) (*Session, error) {
	if f.state != StateIdle {
		return nil, fmt.Errorf("authentication flow already ran (state %s)", f.state)
	}

	scopes := f.config.Scopes
	if len(scopes) == 0 {
		scopes = config.ActivityScopes
	}

	f.transition(StateAwaitingReady)

	if err := f.sdk.Ready(ctx); err != nil {
		return nil, f.fail(fmt.Errorf("the embedded SDK did not become ready: %w", err))
	}

	f.transition(StateAwaitingAuthorization)

	code, err := f.sdk.Authorize(ctx, AuthorizeRequest{
		ClientID:     f.config.ClientID,
		ResponseType: "code",
		Prompt:       PromptNone,
		Scopes:       scopes,
	})

	if err != nil {
		return nil, f.fail(fmt.Errorf("authorization was denied or the host did not respond: %w", err))
	}

	f.transition(StateExchangingToken)

	accessToken, err := f.exchanger.Exchange(ctx, code)

	if err != nil {
		return nil, f.fail(fmt.Errorf("could not exchange the authorization code: %w", err))
	}

	f.transition(StateAuthenticating)

	user, err := f.sdk.Authenticate(ctx, accessToken)

	if err != nil {
		return nil, f.fail(fmt.Errorf("authentication with the hosting shell failed: %w", err))
	}

	session := newSession(user, accessToken, f.config.API)

	f.transition(StateAuthenticated)

	return session, nil
}
