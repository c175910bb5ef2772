package activity

import (
	"context"
	"errors"
	"time"

	"github.com/collabland/discord-miniapp-framework/internal/cdn"
	"github.com/collabland/discord-miniapp-framework/internal/config"

	"github.com/google/uuid"
)

// DiscordAPI is the subset of the provider REST API the client calls
// directly with its own token, after the handshake.
type DiscordAPI interface {
	CurrentUserGuilds(ctx context.Context, accessToken string) ([]config.Guild, error)
	Channel(ctx context.Context, accessToken string, channelID string) (config.Channel, error)
}

// Session owns the authenticated state for one client session. It is
// created only by a successful flow; there is no refresh, the session
// lasts until the client reloads.
type Session struct {
	ID        string
	User      config.User
	StartedAt time.Time

	accessToken string
	api         DiscordAPI
}

func newSession(user config.User, accessToken string, api DiscordAPI) *Session {
	return &Session{
		ID:          uuid.NewString(),
		User:        user,
		StartedAt:   time.Now(),
		accessToken: accessToken,
		api:         api,
	}
}

// AccessToken returns the bearer token for direct provider API calls.
func (s *Session) AccessToken() string {
	return s.accessToken
}

// AvatarURL builds the CDN avatar URL for the session user.
func (s *Session) AvatarURL(size ...int) string {
	return cdn.UserAvatarURL(s.User.ID, s.User.Avatar, size...)
}

// Guilds lists the guilds of the session user.
func (s *Session) Guilds(ctx context.Context) ([]config.Guild, error) {
	if s.api == nil {
		return nil, errors.New("no provider API client configured for this session")
	}
	return s.api.CurrentUserGuilds(ctx, s.accessToken)
}

// VoiceChannel fetches the voice channel hosting the activity.
func (s *Session) VoiceChannel(ctx context.Context, channelID string) (config.Channel, error) {
	if s.api == nil {
		return config.Channel{}, errors.New("no provider API client configured for this session")
	}

	channel, err := s.api.Channel(ctx, s.accessToken, channelID)

	if err != nil {
		return config.Channel{}, err
	}

	if channel.Type != config.ChannelTypeGuildVoice {
		return config.Channel{}, errors.New("channel is not a voice channel")
	}

	return channel, nil
}
