package activity_test

import (
	"context"
	"testing"

	"github.com/collabland/discord-miniapp-framework/internal/activity"
	"github.com/collabland/discord-miniapp-framework/internal/config"

	"gotest.tools/v3/assert"
)

type mockAPI struct {
	guilds  []config.Guild
	channel config.Channel

	lastToken string
}

func (m *mockAPI) CurrentUserGuilds(ctx context.Context, accessToken string) ([]config.Guild, error) {
	m.lastToken = accessToken
	return m.guilds, nil
}

func (m *mockAPI) Channel(ctx context.Context, accessToken string, channelID string) (config.Channel, error) {
	m.lastToken = accessToken
	return m.channel, nil
}

func runFlow(t *testing.T, api activity.DiscordAPI) *activity.Session {
	t.Helper()

	flow := activity.NewFlow(activity.FlowConfig{
		ClientID: "client-1",
		API:      api,
	}, &mockSDK{}, &mockExchanger{})

	session, err := flow.Run(context.Background())
	assert.NilError(t, err)

	return session
}

func TestSessionGuilds(t *testing.T) {
	api := &mockAPI{
		guilds: []config.Guild{{ID: "1", Name: "Guild One", Icon: "hash1"}},
	}

	session := runFlow(t, api)

	guilds, err := session.Guilds(context.Background())

	assert.NilError(t, err)
	assert.Equal(t, 1, len(guilds))
	assert.Equal(t, "Guild One", guilds[0].Name)

	// Queries use the session token
	assert.Equal(t, session.AccessToken(), api.lastToken)
}

func TestSessionVoiceChannel(t *testing.T) {
	api := &mockAPI{
		channel: config.Channel{ID: "c1", Name: "General", Type: config.ChannelTypeGuildVoice},
	}

	session := runFlow(t, api)

	channel, err := session.VoiceChannel(context.Background(), "c1")

	assert.NilError(t, err)
	assert.Equal(t, "General", channel.Name)

	// Non-voice channels are rejected
	api.channel = config.Channel{ID: "c2", Name: "general-text", Type: 0}

	_, err = session.VoiceChannel(context.Background(), "c2")
	assert.ErrorContains(t, err, "not a voice channel")
}

func TestSessionWithoutAPI(t *testing.T) {
	session := runFlow(t, nil)

	_, err := session.Guilds(context.Background())
	assert.ErrorContains(t, err, "no provider API client")

	_, err = session.VoiceChannel(context.Background(), "c1")
	assert.ErrorContains(t, err, "no provider API client")
}

func TestSessionAvatarURL(t *testing.T) {
	session := runFlow(t, nil)

	// mockSDK authenticates as user 42 with no avatar hash, 42 mod 5 = 2
	assert.Equal(t, "https://cdn.discordapp.com/embed/avatars/2.png", session.AvatarURL())
}
