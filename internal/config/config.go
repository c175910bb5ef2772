package config

import (
	"fmt"
	"os"
	"strings"
)

// Version information, set at build time

var Version = "development"
var CommitHash = "development"
var BuildTimestamp = "0000-00-00T00:00:00Z"

// Environment modes

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Discord endpoints; overridable in config so tests can point the
// exchanger at a stub provider.

const (
	DiscordTokenURL   = "https://discord.com/api/oauth2/token"
	DiscordAPIBaseURL = "https://discord.com/api/v10"
	DiscordCDNBaseURL = "https://cdn.discordapp.com"
)

// ActivityScopes is the fixed scope set requested during the embedded
// authorize step.
var ActivityScopes = []string{"identify", "guilds", "rpc.voice.read"}

// DefaultNamePrefix is the environment variable prefix used by the env
// config loader, e.g. MINIAPP_DISCORD_CLIENTID.
const DefaultNamePrefix = "MINIAPP_"

type Config struct {
	AppName     string        `description:"Display name of the mini app."`
	Environment string        `description:"Environment mode (development, production or test)."`
	Discord     DiscordConfig `description:"Discord application settings."`
	Server      ServerConfig  `description:"HTTP server settings."`
	Log         LogConfig     `description:"Logging settings."`
}

type DiscordConfig struct {
	ClientID         string `description:"Discord application client ID (public)."`
	ClientSecret     string `description:"Discord application client secret (confidential)."`
	ClientSecretFile string `description:"Path to a file containing the client secret."`
	TokenURL         string `description:"OAuth token endpoint."`
	APIBaseURL       string `description:"Discord REST API base URL."`
}

type ServerConfig struct {
	Port           int    `description:"Port to run the server on."`
	Address        string `description:"Address to bind the server to."`
	ClientPort     int    `description:"Port of the companion client dev server, used for the CORS origin."`
	ClientDir      string `description:"Directory containing the built client, served in production."`
	TrustedProxies string `description:"Comma separated list of trusted proxies."`
}

type LogConfig struct {
	Level   string                     `description:"Log level (trace, debug, info, warn, error, fatal or panic)."`
	Json    bool                       `description:"Log in JSON format."`
	Outputs map[string]LogOutputConfig `description:"Per output logger overrides."`
}

type LogOutputConfig struct {
	Enabled bool   `description:"Enable this log output."`
	Level   string `description:"Log level override for this output."`
}

// Discord API resources

type User struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name"`
	Avatar     string `json:"avatar"`
}

type Guild struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type Channel struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    int    `json:"type"`
	GuildID string `json:"guild_id"`
}

// ChannelTypeGuildVoice is the channel type activities are surfaced in.
const ChannelTypeGuildVoice = 2

func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

func (c *Config) IsTest() bool {
	return c.Environment == EnvTest
}

// ClientOrigin is the origin of the companion client dev server, allowed
// by the CORS policy outside production.
func (c *Config) ClientOrigin() string {
	return fmt.Sprintf("http://localhost:%d", c.Server.ClientPort)
}

// ResolveSecret resolves the client secret, preferring the inline value
// over the secret file.
func (c *Config) ResolveSecret() (string, error) {
	if c.Discord.ClientSecret != "" {
		return c.Discord.ClientSecret, nil
	}

	if c.Discord.ClientSecretFile != "" {
		contents, err := os.ReadFile(c.Discord.ClientSecretFile)
		if err != nil {
			return "", fmt.Errorf("failed to read client secret file: %w", err)
		}
		return strings.TrimSpace(string(contents)), nil
	}

	return "", nil
}

// Validate checks that the configuration is complete enough to start the
// server. Messages include a remediation hint since missing credentials
// are the most common first-run failure.
func (c *Config) Validate() error {
	if c.Discord.ClientID == "" {
		return fmt.Errorf("discord client ID is not configured: run `miniapp setup` or set %sDISCORD_CLIENTID in your .env file", DefaultNamePrefix)
	}

	secret, err := c.ResolveSecret()
	if err != nil {
		return err
	}

	if secret == "" {
		return fmt.Errorf("discord client secret is not configured: run `miniapp setup` or set %sDISCORD_CLIENTSECRET in your .env file", DefaultNamePrefix)
	}

	switch c.Environment {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		return fmt.Errorf("invalid environment %q: must be one of development, production or test", c.Environment)
	}

	return nil
}
