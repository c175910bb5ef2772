package main

import (
	"fmt"

	"github.com/collabland/discord-miniapp-framework/internal/bootstrap"
	"github.com/collabland/discord-miniapp-framework/internal/config"
	"github.com/collabland/discord-miniapp-framework/internal/utils"
	"github.com/collabland/discord-miniapp-framework/internal/utils/loaders"

	"github.com/rs/zerolog/log"
	"github.com/traefik/paerser/cli"
)

func NewMiniappCmdConfiguration() *config.Config {
	return &config.Config{
		AppName:     "Mini App",
		Environment: config.EnvDevelopment,
		Discord: config.DiscordConfig{
			TokenURL:   config.DiscordTokenURL,
			APIBaseURL: config.DiscordAPIBaseURL,
		},
		Server: config.ServerConfig{
			Port:       3001,
			Address:    "0.0.0.0",
			ClientPort: 3000,
			ClientDir:  "./client",
		},
		Log: config.LogConfig{
			Level: "info",
			Json:  false,
		},
	}
}

func main() {
	mConfig := NewMiniappCmdConfiguration()

	loaders := []cli.ResourceLoader{
		&loaders.DotenvLoader{},
		&loaders.FlagLoader{},
		&loaders.EnvLoader{},
	}

	cmdMiniapp := &cli.Command{
		Name:          "miniapp",
		Description:   "Scaffolding and token exchange server for Discord mini apps.",
		Configuration: mConfig,
		Resources:     loaders,
		Run: func(_ []string) error {
			return runCmd(*mConfig)
		},
	}

	err := cmdMiniapp.AddCommand(versionCmd())

	if err != nil {
		log.Fatal().Err(err).Msg("Failed to add version command")
	}

	err = cmdMiniapp.AddCommand(setupCmd())

	if err != nil {
		log.Fatal().Err(err).Msg("Failed to add setup command")
	}

	err = cmdMiniapp.AddCommand(healthcheckCmd())

	if err != nil {
		log.Fatal().Err(err).Msg("Failed to add healthcheck command")
	}

	err = cli.Execute(cmdMiniapp)

	if err != nil {
		log.Fatal().Err(err).Msg("Failed to execute command")
	}
}

func runCmd(cfg config.Config) error {
	outputs := make(map[string]utils.LoggerOutputConfig)
	for name, out := range cfg.Log.Outputs {
		outputs[name] = utils.LoggerOutputConfig{
			Enabled: out.Enabled,
			Level:   out.Level,
		}
	}

	err := utils.InitLogger(&utils.LoggerConfig{
		Level:   cfg.Log.Level,
		Json:    cfg.Log.Json,
		Outputs: outputs,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize logger")
	}

	utils.Log.App.Info().Str("version", config.Version).Str("app", cfg.AppName).Msg("Starting mini app server")

	app := bootstrap.NewApp(cfg)

	err = app.Setup()

	if err != nil {
		return fmt.Errorf("failed to bootstrap app: %w", err)
	}

	return nil
}
