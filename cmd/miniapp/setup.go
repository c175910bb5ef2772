package main

import (
	"errors"
	"fmt"

	"github.com/collabland/discord-miniapp-framework/internal/config"
	"github.com/collabland/discord-miniapp-framework/internal/utils"
	"github.com/collabland/discord-miniapp-framework/internal/wizard"

	"github.com/charmbracelet/huh"
	"github.com/traefik/paerser/cli"
)

type SetupConfig struct {
	Interactive  bool   `description:"Collect the configuration interactively."`
	Dir          string `description:"Project directory to scaffold into."`
	Force        bool   `description:"Overwrite files that already exist."`
	AppName      string `description:"Display name of the mini app."`
	ClientID     string `description:"Discord application client ID."`
	ClientSecret string `description:"Discord application client secret."`
	ServerPort   int    `description:"Port for the token exchange server."`
	ClientPort   int    `description:"Port of the client dev server."`
	Environment  string `description:"Environment mode (development, production or test)."`
}

func NewSetupConfig() *SetupConfig {
	return &SetupConfig{
		Interactive: false,
		Dir:         ".",
		Force:       false,
		AppName:     "Mini App",
		ServerPort:  3001,
		ClientPort:  3000,
		Environment: config.EnvDevelopment,
	}
}

func setupCmd() *cli.Command {
	sCfg := NewSetupConfig()

	loaders := []cli.ResourceLoader{
		&cli.FlagLoader{},
	}

	return &cli.Command{
		Name:          "setup",
		Description:   "Scaffold a mini app project: write .env files and copy the client templates",
		Configuration: sCfg,
		Resources:     loaders,
		Run: func(_ []string) error {
			err := utils.NewSimpleLogger()

			if err != nil {
				return err
			}

			if sCfg.Interactive {
				form := huh.NewForm(
					huh.NewGroup(
						huh.NewInput().Title("App name").Value(&sCfg.AppName).Validate((func(s string) error {
							if s == "" {
								return errors.New("app name cannot be empty")
							}
							return nil
						})),
						huh.NewInput().Title("Discord client ID").Value(&sCfg.ClientID).Validate((func(s string) error {
							if s == "" {
								return errors.New("client ID cannot be empty")
							}
							return nil
						})),
						huh.NewInput().Title("Discord client secret").EchoMode(huh.EchoModePassword).Value(&sCfg.ClientSecret).Validate((func(s string) error {
							if s == "" {
								return errors.New("client secret cannot be empty")
							}
							return nil
						})),
						huh.NewSelect[string]().Title("Environment").Options(
							huh.NewOption("Development", config.EnvDevelopment),
							huh.NewOption("Production", config.EnvProduction),
						).Value(&sCfg.Environment),
					),
				)

				var baseTheme *huh.Theme = huh.ThemeBase()

				err := form.WithTheme(baseTheme).Run()

				if err != nil {
					return fmt.Errorf("failed to run interactive prompt: %w", err)
				}
			}

			if sCfg.ClientID == "" || sCfg.ClientSecret == "" {
				return errors.New("client ID and client secret cannot be empty")
			}

			utils.Log.App.Info().Str("dir", sCfg.Dir).Msg("Scaffolding mini app project")

			written, err := wizard.New(sCfg.Dir, sCfg.Force).Scaffold(wizard.Answers{
				AppName:      sCfg.AppName,
				ClientID:     sCfg.ClientID,
				ClientSecret: sCfg.ClientSecret,
				ServerPort:   sCfg.ServerPort,
				ClientPort:   sCfg.ClientPort,
				Environment:  sCfg.Environment,
			})

			for _, path := range written {
				utils.Log.App.Info().Str("path", path).Msg("Wrote file")
			}

			if err != nil {
				return fmt.Errorf("failed to scaffold project: %w", err)
			}

			utils.Log.App.Info().Msg("Setup complete, start the server with `miniapp`")

			return nil
		},
	}
}
