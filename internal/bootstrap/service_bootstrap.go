package bootstrap

import (
	"github.com/collabland/discord-miniapp-framework/internal/service"
)

type Services struct {
	discordService *service.DiscordService
}

func (app *App) initServices() (Services, error) {
	services := Services{}

	discordService := service.NewDiscordService(service.DiscordServiceConfig{
		ClientID:     app.config.Discord.ClientID,
		ClientSecret: app.context.clientSecret,
		TokenURL:     app.config.Discord.TokenURL,
		APIBaseURL:   app.config.Discord.APIBaseURL,
	})

	err := discordService.Init()

	if err != nil {
		return Services{}, err
	}

	services.discordService = discordService

	return services, nil
}
