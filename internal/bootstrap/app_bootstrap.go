package bootstrap

import (
	"fmt"

	"github.com/collabland/discord-miniapp-framework/internal/config"
	"github.com/collabland/discord-miniapp-framework/internal/utils"

	"github.com/gin-gonic/gin"
)

type App struct {
	config  config.Config
	context struct {
		clientSecret string
	}
	services Services
}

func NewApp(config config.Config) *App {
	return &App{
		config: config,
	}
}

// Bootstrap wires the app up to a ready router without starting the
// listener, which is what tests want.
func (app *App) Bootstrap() (*gin.Engine, error) {
	// Validate config
	if err := app.config.Validate(); err != nil {
		return nil, err
	}

	secret, err := app.config.ResolveSecret()

	if err != nil {
		return nil, err
	}

	// The secret lives here for the rest of the process lifetime and is
	// only handed to the Discord service.
	app.context.clientSecret = secret

	// Services
	services, err := app.initServices()

	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.services = services

	// Router
	router, err := app.setupRouter()

	if err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}

	return router, nil
}

func (app *App) Setup() error {
	router, err := app.Bootstrap()

	if err != nil {
		return err
	}

	// Start server
	address := fmt.Sprintf("%s:%d", app.config.Server.Address, app.config.Server.Port)
	utils.Log.App.Info().Str("address", address).Str("environment", app.config.Environment).Msg("Starting server")

	if err := router.Run(address); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
