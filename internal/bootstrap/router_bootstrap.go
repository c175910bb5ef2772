package bootstrap

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/collabland/discord-miniapp-framework/internal/controller"
	"github.com/collabland/discord-miniapp-framework/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (app *App) setupRouter() (*gin.Engine, error) {
	switch {
	case app.config.IsProduction():
		gin.SetMode(gin.ReleaseMode)
	case app.config.IsTest():
		gin.SetMode(gin.TestMode)
	}

	engine := gin.New()

	if len(app.config.Server.TrustedProxies) > 0 {
		err := engine.SetTrustedProxies(strings.Split(app.config.Server.TrustedProxies, ","))

		if err != nil {
			return nil, fmt.Errorf("failed to set trusted proxies: %w", err)
		}
	}

	recoveryMiddleware := middleware.NewRecoveryMiddleware(middleware.RecoveryMiddlewareConfig{
		ExposeErrors: !app.config.IsProduction(),
	})

	err := recoveryMiddleware.Init()

	if err != nil {
		return nil, fmt.Errorf("failed to initialize recovery middleware: %w", err)
	}

	engine.Use(recoveryMiddleware.Middleware())

	zerologMiddleware := middleware.NewZerologMiddleware()

	err = zerologMiddleware.Init()

	if err != nil {
		return nil, fmt.Errorf("failed to initialize zerolog middleware: %w", err)
	}

	engine.Use(zerologMiddleware.Middleware())

	// Outside production only the companion client origin may call the
	// API; in production the client is served from the same origin.
	if !app.config.IsProduction() {
		engine.Use(cors.New(cors.Config{
			AllowOrigins:     []string{app.config.ClientOrigin()},
			AllowMethods:     []string{"GET", "POST", "HEAD", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	apiRouter := engine.Group("/api")

	rateLimitMiddleware := middleware.NewRateLimitMiddleware(middleware.TokenEndpointLimit)

	err = rateLimitMiddleware.Init()

	if err != nil {
		return nil, fmt.Errorf("failed to initialize rate limit middleware: %w", err)
	}

	tokenRouter := apiRouter.Group("")
	tokenRouter.Use(rateLimitMiddleware.Middleware())

	tokenController := controller.NewTokenController(controller.TokenControllerConfig{
		ExposeErrors: !app.config.IsProduction(),
	}, tokenRouter, app.services.discordService)

	tokenController.SetupRoutes()

	healthController := controller.NewHealthController(controller.HealthControllerConfig{
		AppName: app.config.AppName,
	}, apiRouter)

	healthController.SetupRoutes()

	configController := controller.NewConfigController(controller.ConfigControllerConfig{
		AppName:  app.config.AppName,
		ClientID: app.config.Discord.ClientID,
	}, apiRouter)

	configController.SetupRoutes()

	// Unmatched /api routes always get a JSON 404, even in production
	// where the SPA fallback would otherwise swallow them.
	engine.NoRoute(app.noRouteHandler())

	return engine, nil
}

func (app *App) noRouteHandler() gin.HandlerFunc {
	clientDir := app.config.Server.ClientDir
	serveClient := app.config.IsProduction() && clientDir != ""

	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") || !serveClient || c.Request.Method != http.MethodGet {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Not found",
			})
			return
		}

		requested := filepath.Join(clientDir, filepath.Clean("/"+c.Request.URL.Path))

		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			c.File(requested)
			return
		}

		// SPA fallback: unknown paths get the client entry point
		c.File(filepath.Join(clientDir, "index.html"))
	}
}
