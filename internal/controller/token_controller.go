package controller

import (
	"errors"
	"net/http"

	"github.com/collabland/discord-miniapp-framework/internal/service"
	"github.com/collabland/discord-miniapp-framework/internal/utils"

	"github.com/gin-gonic/gin"
)

type ExchangeRequest struct {
	Code string `json:"code"`
}

type TokenControllerConfig struct {
	// ExposeErrors surfaces raw transport error messages, enabled
	// outside production for debugging.
	ExposeErrors bool
}

type TokenController struct {
	Config  TokenControllerConfig
	Router  *gin.RouterGroup
	Discord *service.DiscordService
}

func NewTokenController(config TokenControllerConfig, router *gin.RouterGroup, discord *service.DiscordService) *TokenController {
	return &TokenController{
		Config:  config,
		Router:  router,
		Discord: discord,
	}
}

func (controller *TokenController) SetupRoutes() {
	controller.Router.POST("/token", controller.tokenHandler)
}

func (controller *TokenController) tokenHandler(c *gin.Context) {
	var req ExchangeRequest

	// A bad body and a missing code get the same response; neither may
	// reach the provider.
	_ = c.ShouldBindJSON(&req)

	if req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Authorization code is required",
		})
		return
	}

	result, err := controller.Discord.ExchangeCode(c.Request.Context(), req.Code)

	if err != nil {
		var providerErr *service.ProviderError

		if errors.As(err, &providerErr) {
			utils.Log.App.Warn().Int("status", providerErr.Status).Msg("Identity provider rejected the token exchange")
			c.JSON(providerErr.Status, gin.H{
				"error":   "Failed to exchange authorization code",
				"details": providerErr.Details(),
			})
			return
		}

		utils.Log.App.Error().Err(err).Msg("Token exchange failed")

		message := "Internal server error"
		if controller.Config.ExposeErrors {
			message = err.Error()
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": message,
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
