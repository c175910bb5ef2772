package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ConfigResponse is the non-sensitive subset of configuration the client
// is allowed to see. The client secret must never appear here.
type ConfigResponse struct {
	AppName  string `json:"appName"`
	ClientID string `json:"clientId"`
}

type ConfigControllerConfig struct {
	AppName  string
	ClientID string
}

type ConfigController struct {
	Config ConfigControllerConfig
	Router *gin.RouterGroup
}

func NewConfigController(config ConfigControllerConfig, router *gin.RouterGroup) *ConfigController {
	return &ConfigController{
		Config: config,
		Router: router,
	}
}

func (controller *ConfigController) SetupRoutes() {
	controller.Router.GET("/config", controller.configHandler)
}

func (controller *ConfigController) configHandler(c *gin.Context) {
	c.JSON(http.StatusOK, ConfigResponse{
		AppName:  controller.Config.AppName,
		ClientID: controller.Config.ClientID,
	})
}
