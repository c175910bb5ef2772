package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status    string `json:"status"`
	App       string `json:"app"`
	Timestamp string `json:"timestamp"`
}

type HealthControllerConfig struct {
	AppName string
}

type HealthController struct {
	Config HealthControllerConfig
	Router *gin.RouterGroup
}

func NewHealthController(config HealthControllerConfig, router *gin.RouterGroup) *HealthController {
	return &HealthController{
		Config: config,
		Router: router,
	}
}

func (controller *HealthController) SetupRoutes() {
	controller.Router.GET("/health", controller.healthHandler)
	controller.Router.HEAD("/health", controller.healthHandler)
}

func (controller *HealthController) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		App:       controller.Config.AppName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
