package middleware

import (
	"fmt"
	"net/http"

	"github.com/collabland/discord-miniapp-framework/internal/utils"

	"github.com/gin-gonic/gin"
)

type RecoveryMiddlewareConfig struct {
	// ExposeErrors surfaces the recovered panic message in the response,
	// enabled outside production.
	ExposeErrors bool
}

// RecoveryMiddleware is the catch-all handler: any panic in a handler is
// logged and mapped to a JSON 500 instead of tearing down the connection.
type RecoveryMiddleware struct {
	Config RecoveryMiddlewareConfig
}

func NewRecoveryMiddleware(config RecoveryMiddlewareConfig) *RecoveryMiddleware {
	return &RecoveryMiddleware{
		Config: config,
	}
}

func (m *RecoveryMiddleware) Init() error {
	return nil
}

func (m *RecoveryMiddleware) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				utils.Log.App.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("Recovered from panic in handler")

				message := "Internal server error"
				if m.Config.ExposeErrors {
					message = fmt.Sprintf("%v", recovered)
				}

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": message,
				})
			}
		}()

		c.Next()
	}
}
