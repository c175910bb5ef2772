package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/collabland/discord-miniapp-framework/internal/middleware"
	"github.com/collabland/discord-miniapp-framework/internal/utils"

	"github.com/gin-gonic/gin"
	"gotest.tools/v3/assert"
)

func setupPanicRouter(t *testing.T, exposeErrors bool) *gin.Engine {
	t.Helper()

	assert.NilError(t, utils.NewSimpleLogger())

	gin.SetMode(gin.TestMode)
	router := gin.New()

	recovery := middleware.NewRecoveryMiddleware(middleware.RecoveryMiddlewareConfig{
		ExposeErrors: exposeErrors,
	})

	assert.NilError(t, recovery.Init())

	router.Use(recovery.Middleware())
	router.GET("/boom", func(c *gin.Context) {
		panic("something went sideways")
	})

	return router
}

func TestRecoveryMiddlewareProduction(t *testing.T) {
	router := setupPanicRouter(t, false)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/boom", nil)
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)

	var body map[string]string
	assert.NilError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body["error"])
}

func TestRecoveryMiddlewareDevelopment(t *testing.T) {
	router := setupPanicRouter(t, true)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/boom", nil)
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)

	var body map[string]string
	assert.NilError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "something went sideways", body["error"])
}
