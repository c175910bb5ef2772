package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/collabland/discord-miniapp-framework/internal/middleware"
	"github.com/collabland/discord-miniapp-framework/internal/utils"

	"github.com/gin-gonic/gin"
	"gotest.tools/v3/assert"
)

func TestRateLimitMiddleware(t *testing.T) {
	assert.NilError(t, utils.NewSimpleLogger())

	gin.SetMode(gin.TestMode)
	router := gin.New()

	rl := middleware.NewRateLimitMiddleware(middleware.RateLimitMiddlewareConfig{
		RequestsPerWindow: 2,
		Window:            time.Minute,
		Burst:             2,
	})

	assert.NilError(t, rl.Init())

	router.Use(rl.Middleware())
	router.POST("/api/token", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"access_token": "tok"})
	})

	// The burst is allowed
	for range 2 {
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/token", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusOK, recorder.Code)
	}

	// The next request from the same client is rejected
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/token", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)

	// A different client has its own bucket
	recorder = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/api/token", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
