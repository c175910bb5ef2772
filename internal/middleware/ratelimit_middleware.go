package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/collabland/discord-miniapp-framework/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type RateLimitMiddlewareConfig struct {
	// RequestsPerWindow is the number of requests allowed in the time window
	RequestsPerWindow int
	// Window is the time window for rate limiting
	Window time.Duration
	// Burst allows for temporary bursts above the rate limit
	Burst int
}

// TokenEndpointLimit is the default profile for the token exchange
// endpoint. Authorization codes are single-use, so a well-behaved client
// calls it once per session.
var TokenEndpointLimit = RateLimitMiddlewareConfig{
	RequestsPerWindow: 10,
	Window:            time.Minute,
	Burst:             10,
}

// RateLimitMiddleware applies a per-client-IP token bucket to a route
// group.
type RateLimitMiddleware struct {
	Config   RateLimitMiddlewareConfig
	limiters sync.Map // map[string]*rate.Limiter
}

func NewRateLimitMiddleware(config RateLimitMiddlewareConfig) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		Config: config,
	}
}

func (m *RateLimitMiddleware) Init() error {
	return nil
}

func (m *RateLimitMiddleware) getLimiter(key string) *rate.Limiter {
	if limiter, ok := m.limiters.Load(key); ok {
		return limiter.(*rate.Limiter)
	}

	perSecond := rate.Limit(float64(m.Config.RequestsPerWindow) / m.Config.Window.Seconds())
	limiter := rate.NewLimiter(perSecond, m.Config.Burst)

	actual, _ := m.limiters.LoadOrStore(key, limiter)
	return actual.(*rate.Limiter)
}

func (m *RateLimitMiddleware) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := m.getLimiter(c.ClientIP())

		if !limiter.Allow() {
			utils.Log.HTTP.Warn().Str("clientIp", c.ClientIP()).Str("path", c.Request.URL.Path).Msg("Rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests",
			})
			return
		}

		c.Next()
	}
}
