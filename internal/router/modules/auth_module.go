package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-blog-platform/internal/container"
	handlers "github.com/oksasatya/go-blog-platform/internal/interface/http"
	"github.com/oksasatya/go-blog-platform/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Credential endpoints get tighter per-IP limits than the rest of the API
	registerLimiter := middleware.RateLimit(rateLimitRedis(), 10, time.Minute, middleware.KeyByIP())
	loginLimiter := middleware.RateLimit(rateLimitRedis(), 10, time.Minute, middleware.KeyByIP())

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
}

func rateLimitRedis() *redis.Client {
	if cfg := container.GetConfig(); cfg == nil || !cfg.RateLimitEnabled {
		return nil
	}
	return container.GetRedis()
}
