package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-blog-platform/internal/container"
	handlers "github.com/oksasatya/go-blog-platform/internal/interface/http"
	"github.com/oksasatya/go-blog-platform/internal/interface/middleware"
)

// PostModule wires the post handlers into routes.
// Public: GET /api/v1/posts, GET /api/v1/posts/:id
// Protected: POST /api/v1/posts, PUT /api/v1/posts/:id, DELETE /api/v1/posts/:id

type PostModule struct {
	Handler *handlers.PostHandler
}

func NewPostModule(h *handlers.PostHandler) *PostModule {
	return &PostModule{Handler: h}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	perMinute := 60
	if cfg := container.GetConfig(); cfg != nil {
		perMinute = cfg.RateLimitPerMinute
	}
	readLimiter := middleware.RateLimit(rateLimitRedis(), perMinute*2, time.Minute, middleware.KeyByIP())

	rg.GET("/posts", readLimiter, m.Handler.List)
	rg.GET("/posts/:id", readLimiter, m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetJWT()))
	auth.Use(middleware.RateLimit(rateLimitRedis(), perMinute, time.Minute, middleware.KeyByUserID()))
	{
		auth.POST("/posts", m.Handler.Create)
		auth.PUT("/posts/:id", m.Handler.Update)
		auth.DELETE("/posts/:id", m.Handler.Delete)
	}
}
