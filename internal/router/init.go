package router

import (
	"github.com/oksasatya/go-blog-platform/internal/container"
	handlers "github.com/oksasatya/go-blog-platform/internal/interface/http"
	"github.com/oksasatya/go-blog-platform/internal/router/modules"
)

// InitModules builds every feature module and registers it with the registry.
// Called once during startup, after the container is populated. The services
// come from the container so this frontend and the gRPC one run against the
// same instances.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(container.GetAuthService(), logger)))
	r.Add(modules.NewPostModule(handlers.NewPostHandler(container.GetBlogService(), logger, cfg.PaginationDefaultLimit, cfg.PaginationMaxLimit)))
	r.Add(modules.NewHealthModule())
	r.Add(modules.NewDebugModule())
}
