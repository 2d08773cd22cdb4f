package router

import (
	"github.com/oksasatya/go-user-registry/internal/container"
	handlers "github.com/oksasatya/go-user-registry/internal/interface/http"
	"github.com/oksasatya/go-user-registry/internal/router/modules"
)

// InitModules registers every feature module with the registry.
// Call once during start-up, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	r.Add(modules.NewUserModule(handlers.NewUserHandler(c.Service, c.Logger)))
	r.Add(modules.NewAPIModule(handlers.NewUserAPIHandler(c.Service, c.Logger)))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
