package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-user-registry/internal/interface/http"
)

// APIModule exposes the same operations as JSON under /api.
type APIModule struct {
	Handler *handlers.UserAPIHandler
}

func NewAPIModule(h *handlers.UserAPIHandler) *APIModule {
	return &APIModule{Handler: h}
}

func (m *APIModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", handlers.Health)

	users := rg.Group("/api/users")
	{
		users.GET("", m.Handler.List)
		users.GET("/search", m.Handler.Search)
		users.GET("/:id", m.Handler.Get)
		users.POST("", m.Handler.Create)
		users.PUT("/:id", m.Handler.Update)
		users.DELETE("/:id", m.Handler.Delete)
	}
}
