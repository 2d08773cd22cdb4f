package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-user-registry/internal/interface/http"
)

// UserModule wires the server-rendered user pages.
// GET  /                list
// GET  /new             create form
// POST /new             create
// GET  /:id/update      update form
// POST /:id/update      update
// POST /:id/delete      delete
// GET  /search          search by name and email
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", m.Handler.List)
	rg.GET("/new", m.Handler.CreateForm)
	rg.POST("/new", m.Handler.Create)
	rg.GET("/search", m.Handler.Search)
	rg.GET("/:id/update", m.Handler.UpdateForm)
	rg.POST("/:id/update", m.Handler.Update)
	rg.POST("/:id/delete", m.Handler.Delete)
}
