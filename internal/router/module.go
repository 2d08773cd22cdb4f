package router

import "github.com/gin-gonic/gin"

// Module registers a feature's routes on the root group.
// Modules are added in InitModules and registered once by RegisterAll.
type Module interface {
	Register(rg *gin.RouterGroup)
}
