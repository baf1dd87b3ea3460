package router

import "github.com/gin-gonic/gin"

// Module is a self-contained route group. Each feature area implements one
// and registers its routes under the shared API group.
type Module interface {
	Name() string
	Register(rg *gin.RouterGroup)
}
