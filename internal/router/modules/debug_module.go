package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/code2day/recipe-api/internal/container"
	"github.com/code2day/recipe-api/internal/interface/middleware"
)

// DebugModule exposes expvar runtime metrics, rate-limited per IP so the
// endpoint cannot be hammered from outside.
type DebugModule struct {
	c *container.Container
}

func NewDebugModule(c *container.Container) *DebugModule {
	return &DebugModule{c: c}
}

func (m *DebugModule) Name() string { return "debug" }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	limit := middleware.RateLimit(m.c.Redis, 10, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", limit, gin.WrapH(expvar.Handler()))
}
