package modules

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/code2day/recipe-api/internal/container"
	"github.com/code2day/recipe-api/pkg/response"
)

// HealthModule exposes liveness and dependency checks.
type HealthModule struct {
	c *container.Container
}

func NewHealthModule(c *container.Container) *HealthModule {
	return &HealthModule{c: c}
}

func (m *HealthModule) Name() string { return "health" }

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.health)
}

func (m *HealthModule) health(c *gin.Context) {
	ctx := c.Request.Context()

	checks := gin.H{"db": "ok", "redis": "ok"}
	status := http.StatusOK

	if err := m.c.Pool.Ping(ctx); err != nil {
		checks["db"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	if err := m.c.Redis.Ping(ctx).Err(); err != nil {
		checks["redis"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	if status != http.StatusOK {
		response.Error[any](c, status, "degraded", checks)
		return
	}
	response.Success(c, status, gin.H{"checks": checks, "time": time.Now().UTC()}, "healthy", nil)
}
