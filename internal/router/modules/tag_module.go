package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/code2day/recipe-api/internal/container"
	"github.com/code2day/recipe-api/internal/domain/entity"
	"github.com/code2day/recipe-api/internal/interface/middleware"
)

// TagModule mounts the tag collection. Listing is public; mutations require
// the manage-tags capability.
type TagModule struct {
	c    *container.Container
	auth gin.HandlerFunc
}

func NewTagModule(c *container.Container, auth gin.HandlerFunc) *TagModule {
	return &TagModule{c: c, auth: auth}
}

func (m *TagModule) Name() string { return "tags" }

func (m *TagModule) Register(rg *gin.RouterGroup) {
	h := m.c.TagHandler
	canManage := middleware.RequireCapability(entity.CapManageTags)

	tags := rg.Group("/tags")
	{
		tags.GET("", h.List)
		tags.POST("", m.auth, canManage, h.Create)
		tags.PUT("/:id", m.auth, canManage, h.Update)
		tags.DELETE("/:id", m.auth, canManage, h.Delete)
	}
}
