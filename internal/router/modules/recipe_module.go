package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/code2day/recipe-api/internal/container"
	"github.com/code2day/recipe-api/internal/domain/entity"
	"github.com/code2day/recipe-api/internal/interface/middleware"
)

// RecipeModule mounts recipe CRUD, search and the favorited-by view. Reads
// are public; writes require an account whose role can write content.
type RecipeModule struct {
	c    *container.Container
	auth gin.HandlerFunc
}

func NewRecipeModule(c *container.Container, auth gin.HandlerFunc) *RecipeModule {
	return &RecipeModule{c: c, auth: auth}
}

func (m *RecipeModule) Name() string { return "recipes" }

func (m *RecipeModule) Register(rg *gin.RouterGroup) {
	h := m.c.RecipeHandler
	canWrite := middleware.RequireCapability(entity.CapWriteContent)

	recipes := rg.Group("/recipes")
	{
		recipes.GET("", h.List)
		recipes.GET("/search", h.Search)
		recipes.GET("/:id", h.GetByID)
		recipes.GET("/:id/favorited-by", h.FavoritedBy)

		recipes.POST("", m.auth, canWrite, h.Create)
		recipes.PUT("/:id", m.auth, canWrite, h.Update)
		recipes.DELETE("/:id", m.auth, canWrite, h.Delete)
	}
}
