package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/code2day/recipe-api/internal/container"
)

// CommentModule mounts comment creation and the owner-gated mutations.
// Ownership itself is enforced in the service layer.
type CommentModule struct {
	c    *container.Container
	auth gin.HandlerFunc
}

func NewCommentModule(c *container.Container, auth gin.HandlerFunc) *CommentModule {
	return &CommentModule{c: c, auth: auth}
}

func (m *CommentModule) Name() string { return "comments" }

func (m *CommentModule) Register(rg *gin.RouterGroup) {
	h := m.c.CommentHandler

	comments := rg.Group("/comments")
	{
		comments.GET("/recipe/:recipeID", h.ListByRecipe)

		comments.POST("", m.auth, h.Create)
		comments.PUT("/:id", m.auth, h.Update)
		comments.DELETE("/:id", m.auth, h.Delete)
	}
}
