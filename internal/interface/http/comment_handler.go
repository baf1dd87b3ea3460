package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/code2day/recipe-api/internal/application"
	"github.com/code2day/recipe-api/internal/domain/entity"
	"github.com/code2day/recipe-api/internal/interface/middleware"
	"github.com/code2day/recipe-api/pkg/response"
	"github.com/code2day/recipe-api/pkg/validation"
)

type CommentHandler struct {
	Comments *application.CommentService
}

func NewCommentHandler(comments *application.CommentService) *CommentHandler {
	return &CommentHandler{Comments: comments}
}

type createCommentRequest struct {
	RecipeID string `json:"recipe_id" binding:"required"`
	Text     string `json:"text" binding:"required"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request payload", validation.ToDetails(err))
		return
	}
	userID := c.GetString(middleware.CtxUserIDKey)
	cm, err := h.Comments.Create(c.Request.Context(), userID, req.RecipeID, req.Text)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, cm, "comment created", nil)
}

func (h *CommentHandler) ListByRecipe(c *gin.Context) {
	comments, err := h.Comments.ListByRecipe(c.Request.Context(), c.Param("recipeID"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, comments, "comments fetched", nil)
}

type updateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *CommentHandler) Update(c *gin.Context) {
	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request payload", validation.ToDetails(err))
		return
	}
	userID := c.GetString(middleware.CtxUserIDKey)
	cm, err := h.Comments.Update(c.Request.Context(), userID, c.Param("id"), req.Text)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cm, "comment updated", nil)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	role := entity.Role(c.GetString(middleware.CtxUserRoleKey))
	if err := h.Comments.Delete(c.Request.Context(), userID, role, c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "comment deleted", nil)
}
