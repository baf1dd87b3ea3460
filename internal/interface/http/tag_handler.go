package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/code2day/recipe-api/internal/application"
	"github.com/code2day/recipe-api/pkg/response"
	"github.com/code2day/recipe-api/pkg/validation"
)

type TagHandler struct {
	Tags *application.TagService
}

func NewTagHandler(tags *application.TagService) *TagHandler {
	return &TagHandler{Tags: tags}
}

type tagRequest struct {
	Name string `json:"name" binding:"required,min=2,max=40"`
}

func (h *TagHandler) Create(c *gin.Context) {
	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request payload", validation.ToDetails(err))
		return
	}
	t, err := h.Tags.Create(c.Request.Context(), req.Name)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, t, "tag created", nil)
}

func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.Tags.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tags, "tags fetched", nil)
}

func (h *TagHandler) Update(c *gin.Context) {
	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request payload", validation.ToDetails(err))
		return
	}
	t, err := h.Tags.Update(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, t, "tag updated", nil)
}

func (h *TagHandler) Delete(c *gin.Context) {
	if err := h.Tags.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "tag deleted", nil)
}
