package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/code2day/recipe-api/internal/application"
	"github.com/code2day/recipe-api/internal/domain/entity"
	"github.com/code2day/recipe-api/pkg/response"
	"github.com/code2day/recipe-api/pkg/validation"
)

type RecipeHandler struct {
	Recipes   *application.RecipeService
	Favorites *application.FavoritesService
}

func NewRecipeHandler(recipes *application.RecipeService, favorites *application.FavoritesService) *RecipeHandler {
	return &RecipeHandler{Recipes: recipes, Favorites: favorites}
}

type recipeRequest struct {
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description" binding:"required"`
	Image           string   `json:"image" binding:"omitempty,url"`
	Gallery         []string `json:"gallery"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	PreparationTime string   `json:"preparation_time"`
	CookingTime     string   `json:"cooking_time"`
	Servings        int      `json:"servings" binding:"omitempty,min=1"`
	Ingredients     []string `json:"ingredients" binding:"required,min=1"`
	Instructions    []string `json:"instructions" binding:"required,min=1"`
}

func (r recipeRequest) toEntity(id string) *entity.Recipe {
	return &entity.Recipe{
		ID:              id,
		Title:           r.Title,
		Description:     r.Description,
		Image:           r.Image,
		Gallery:         r.Gallery,
		Category:        r.Category,
		Tags:            r.Tags,
		PreparationTime: r.PreparationTime,
		CookingTime:     r.CookingTime,
		Servings:        r.Servings,
		Ingredients:     r.Ingredients,
		Instructions:    r.Instructions,
	}
}

func (h *RecipeHandler) Create(c *gin.Context) {
	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request payload", validation.ToDetails(err))
		return
	}
	rec, err := h.Recipes.Create(c.Request.Context(), req.toEntity(""))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, rec, "recipe created", nil)
}

func (h *RecipeHandler) List(c *gin.Context) {
	recipes, err := h.Recipes.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, recipes, "recipes fetched", nil)
}

func (h *RecipeHandler) GetByID(c *gin.Context) {
	rec, err := h.Recipes.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec, "recipe fetched", nil)
}

func (h *RecipeHandler) Update(c *gin.Context) {
	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request payload", validation.ToDetails(err))
		return
	}
	rec, err := h.Recipes.Update(c.Request.Context(), req.toEntity(c.Param("id")))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec, "recipe updated", nil)
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	if err := h.Recipes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "recipe deleted", nil)
}

func (h *RecipeHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Recipes.Search(c.Request.Context(), q, size)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}

// favoritedByView is the public shape of an account in a favorited-by list.
type favoritedByView struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

// FavoritedBy lists the accounts that favorited a recipe.
func (h *RecipeHandler) FavoritedBy(c *gin.Context) {
	users, err := h.Favorites.ListFavoritingUsers(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	out := make([]favoritedByView, 0, len(users))
	for _, u := range users {
		out = append(out, favoritedByView{ID: u.ID, Name: u.Name, ProfilePicture: u.ProfilePicture})
	}
	response.Success(c, http.StatusOK, out, "favorited-by fetched", nil)
}
