package repository

import (
	"context"

	"github.com/code2day/recipe-api/internal/domain/entity"
)

type RecipeRepository interface {
	Create(ctx context.Context, r *entity.Recipe) error
	GetByID(ctx context.Context, id string) (*entity.Recipe, error)
	List(ctx context.Context) ([]*entity.Recipe, error)
	// Update performs a full-field replace of the recipe document.
	Update(ctx context.Context, r *entity.Recipe) error
	Delete(ctx context.Context, id string) error
}
