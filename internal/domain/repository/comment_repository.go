package repository

import (
	"context"

	"github.com/code2day/recipe-api/internal/domain/entity"
)

type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	// ListByRecipe resolves author name and email on each comment.
	ListByRecipe(ctx context.Context, recipeID string) ([]*entity.Comment, error)
	Update(ctx context.Context, c *entity.Comment) error
	Delete(ctx context.Context, id string) error
}
