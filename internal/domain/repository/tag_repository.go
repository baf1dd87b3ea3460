package repository

import (
	"context"

	"github.com/code2day/recipe-api/internal/domain/entity"
)

// TagRepository enforces tag-name uniqueness at the store level; Create and
// Update return ErrDuplicate on collision.
type TagRepository interface {
	Create(ctx context.Context, t *entity.Tag) error
	GetByID(ctx context.Context, id string) (*entity.Tag, error)
	GetByName(ctx context.Context, name string) (*entity.Tag, error)
	List(ctx context.Context) ([]*entity.Tag, error)
	Update(ctx context.Context, t *entity.Tag) error
	Delete(ctx context.Context, id string) error
}
