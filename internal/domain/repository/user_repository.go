package repository

import (
	"context"

	"github.com/code2day/recipe-api/internal/domain/entity"
)

// UserRepository defines the durable operations over account records.
// Email uniqueness is enforced by the store itself; Create returns
// ErrDuplicate when it is violated.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}
