package repository

import (
	"context"

	"github.com/code2day/recipe-api/internal/domain/entity"
)

// FavoriteRepository owns the single authoritative storage of the favorite
// relation. Both directions of the relation are derived queries over the
// same table; no second persisted list exists anywhere.
type FavoriteRepository interface {
	// Add inserts the relation if absent. The insert-if-absent is a single
	// atomic store operation; added=false means the relation already existed.
	Add(ctx context.Context, userID, recipeID string) (added bool, err error)
	// Remove deletes the relation; removed=false means it did not exist.
	Remove(ctx context.Context, userID, recipeID string) (removed bool, err error)
	// RecipesFor resolves the recipes favorited by an account.
	RecipesFor(ctx context.Context, userID string) ([]*entity.Recipe, error)
	// UsersFor resolves the accounts that favorited a recipe.
	UsersFor(ctx context.Context, recipeID string) ([]*entity.User, error)
	// RecipeIDsFor returns just the favorited recipe identifiers.
	RecipeIDsFor(ctx context.Context, userID string) ([]string, error)
}
