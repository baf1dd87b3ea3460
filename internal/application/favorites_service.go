package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/code2day/recipe-api/internal/domain/entity"
	repo "github.com/code2day/recipe-api/internal/domain/repository"
	"github.com/code2day/recipe-api/pkg/apperr"
)

// FavoritesService maintains the favorite relation between accounts and
// recipes as a set. Both endpoints of the relation are validated before any
// mutation; repeat adds and removes of an absent relation are rejected
// rather than silently ignored.
type FavoritesService struct {
	Users     repo.UserRepository
	Recipes   repo.RecipeRepository
	Favorites repo.FavoriteRepository
	Logger    *logrus.Logger
}

func NewFavoritesService(users repo.UserRepository, recipes repo.RecipeRepository, favorites repo.FavoriteRepository, logger *logrus.Logger) *FavoritesService {
	return &FavoritesService{Users: users, Recipes: recipes, Favorites: favorites, Logger: logger}
}

func (s *FavoritesService) checkUser(ctx context.Context, userID string) error {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		if isNotFound(err) {
			return apperr.New(apperr.KindNotFound, "user not found")
		}
		return storeErr(err)
	}
	return nil
}

func (s *FavoritesService) checkRecipe(ctx context.Context, recipeID string) error {
	if _, err := s.Recipes.GetByID(ctx, recipeID); err != nil {
		if isNotFound(err) {
			return apperr.New(apperr.KindNotFound, "recipe not found")
		}
		return storeErr(err)
	}
	return nil
}

// AddFavorite inserts the relation. The store-level insert-if-absent is the
// correctness mechanism: two concurrent adds for the same pair cannot both
// succeed, whatever the interleaving of the existence checks above it.
func (s *FavoritesService) AddFavorite(ctx context.Context, userID, recipeID string) error {
	if err := s.checkUser(ctx, userID); err != nil {
		return err
	}
	if err := s.checkRecipe(ctx, recipeID); err != nil {
		return err
	}

	added, err := s.Favorites.Add(ctx, userID, recipeID)
	if err != nil {
		return storeErr(err)
	}
	if !added {
		return apperr.New(apperr.KindConflict, "recipe already favorited")
	}
	return nil
}

// RemoveFavorite deletes the relation, restoring the pre-add state exactly.
func (s *FavoritesService) RemoveFavorite(ctx context.Context, userID, recipeID string) error {
	if err := s.checkUser(ctx, userID); err != nil {
		return err
	}

	removed, err := s.Favorites.Remove(ctx, userID, recipeID)
	if err != nil {
		return storeErr(err)
	}
	if !removed {
		return apperr.New(apperr.KindNotFound, "recipe not favorited")
	}
	return nil
}

// ListFavorites resolves the full recipes favorited by the account.
func (s *FavoritesService) ListFavorites(ctx context.Context, userID string) ([]*entity.Recipe, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	recipes, err := s.Favorites.RecipesFor(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	return recipes, nil
}

// ListFavoritingUsers is the derived reverse view over the same stored
// relation: the accounts that favorited a recipe.
func (s *FavoritesService) ListFavoritingUsers(ctx context.Context, recipeID string) ([]*entity.User, error) {
	if err := s.checkRecipe(ctx, recipeID); err != nil {
		return nil, err
	}
	users, err := s.Favorites.UsersFor(ctx, recipeID)
	if err != nil {
		return nil, storeErr(err)
	}
	return users, nil
}
