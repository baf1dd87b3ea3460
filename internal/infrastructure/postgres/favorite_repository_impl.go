package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/code2day/recipe-api/internal/domain/entity"
	"github.com/code2day/recipe-api/internal/domain/repository"
)

// FavoriteRepository stores the favorite relation in a single lookup table
// keyed by (user_id, recipe_id). The primary key makes a duplicate insert
// impossible no matter how concurrent adds interleave; both directions of
// the relation are derived joins over this one table.
type FavoriteRepository struct {
	pool *pgxpool.Pool
}

func NewFavoriteRepository(pool *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}

func (r *FavoriteRepository) Add(ctx context.Context, userID, recipeID string) (bool, error) {
	res, err := r.pool.Exec(ctx, `
		INSERT INTO favorites (user_id, recipe_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, recipe_id) DO NOTHING
	`, userID, recipeID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() == 1, nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, recipeID string) (bool, error) {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM favorites
		WHERE user_id = $1 AND recipe_id = $2
	`, userID, recipeID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() == 1, nil
}

func (r *FavoriteRepository) RecipesFor(ctx context.Context, userID string) ([]*entity.Recipe, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT r.id, r.title, r.description, r.image, r.gallery, r.category, r.tags,
			r.preparation_time, r.cooking_time, r.servings, r.ingredients, r.instructions,
			r.created_at, r.updated_at
		FROM favorites f
		JOIN recipes r ON r.id = f.recipe_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.Recipe, 0)
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *FavoriteRepository) UsersFor(ctx context.Context, recipeID string) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.name, u.email, u.profile_picture, u.created_at
		FROM favorites f
		JOIN users u ON u.id = f.user_id
		WHERE f.recipe_id = $1
		ORDER BY f.created_at DESC
	`, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.User, 0)
	for rows.Next() {
		u := &entity.User{}
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.ProfilePicture, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *FavoriteRepository) RecipeIDsFor(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT recipe_id FROM favorites WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

var _ repository.FavoriteRepository = (*FavoriteRepository)(nil)
