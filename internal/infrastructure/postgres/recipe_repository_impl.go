package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/code2day/recipe-api/internal/domain/entity"
	"github.com/code2day/recipe-api/internal/domain/repository"
)

type RecipeRepository struct {
	pool *pgxpool.Pool
}

func NewRecipeRepository(pool *pgxpool.Pool) *RecipeRepository {
	return &RecipeRepository{pool: pool}
}

const recipeColumns = `id, title, description, image, gallery, category, tags,
	preparation_time, cooking_time, servings, ingredients, instructions, created_at, updated_at`

func scanRecipe(row pgx.Row) (*entity.Recipe, error) {
	rec := &entity.Recipe{}
	if err := row.Scan(&rec.ID, &rec.Title, &rec.Description, &rec.Image, &rec.Gallery,
		&rec.Category, &rec.Tags, &rec.PreparationTime, &rec.CookingTime, &rec.Servings,
		&rec.Ingredients, &rec.Instructions, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (r *RecipeRepository) Create(ctx context.Context, rec *entity.Recipe) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO recipes (title, description, image, gallery, category, tags,
			preparation_time, cooking_time, servings, ingredients, instructions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`, rec.Title, rec.Description, rec.Image, rec.Gallery, rec.Category, rec.Tags,
		rec.PreparationTime, rec.CookingTime, rec.Servings, rec.Ingredients, rec.Instructions)

	return row.Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
}

func (r *RecipeRepository) GetByID(ctx context.Context, id string) (*entity.Recipe, error) {
	return scanRecipe(r.pool.QueryRow(ctx, `
		SELECT `+recipeColumns+`
		FROM recipes
		WHERE id = $1
	`, id))
}

func (r *RecipeRepository) List(ctx context.Context) ([]*entity.Recipe, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+recipeColumns+`
		FROM recipes
		ORDER BY created_at DESC
	`)
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

func (r *RecipeRepository) Update(ctx context.Context, rec *entity.Recipe) error {
	rec.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE recipes
		SET title = $1, description = $2, image = $3, gallery = $4, category = $5,
			tags = $6, preparation_time = $7, cooking_time = $8, servings = $9,
			ingredients = $10, instructions = $11, updated_at = $12
		WHERE id = $13
	`, rec.Title, rec.Description, rec.Image, rec.Gallery, rec.Category,
		rec.Tags, rec.PreparationTime, rec.CookingTime, rec.Servings,
		rec.Ingredients, rec.Instructions, rec.UpdatedAt, rec.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RecipeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.RecipeRepository = (*RecipeRepository)(nil)
