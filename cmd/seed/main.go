package main

import (
	"context"
	"errors"
	"time"

	"github.com/joho/godotenv"

	"github.com/code2day/recipe-api/config"
	"github.com/code2day/recipe-api/internal/domain/entity"
	repo "github.com/code2day/recipe-api/internal/domain/repository"
	"github.com/code2day/recipe-api/internal/infrastructure/postgres"
	"github.com/code2day/recipe-api/pkg/helpers"
)

// Seeds an admin account, a base tag set and a couple of sample recipes.
// Safe to run repeatedly: duplicates are skipped.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger("seed", cfg.AppEnv)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL(), 4, 1, time.Hour)
	if err != nil {
		logger.WithError(err).Fatal("could not connect to postgres")
	}
	defer pool.Close()

	users := postgres.NewUserRepository(pool)
	tags := postgres.NewTagRepository(pool)
	recipes := postgres.NewRecipeRepository(pool)

	hash, err := helpers.HashPassword("admin12345")
	if err != nil {
		logger.WithError(err).Fatal("could not hash admin password")
	}
	admin := &entity.User{
		Name:       "Admin",
		Email:      "admin@example.com",
		Password:   hash,
		IsVerified: true,
		Role:       entity.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			logger.Info("admin already exists, skipped")
		} else {
			logger.WithError(err).Fatal("could not seed admin")
		}
	} else {
		logger.WithField("email", admin.Email).Info("admin created")
	}

	for _, name := range []string{"breakfast", "lunch", "dinner", "dessert", "vegetarian", "vegan", "quick"} {
		if err := tags.Create(ctx, &entity.Tag{Name: name}); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				continue
			}
			logger.WithError(err).WithField("tag", name).Fatal("could not seed tag")
		}
	}
	logger.Info("tags seeded")

	samples := []*entity.Recipe{
		{
			Title:           "Classic Pancakes",
			Description:     "Fluffy pancakes from scratch.",
			Category:        "breakfast",
			Tags:            []string{"breakfast", "quick"},
			PreparationTime: "10m",
			CookingTime:     "15m",
			Servings:        4,
			Ingredients:     []string{"2 cups flour", "2 eggs", "1.5 cups milk", "2 tbsp sugar", "1 tbsp baking powder"},
			Instructions:    []string{"Whisk dry ingredients.", "Add eggs and milk, mix until smooth.", "Cook on a greased griddle until golden."},
		},
		{
			Title:           "Tomato Basil Pasta",
			Description:     "A simple weeknight pasta with fresh basil.",
			Category:        "dinner",
			Tags:            []string{"dinner", "vegetarian"},
			PreparationTime: "5m",
			CookingTime:     "20m",
			Servings:        2,
			Ingredients:     []string{"200g spaghetti", "400g canned tomatoes", "2 cloves garlic", "fresh basil", "olive oil"},
			Instructions:    []string{"Boil the pasta.", "Simmer garlic and tomatoes in olive oil.", "Toss pasta with the sauce and basil."},
		},
	}

	existing, err := recipes.List(ctx)
	if err != nil {
		logger.WithError(err).Fatal("could not list recipes")
	}
	have := make(map[string]bool, len(existing))
	for _, r := range existing {
		have[r.Title] = true
	}
	for _, r := range samples {
		if have[r.Title] {
			continue
		}
		if err := recipes.Create(ctx, r); err != nil {
			logger.WithError(err).WithField("title", r.Title).Fatal("could not seed recipe")
		}
		logger.WithField("title", r.Title).Info("recipe created")
	}

	logger.Info("seed complete")
}
