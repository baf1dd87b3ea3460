package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/code2day/recipe-api/config"
	"github.com/code2day/recipe-api/internal/application"
	repo "github.com/code2day/recipe-api/internal/domain/repository"
	"github.com/code2day/recipe-api/internal/infrastructure/postgres"
	ihttp "github.com/code2day/recipe-api/internal/interface/http"
	"github.com/code2day/recipe-api/pkg/helpers"
)

// Container wires repositories, services and handlers from shared
// infrastructure clients. Optional clients (ES, GCS) may be nil; the services
// degrade gracefully without them.
type Container struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	Pool   *pgxpool.Pool
	Redis  *redis.Client
	JWT    *helpers.JWTManager
	Cookie *helpers.CookieManager

	Users     repo.UserRepository
	Recipes   repo.RecipeRepository
	Favorites repo.FavoriteRepository
	Comments  repo.CommentRepository
	Tags      repo.TagRepository

	Registration *application.RegistrationService
	FavoritesSvc *application.FavoritesService
	RecipeSvc    *application.RecipeService
	CommentSvc   *application.CommentService
	TagSvc       *application.TagService

	UserHandler    *ihttp.UserHandler
	RecipeHandler  *ihttp.RecipeHandler
	CommentHandler *ihttp.CommentHandler
	TagHandler     *ihttp.TagHandler
}

func New(
	cfg *config.Config,
	logger *logrus.Logger,
	pool *pgxpool.Pool,
	rdb *redis.Client,
	notifier application.Notifier,
	es *elasticsearch.Client,
	gcs *storage.Client,
) *Container {
	c := &Container{
		Cfg:    cfg,
		Logger: logger,
		Pool:   pool,
		Redis:  rdb,
		JWT:    helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL),
		Cookie: helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure),
	}

	c.Users = postgres.NewUserRepository(pool)
	c.Recipes = postgres.NewRecipeRepository(pool)
	c.Favorites = postgres.NewFavoriteRepository(pool)
	c.Comments = postgres.NewCommentRepository(pool)
	c.Tags = postgres.NewTagRepository(pool)

	c.Registration = application.NewRegistrationService(c.Users, c.Favorites, c.JWT, notifier, logger)
	c.Registration.GCS = gcs
	c.Registration.GCSBucket = cfg.GCSBucket
	c.Registration.SMSVerification = cfg.SMSVerification

	c.FavoritesSvc = application.NewFavoritesService(c.Users, c.Recipes, c.Favorites, logger)
	c.RecipeSvc = application.NewRecipeService(c.Recipes, logger, es, cfg.ESRecipeIndex)
	c.CommentSvc = application.NewCommentService(c.Comments, c.Recipes)
	c.TagSvc = application.NewTagService(c.Tags)

	c.UserHandler = ihttp.NewUserHandler(c.Registration, c.FavoritesSvc, c.Cookie)
	c.RecipeHandler = ihttp.NewRecipeHandler(c.RecipeSvc, c.FavoritesSvc)
	c.CommentHandler = ihttp.NewCommentHandler(c.CommentSvc)
	c.TagHandler = ihttp.NewTagHandler(c.TagSvc)

	return c
}
