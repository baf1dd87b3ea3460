package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/code2day/recipe-api/internal/container"
	"github.com/code2day/recipe-api/internal/interface/middleware"
)

// UserModule mounts the signup flow, auth and account routes. The
// unauthenticated auth endpoints sit behind a per-IP rate limit.
type UserModule struct {
	c    *container.Container
	auth gin.HandlerFunc
}

func NewUserModule(c *container.Container, auth gin.HandlerFunc) *UserModule {
	return &UserModule{c: c, auth: auth}
}

func (m *UserModule) Name() string { return "users" }

func (m *UserModule) Register(rg *gin.RouterGroup) {
	h := m.c.UserHandler
	cfg := m.c.Cfg

	limit := middleware.RateLimit(
		m.c.Redis,
		cfg.AuthRateMax,
		cfg.AuthRateWindow,
		middleware.KeyByIPAndPath(),
		middleware.AllowPrivateIP(),
	)

	users := rg.Group("/users")
	{
		users.POST("/register", limit, h.Register)
		users.POST("/verify-email", limit, h.VerifyEmail)
		users.POST("/info", limit, h.AddInfo)
		users.POST("/finalize-registration", limit, h.Finalize)
		users.POST("/login", limit, h.Login)
		users.POST("/guest", limit, h.GuestLogin)
		users.POST("/logout", h.Logout)

		users.GET("/profile", m.auth, h.Profile)
		users.POST("/profile/picture", m.auth, h.UploadProfilePicture)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", m.auth, h.UpdateUser)

		perUser := middleware.RateLimit(m.c.Redis, 60, cfg.AuthRateWindow, middleware.KeyByUserID(), nil)
		users.GET("/favorites", m.auth, h.ListFavorites)
		users.POST("/favorite/:recipeID", m.auth, perUser, h.AddFavorite)
		users.DELETE("/favorite/:recipeID", m.auth, perUser, h.RemoveFavorite)
	}
}
