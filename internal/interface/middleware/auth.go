package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	repo "github.com/code2day/recipe-api/internal/domain/repository"
	"github.com/code2day/recipe-api/pkg/helpers"
	"github.com/code2day/recipe-api/pkg/response"
)

const (
	CtxUserIDKey   = "userID"
	CtxUserRoleKey = "userRole"
)

// tokenFrom extracts the bearer token from the Authorization header, falling
// back to the auth cookie.
func tokenFrom(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if t, err := c.Cookie(helpers.AuthCookieName); err == nil {
		return t
	}
	return ""
}

// Auth validates the token and resolves the account it is bound to, setting
// userID and userRole in the Gin context.
func Auth(users repo.UserRepository, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFrom(c)
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "not authorized, no token")
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "not authorized, token failed")
			return
		}
		u, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "not authorized, token failed")
			return
		}

		c.Set(CtxUserIDKey, u.ID)
		c.Set(CtxUserRoleKey, string(u.Role))
		c.Next()
	}
}
