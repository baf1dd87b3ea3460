package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/code2day/recipe-api/internal/domain/entity"
	"github.com/code2day/recipe-api/pkg/response"
)

// RequireCapability gates a route on the authenticated account's role
// granting the capability. Must run after Auth.
func RequireCapability(cap entity.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := entity.Role(c.GetString(CtxUserRoleKey))
		if !role.Can(cap) {
			response.Abort(c, http.StatusForbidden, "operation not permitted for this role")
			return
		}
		c.Next()
	}
}
