package middleware

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/hollandale/planfreeze-api/internal/errors"
	"github.com/hollandale/planfreeze-api/internal/models"
)

// RequireRoles allows the request through only when the caller's role is
// one of the given roles. Violations get the generic access-denied
// response; no internal detail is leaked.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := GetUserRole(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		apierrors.Forbidden(c, "")
		c.Abort()
	}
}

// RequireManager allows admins and project managers through. This guards
// every task, project, baseline, cost and allocation mutation.
func RequireManager() gin.HandlerFunc {
	return RequireRoles(models.RoleAdmin, models.RoleProjectManager)
}

// RequireAdmin allows only admins through. This guards the admin panel
// (user management, resource deletion).
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(models.RoleAdmin)
}
