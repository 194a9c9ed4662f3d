package middleware

import (
	"slices"

	"boycottwatch/catalog-api/internal/model"
	"boycottwatch/catalog-api/pkg/httperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireRoles rejects requests whose resolved principal is not in the
// allow-list. It must run after the auth middleware; a missing principal
// means the route is wired in the wrong order, and the gate fails closed.
func RequireRoles(allowed ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(AuthUserKey)
		if !ok {
			zap.L().Error("Role gate reached without a resolved principal",
				zap.String("path", c.FullPath()),
				zap.String("requestID", c.GetString("requestID")),
			)

			httperr.Abort(c, httperr.ErrUnauthenticated)
			return
		}

		principal := v.(model.Principal)

		if !slices.Contains(allowed, principal.Role) {
			httperr.Abort(c, httperr.ErrForbidden)
			return
		}

		c.Next()
	}
}
