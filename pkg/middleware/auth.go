// Package middleware contains any custom middleware used in the app
package middleware

import (
	"errors"
	"strings"

	"boycottwatch/catalog-api/internal/model"
	"boycottwatch/catalog-api/pkg/httperr"
	"boycottwatch/catalog-api/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthUserKey is the context key under which the resolved principal is
// published. Handlers behind the auth middleware may trust it
// unconditionally.
const AuthUserKey = "authUser"

// NewAuthMiddleware resolves the accesstoken header to a principal. The
// role claim decides which table the id indexes into: Admin and User are
// disjoint entities with disjoint primary-key spaces, so a bare id is
// meaningless without it. Exactly one storage read, no writes.
func NewAuthMiddleware(d *gorm.DB, codec *security.TokenCodec, prefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetString("requestID")

		raw := c.GetHeader("accesstoken")
		if raw == "" {
			httperr.Abort(c, httperr.ErrUnauthenticated)
			return
		}

		if !strings.HasPrefix(raw, prefix) {
			httperr.Abort(c, httperr.ErrBadPrefix)
			return
		}

		claims, err := codec.VerifyLoginToken(strings.TrimPrefix(raw, prefix))
		if err != nil {
			if errors.Is(err, security.ErrTokenExpired) {
				zap.L().Debug("Rejected expired login token", zap.String("requestID", requestID))
				httperr.Abort(c, httperr.ErrTokenExpired)
				return
			}

			zap.L().Debug("Rejected invalid login token", zap.Error(err), zap.String("requestID", requestID))
			httperr.Abort(c, httperr.ErrInvalidToken)
			return
		}

		if claims.ID == 0 {
			httperr.Abort(c, httperr.ErrBadPayload)
			return
		}

		var principal model.Principal

		switch claims.Role {
		case model.RoleAdmin:
			err = d.Model(&model.Admin{}).
				Select("id", "email", "role").
				Where("id = ?", claims.ID).
				First(&principal).
				Error
		case model.RoleUser:
			err = d.Model(&model.User{}).
				Select("id", "email", "role").
				Where("id = ?", claims.ID).
				First(&principal).
				Error
		default:
			httperr.Abort(c, httperr.ErrBadPayload)
			return
		}

		if err != nil {
			// Token and row can diverge, e.g. an account deleted after the
			// token was issued.
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Abort(c, httperr.ErrPrincipalNotFound)
				return
			}

			httperr.Internal(c, "Failed to look up principal", err)
			return
		}

		c.Set(AuthUserKey, principal)
		c.Next()
	}
}
