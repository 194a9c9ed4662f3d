package admin

import (
	"errors"
	"net/http"

	"boycottwatch/catalog-api/internal"
	"boycottwatch/catalog-api/internal/model"
	"boycottwatch/catalog-api/pkg/httperr"
	"boycottwatch/catalog-api/pkg/security"

	"github.com/gin-gonic/gin"
)

func ConfirmEmail(c *gin.Context, d *internal.Deps) {
	claims, err := d.Tokens.VerifyVerificationToken(c.Param("token"))
	if err != nil {
		if errors.Is(err, security.ErrTokenExpired) {
			httperr.Abort(c, httperr.ErrTokenExpired)
			return
		}

		httperr.BadRequest(c, "invalid token")
		return
	}

	r := d.DB.Model(&model.Admin{}).
		Where("email = ?", claims.Email).
		Update("email_verified", true)
	if r.Error != nil {
		httperr.Internal(c, "Failed to mark email as verified", r.Error)
		return
	}

	if r.RowsAffected == 0 {
		httperr.NotFound(c, "email not verified")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "email verified successfully",
	})
}
