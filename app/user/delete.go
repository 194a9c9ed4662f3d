package user

import (
	"net/http"

	"boycottwatch/catalog-api/internal"
	"boycottwatch/catalog-api/internal/model"
	"boycottwatch/catalog-api/pkg/httperr"
	"boycottwatch/catalog-api/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// Delete removes the account. Reports filed by the user go with it through
// the cascade on the foreign key.
func Delete(c *gin.Context, d *internal.Deps) {
	principal := c.MustGet(middleware.AuthUserKey).(model.Principal)

	r := d.DB.Delete(&model.User{}, principal.ID)
	if r.Error != nil {
		httperr.Internal(c, "Failed to delete user", r.Error)
		return
	}

	if r.RowsAffected == 0 {
		httperr.NotFound(c, "user not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "account deleted successfully",
	})
}
