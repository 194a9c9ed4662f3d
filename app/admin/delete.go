package admin

import (
	"net/http"

	"boycottwatch/catalog-api/internal"
	"boycottwatch/catalog-api/internal/model"
	"boycottwatch/catalog-api/pkg/httperr"
	"boycottwatch/catalog-api/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// Delete removes the admin account. Products, denotions and codes created
// by the admin go with it through the cascades on their foreign keys.
func Delete(c *gin.Context, d *internal.Deps) {
	principal := c.MustGet(middleware.AuthUserKey).(model.Principal)

	r := d.DB.Delete(&model.Admin{}, principal.ID)
	if r.Error != nil {
		httperr.Internal(c, "Failed to delete admin", r.Error)
		return
	}

	if r.RowsAffected == 0 {
		httperr.NotFound(c, "admin not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "account deleted successfully",
	})
}
