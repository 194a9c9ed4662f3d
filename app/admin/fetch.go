package admin

import (
	"errors"
	"net/http"

	"boycottwatch/catalog-api/internal"
	"boycottwatch/catalog-api/internal/model"
	"boycottwatch/catalog-api/pkg/httperr"
	"boycottwatch/catalog-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Fetch(c *gin.Context, d *internal.Deps) {
	principal := c.MustGet(middleware.AuthUserKey).(model.Principal)

	var a model.Admin

	err := d.DB.
		Select("id", "name", "email", "image_url", "role").
		First(&a, principal.ID).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "admin not found")
			return
		}

		httperr.Internal(c, "Failed to fetch admin", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "get data successfully",
		"data":    a,
	})
}
