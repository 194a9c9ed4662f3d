package product

import (
	"net/http"
	"strconv"

	"boycottwatch/catalog-api/internal"
	"boycottwatch/catalog-api/internal/model"
	"boycottwatch/catalog-api/pkg/httperr"
	"boycottwatch/catalog-api/pkg/middleware"

	"github.com/gin-gonic/gin"
)

func Delete(c *gin.Context, d *internal.Deps) {
	principal := c.MustGet(middleware.AuthUserKey).(model.Principal)

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		httperr.BadRequest(c, "invalid product id")
		return
	}

	r := d.DB.
		Where("id = ? AND admin_id = ?", productID, principal.ID).
		Delete(&model.Product{})
	if r.Error != nil {
		httperr.Internal(c, "Failed to delete product", r.Error)
		return
	}

	if r.RowsAffected == 0 {
		httperr.NotFound(c, "product not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "product deleted successfully",
	})
}
