package product

import (
	"errors"
	"net/http"
	"strconv"

	"boycottwatch/catalog-api/internal"
	"boycottwatch/catalog-api/internal/model"
	"boycottwatch/catalog-api/pkg/httperr"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Fetch(c *gin.Context, d *internal.Deps) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		httperr.BadRequest(c, "invalid product id")
		return
	}

	var p model.Product

	if err := d.DB.First(&p, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "product not found")
			return
		}

		httperr.Internal(c, "Failed to fetch product", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "product retrieved successfully",
		"data":    p,
	})
}
