package product

import (
	"net/http"

	"boycottwatch/catalog-api/internal"
	"boycottwatch/catalog-api/internal/model"
	"boycottwatch/catalog-api/pkg/httperr"

	"github.com/gin-gonic/gin"
)

func FetchAll(c *gin.Context, d *internal.Deps) {
	var products []model.Product

	err := d.DB.
		Order("created_at desc").
		Find(&products).
		Error
	if err != nil {
		httperr.Internal(c, "Failed to fetch products", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "all products retrieved successfully",
		"data":    products,
	})
}
