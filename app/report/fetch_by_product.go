package report

import (
	"net/http"
	"strconv"

	"boycottwatch/catalog-api/internal"
	"boycottwatch/catalog-api/internal/model"
	"boycottwatch/catalog-api/pkg/httperr"

	"github.com/gin-gonic/gin"
)

func FetchByProduct(c *gin.Context, d *internal.Deps) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		httperr.BadRequest(c, "invalid product id")
		return
	}

	var reports []model.Report

	err = d.DB.
		Where("product_id = ?", productID).
		Order("created_at desc").
		Find(&reports).
		Error
	if err != nil {
		httperr.Internal(c, "Failed to fetch reports", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "all reports for specific product",
		"data":    reports,
	})
}
