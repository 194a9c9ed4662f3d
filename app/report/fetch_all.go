package report

import (
	"net/http"

	"boycottwatch/catalog-api/internal"
	"boycottwatch/catalog-api/internal/model"
	"boycottwatch/catalog-api/pkg/httperr"

	"github.com/gin-gonic/gin"
)

func FetchAll(c *gin.Context, d *internal.Deps) {
	var reports []model.Report

	err := d.DB.
		Order("created_at desc").
		Find(&reports).
		Error
	if err != nil {
		httperr.Internal(c, "Failed to fetch reports", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "all reports",
		"data":    reports,
	})
}
