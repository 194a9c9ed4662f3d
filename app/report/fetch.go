package report

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
	reportID, err := strconv.Atoi(c.Param("reportId"))
	if err != nil {
		httperr.BadRequest(c, "invalid report id")
		return
	}

	var rep model.Report

	if err := d.DB.First(&rep, reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "report not found")
			return
		}

		httperr.Internal(c, "Failed to fetch report", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "get report successfully",
		"data":    rep,
	})
}
