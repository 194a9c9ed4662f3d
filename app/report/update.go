package report

import (
	"errors"
	"net/http"
	"strconv"

	"boycottwatch/catalog-api/internal"
	"boycottwatch/catalog-api/internal/model"
	"boycottwatch/catalog-api/pkg/httperr"
	"boycottwatch/catalog-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type updateBody struct {
	Message string `json:"message" binding:"required"`
}

func Update(c *gin.Context, d *internal.Deps) {
	principal := c.MustGet(middleware.AuthUserKey).(model.Principal)

	reportID, err := strconv.Atoi(c.Param("reportId"))
	if err != nil {
		httperr.BadRequest(c, "invalid report id")
		return
	}

	var data updateBody
	if err := c.ShouldBindJSON(&data); err != nil {
		httperr.BadRequest(c, "invalid request body")
		return
	}

	var rep model.Report

	// Users can only touch reports they filed themselves
	err = d.DB.
		Where("id = ? AND user_id = ?", reportID, principal.ID).
		First(&rep).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "report not found")
			return
		}

		httperr.Internal(c, "Failed to fetch report", err)
		return
	}

	rep.Message = data.Message

	if err := d.DB.Save(&rep).Error; err != nil {
		httperr.Internal(c, "Failed to save report", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "report updated successfully",
		"data":    rep,
	})
}
