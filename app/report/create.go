// Package report contains the endpoints users call to file reports against
// catalog products.
package report

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

type createBody struct {
	Message   string `json:"message" binding:"required"`
	ProductID uint   `json:"productId" binding:"required"`
}

func Create(c *gin.Context, d *internal.Deps) {
	principal := c.MustGet(middleware.AuthUserKey).(model.Principal)

	var data createBody
	if err := c.ShouldBindJSON(&data); err != nil {
		httperr.BadRequest(c, "invalid request body")
		return
	}

	var p model.Product

	if err := d.DB.First(&p, data.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "product not found")
			return
		}

		httperr.Internal(c, "Failed to fetch product", err)
		return
	}

	// The reporter's name and email are snapshotted on the row
	var reporter model.User
	if err := d.DB.Select("name").First(&reporter, principal.ID).Error; err != nil {
		httperr.Internal(c, "Failed to fetch reporter", err)
		return
	}

	rep := model.Report{
		Message:   data.Message,
		ProductID: p.ID,
		UserID:    principal.ID,
		UserEmail: principal.Email,
		Username:  reporter.Name,
	}

	if err := d.DB.Create(&rep).Error; err != nil {
		httperr.Internal(c, "Failed to create report", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "report created successfully",
		"data":    rep,
	})
}
