// Package denotion contains the endpoints for the donation links admins
// curate alongside the catalog.
package denotion

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

type createBody struct {
	Name  string `json:"name" binding:"required"`
	Image string `json:"image" binding:"required"`
	Link  string `json:"link" binding:"required,url"`
}

type updateBody struct {
	Name  string `json:"name"`
	Image string `json:"image"`
	Link  string `json:"link"`
}

func Create(c *gin.Context, d *internal.Deps) {
	principal := c.MustGet(middleware.AuthUserKey).(model.Principal)

	var data createBody
	if err := c.ShouldBindJSON(&data); err != nil {
		httperr.BadRequest(c, "invalid request body")
		return
	}

	den := model.Denotion{
		Name:    data.Name,
		Image:   data.Image,
		Link:    data.Link,
		AdminID: principal.ID,
	}

	if err := d.DB.Create(&den).Error; err != nil {
		httperr.Internal(c, "Failed to create denotion", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "denotion created successfully",
		"data":    den,
	})
}

func Update(c *gin.Context, d *internal.Deps) {
	principal := c.MustGet(middleware.AuthUserKey).(model.Principal)

	denotionID, err := strconv.Atoi(c.Param("denotionId"))
	if err != nil {
		httperr.BadRequest(c, "invalid denotion id")
		return
	}

	var data updateBody
	if err := c.ShouldBindJSON(&data); err != nil {
		httperr.BadRequest(c, "invalid request body")
		return
	}

	var den model.Denotion

	err = d.DB.
		Where("id = ? AND admin_id = ?", denotionID, principal.ID).
		First(&den).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "denotion not found")
			return
		}

		httperr.Internal(c, "Failed to fetch denotion", err)
		return
	}

	if data.Name != "" {
		den.Name = data.Name
	}
	if data.Image != "" {
		den.Image = data.Image
	}
	if data.Link != "" {
		den.Link = data.Link
	}

	if err := d.DB.Save(&den).Error; err != nil {
		httperr.Internal(c, "Failed to save denotion", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "denotion updated successfully",
		"data":    den,
	})
}

func Delete(c *gin.Context, d *internal.Deps) {
	principal := c.MustGet(middleware.AuthUserKey).(model.Principal)

	denotionID, err := strconv.Atoi(c.Param("denotionId"))
	if err != nil {
		httperr.BadRequest(c, "invalid denotion id")
		return
	}

	r := d.DB.
		Where("id = ? AND admin_id = ?", denotionID, principal.ID).
		Delete(&model.Denotion{})
	if r.Error != nil {
		httperr.Internal(c, "Failed to delete denotion", r.Error)
		return
	}

	if r.RowsAffected == 0 {
		httperr.NotFound(c, "denotion not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "denotion deleted successfully",
	})
}

func Fetch(c *gin.Context, d *internal.Deps) {
	denotionID, err := strconv.Atoi(c.Param("denotionId"))
	if err != nil {
		httperr.BadRequest(c, "invalid denotion id")
		return
	}

	var den model.Denotion

	if err := d.DB.First(&den, denotionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "denotion not found")
			return
		}

		httperr.Internal(c, "Failed to fetch denotion", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "get denotion successfully",
		"data":    den,
	})
}

func FetchAll(c *gin.Context, d *internal.Deps) {
	var denotions []model.Denotion

	if err := d.DB.Find(&denotions).Error; err != nil {
		httperr.Internal(c, "Failed to fetch denotions", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "get denotions successfully",
		"data":    denotions,
	})
}
