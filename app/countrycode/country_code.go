// Package countrycode contains the endpoints for the barcode country
// prefix ranges used to attribute scanned products to a country.
package countrycode

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
	Name      string `json:"name" binding:"required"`
	FirstCode string `json:"firstCode" binding:"required"`
	LastCode  string `json:"lastCode" binding:"required"`
}

type updateBody struct {
	Name      string `json:"name"`
	FirstCode string `json:"firstCode"`
	LastCode  string `json:"lastCode"`
}

func Create(c *gin.Context, d *internal.Deps) {
	principal := c.MustGet(middleware.AuthUserKey).(model.Principal)

	var data createBody
	if err := c.ShouldBindJSON(&data); err != nil {
		httperr.BadRequest(c, "invalid request body")
		return
	}

	code := model.CountryCode{
		Name:      data.Name,
		FirstCode: data.FirstCode,
		LastCode:  data.LastCode,
		AdminID:   principal.ID,
	}

	if err := d.DB.Create(&code).Error; err != nil {
		httperr.Internal(c, "Failed to create country code", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "country code created successfully",
		"data":    code,
	})
}

func Update(c *gin.Context, d *internal.Deps) {
	principal := c.MustGet(middleware.AuthUserKey).(model.Principal)

	codeID, err := strconv.Atoi(c.Param("countryCodeId"))
	if err != nil {
		httperr.BadRequest(c, "invalid country code id")
		return
	}

	var data updateBody
	if err := c.ShouldBindJSON(&data); err != nil {
		httperr.BadRequest(c, "invalid request body")
		return
	}

	var code model.CountryCode

	err = d.DB.
		Where("id = ? AND admin_id = ?", codeID, principal.ID).
		First(&code).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "country code not found")
			return
		}

		httperr.Internal(c, "Failed to fetch country code", err)
		return
	}

	if data.Name != "" {
		code.Name = data.Name
	}
	if data.FirstCode != "" {
		code.FirstCode = data.FirstCode
	}
	if data.LastCode != "" {
		code.LastCode = data.LastCode
	}

	if err := d.DB.Save(&code).Error; err != nil {
		httperr.Internal(c, "Failed to save country code", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "country code updated successfully",
		"data":    code,
	})
}

func Delete(c *gin.Context, d *internal.Deps) {
	principal := c.MustGet(middleware.AuthUserKey).(model.Principal)

	codeID, err := strconv.Atoi(c.Param("countryCodeId"))
	if err != nil {
		httperr.BadRequest(c, "invalid country code id")
		return
	}

	r := d.DB.
		Where("id = ? AND admin_id = ?", codeID, principal.ID).
		Delete(&model.CountryCode{})
	if r.Error != nil {
		httperr.Internal(c, "Failed to delete country code", r.Error)
		return
	}

	if r.RowsAffected == 0 {
		httperr.NotFound(c, "country code not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "country code deleted successfully",
	})
}

func Fetch(c *gin.Context, d *internal.Deps) {
	codeID, err := strconv.Atoi(c.Param("countryCodeId"))
	if err != nil {
		httperr.BadRequest(c, "invalid country code id")
		return
	}

	var code model.CountryCode

	if err := d.DB.First(&code, codeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "country code not found")
			return
		}

		httperr.Internal(c, "Failed to fetch country code", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "get country code successfully",
		"data":    code,
	})
}

func FetchAll(c *gin.Context, d *internal.Deps) {
	var codes []model.CountryCode

	if err := d.DB.Find(&codes).Error; err != nil {
		httperr.Internal(c, "Failed to fetch country codes", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "get country codes successfully",
		"data":    codes,
	})
}
