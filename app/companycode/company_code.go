// Package companycode contains the endpoints for the company barcode
// prefixes used to attribute scanned products to a manufacturer.
package companycode

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
	Name          string `json:"name" binding:"required"`
	BarcodeNumber int    `json:"barcodeNumber" binding:"required"`
}

type updateBody struct {
	Name          string `json:"name"`
	BarcodeNumber *int   `json:"barcodeNumber"`
}

func Create(c *gin.Context, d *internal.Deps) {
	principal := c.MustGet(middleware.AuthUserKey).(model.Principal)

	var data createBody
	if err := c.ShouldBindJSON(&data); err != nil {
		httperr.BadRequest(c, "invalid request body")
		return
	}

	code := model.CompanyCode{
		Name:          data.Name,
		BarcodeNumber: data.BarcodeNumber,
		AdminID:       principal.ID,
	}

	if err := d.DB.Create(&code).Error; err != nil {
		httperr.Internal(c, "Failed to create company code", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "company code created successfully",
		"data":    code,
	})
}

func Update(c *gin.Context, d *internal.Deps) {
	principal := c.MustGet(middleware.AuthUserKey).(model.Principal)

	codeID, err := strconv.Atoi(c.Param("companyCodeId"))
	if err != nil {
		httperr.BadRequest(c, "invalid company code id")
		return
	}

	var data updateBody
	if err := c.ShouldBindJSON(&data); err != nil {
		httperr.BadRequest(c, "invalid request body")
		return
	}

	var code model.CompanyCode

	err = d.DB.
		Where("id = ? AND admin_id = ?", codeID, principal.ID).
		First(&code).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "company code not found")
			return
		}

		httperr.Internal(c, "Failed to fetch company code", err)
		return
	}

	if data.Name != "" {
		code.Name = data.Name
	}
	if data.BarcodeNumber != nil {
		code.BarcodeNumber = *data.BarcodeNumber
	}

	if err := d.DB.Save(&code).Error; err != nil {
		httperr.Internal(c, "Failed to save company code", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "company code updated successfully",
		"data":    code,
	})
}

func Delete(c *gin.Context, d *internal.Deps) {
	principal := c.MustGet(middleware.AuthUserKey).(model.Principal)

	codeID, err := strconv.Atoi(c.Param("companyCodeId"))
	if err != nil {
		httperr.BadRequest(c, "invalid company code id")
		return
	}

	r := d.DB.
		Where("id = ? AND admin_id = ?", codeID, principal.ID).
		Delete(&model.CompanyCode{})
	if r.Error != nil {
		httperr.Internal(c, "Failed to delete company code", r.Error)
		return
	}

	if r.RowsAffected == 0 {
		httperr.NotFound(c, "company code not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "company code deleted successfully",
	})
}

func Fetch(c *gin.Context, d *internal.Deps) {
	codeID, err := strconv.Atoi(c.Param("companyCodeId"))
	if err != nil {
		httperr.BadRequest(c, "invalid company code id")
		return
	}

	var code model.CompanyCode

	if err := d.DB.First(&code, codeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "company code not found")
			return
		}

		httperr.Internal(c, "Failed to fetch company code", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "get company code successfully",
		"data":    code,
	})
}

func FetchAll(c *gin.Context, d *internal.Deps) {
	var codes []model.CompanyCode

	if err := d.DB.Find(&codes).Error; err != nil {
		httperr.Internal(c, "Failed to fetch company codes", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "get company codes successfully",
		"data":    codes,
	})
}
