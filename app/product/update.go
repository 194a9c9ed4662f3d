package product

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
	Name            string `json:"name"`
	Category        string `json:"category"`
	Image           string `json:"image"`
	Country         string `json:"country"`
	Boycott         *bool  `json:"boycott"`
	ReasonOfBoycott string `json:"reasonOfBoycott"`
	Rate            *int   `json:"rate"`
}

func Update(c *gin.Context, d *internal.Deps) {
	principal := c.MustGet(middleware.AuthUserKey).(model.Principal)

	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		httperr.BadRequest(c, "invalid product id")
		return
	}

	var data updateBody
	if err := c.ShouldBindJSON(&data); err != nil {
		httperr.BadRequest(c, "invalid request body")
		return
	}

	var p model.Product

	// Admins can only touch their own rows
	err = d.DB.
		Where("id = ? AND admin_id = ?", productID, principal.ID).
		First(&p).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "product not found")
			return
		}

		httperr.Internal(c, "Failed to fetch product", err)
		return
	}

	if data.Name != "" {
		p.Name = data.Name
	}
	if data.Category != "" {
		p.Category = data.Category
	}
	if data.Image != "" {
		p.Image = data.Image
	}
	if data.Country != "" {
		p.Country = data.Country
	}
	if data.Boycott != nil {
		p.Boycott = *data.Boycott
	}
	if data.ReasonOfBoycott != "" {
		p.ReasonOfBoycott = data.ReasonOfBoycott
	}
	if data.Rate != nil {
		p.Rate = *data.Rate
	}

	if err := d.DB.Save(&p).Error; err != nil {
		httperr.Internal(c, "Failed to save product", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "product updated successfully",
		"data":    p,
	})
}
