// Package product contains the catalog endpoints. Mutations are admin-only
// and scoped to the admin who owns the row; reads are public.
package product

import (
	"net/http"

	"boycottwatch/catalog-api/internal"
	"boycottwatch/catalog-api/internal/model"
	"boycottwatch/catalog-api/pkg/httperr"
	"boycottwatch/catalog-api/pkg/middleware"

	"github.com/gin-gonic/gin"
)

type createBody struct {
	Name            string `json:"name" binding:"required"`
	Category        string `json:"category" binding:"required"`
	Image           string `json:"image" binding:"required"`
	Country         string `json:"country" binding:"required"`
	Boycott         bool   `json:"boycott"`
	ReasonOfBoycott string `json:"reasonOfBoycott"`
	Rate            int    `json:"rate" binding:"min=0,max=10"`
}

func Create(c *gin.Context, d *internal.Deps) {
	principal := c.MustGet(middleware.AuthUserKey).(model.Principal)

	var data createBody
	if err := c.ShouldBindJSON(&data); err != nil {
		httperr.BadRequest(c, "invalid request body")
		return
	}

	p := model.Product{
		Name:            data.Name,
		Category:        data.Category,
		Image:           data.Image,
		Country:         data.Country,
		Boycott:         data.Boycott,
		ReasonOfBoycott: data.ReasonOfBoycott,
		Rate:            data.Rate,
		AdminID:         principal.ID,
	}

	if err := d.DB.Create(&p).Error; err != nil {
		httperr.Internal(c, "Failed to create product", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "product created successfully",
		"data":    p,
	})
}
