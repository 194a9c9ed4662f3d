package report

import (
	"net/http"
	"strconv"

	"boycottwatch/catalog-api/internal"
	"boycottwatch/catalog-api/internal/model"
	"boycottwatch/catalog-api/pkg/httperr"
	"boycottwatch/catalog-api/pkg/middleware"

	"github.com/gin-gonic/gin"
)

func Delete(c *gin.Context, d *internal.Deps) {
	principal := c.MustGet(middleware.AuthUserKey).(model.Principal)

	reportID, err := strconv.Atoi(c.Param("reportId"))
	if err != nil {
		httperr.BadRequest(c, "invalid report id")
		return
	}

	r := d.DB.
		Where("id = ? AND user_id = ?", reportID, principal.ID).
		Delete(&model.Report{})
	if r.Error != nil {
		httperr.Internal(c, "Failed to delete report", r.Error)
		return
	}

	if r.RowsAffected == 0 {
		httperr.NotFound(c, "report not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "report deleted successfully",
	})
}
