package admin

import (
	"errors"
	"fmt"
	"net/http"

	"boycottwatch/catalog-api/internal"
	"boycottwatch/catalog-api/internal/model"
	"boycottwatch/catalog-api/pkg/httperr"
	"boycottwatch/catalog-api/pkg/middleware"
	"boycottwatch/catalog-api/validators"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type updateBody struct {
	Name  string `form:"name"`
	Email string `form:"email"`
}

func Update(c *gin.Context, d *internal.Deps) {
	principal := c.MustGet(middleware.AuthUserKey).(model.Principal)

	var data updateBody
	if err := c.ShouldBind(&data); err != nil {
		httperr.BadRequest(c, "invalid request body")
		return
	}

	var a model.Admin

	err := d.DB.First(&a, principal.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "admin not found")
			return
		}

		httperr.Internal(c, "Failed to fetch admin", err)
		return
	}

	if data.Name != "" {
		a.Name = data.Name
	}

	if data.Email != "" {
		if a.Email == data.Email {
			httperr.BadRequest(c, "this email is the same as the old email")
			return
		}

		if err := validators.EmailValidator(data.Email); err != nil {
			httperr.BadRequest(c, err.Error())
			return
		}

		var taken bool

		err := d.DB.Model(&model.Admin{}).
			Select("count(*) > 0").
			Where("email = ?", data.Email).
			Find(&taken).
			Error
		if err != nil {
			httperr.Internal(c, "Failed to check if email is taken", err)
			return
		}

		if taken {
			httperr.Abort(c, httperr.ErrDuplicateEmail)
			return
		}

		a.Email = data.Email
	}

	if file, err := c.FormFile("image"); err == nil {
		folder := fmt.Sprintf("%s/admins/%s", viper.GetString("storage.main_folder"), a.FolderID)

		img, err := d.Uploader.Upload(c.Request.Context(), file, folder)
		if err != nil {
			httperr.Internal(c, "Failed to upload profile image", err)
			return
		}

		if a.ImageID != "" {
			if err := d.Uploader.Delete(c.Request.Context(), a.ImageID); err != nil {
				zap.L().Warn("Failed to delete old profile image", zap.Error(err), zap.String("key", a.ImageID))
			}
		}

		a.ImageURL = img.URL
		a.ImageID = img.PublicID
	}

	if err := d.DB.Save(&a).Error; err != nil {
		httperr.Internal(c, "Failed to save admin", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "account updated successfully",
		"data":    a,
	})
}
