// Package user contains the account endpoints for the User principal
package user

import (
	"context"
	"fmt"
	"net/http"

	"boycottwatch/catalog-api/internal"
	"boycottwatch/catalog-api/internal/model"
	"boycottwatch/catalog-api/pkg/httperr"
	"boycottwatch/catalog-api/validators"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const folderCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type signUpBody struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

// SignUp creates an unverified account. No login token is issued here: the
// account is unusable for sign-in until the confirmation link is followed.
func SignUp(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data signUpBody
	if err := c.ShouldBind(&data); err != nil {
		httperr.BadRequest(c, "invalid request body")

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Name == "" {
		httperr.BadRequest(c, "name field can't be empty")
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		httperr.BadRequest(c, err.Error())
		return
	}

	if err := validators.PasswordValidator(data.Password); err != nil {
		httperr.BadRequest(c, err.Error())
		return
	}

	var found bool

	err := d.DB.Model(&model.User{}).
		Select("count(*) > 0").
		Where("email = ?", data.Email).
		Find(&found).
		Error
	if err != nil {
		httperr.Internal(c, "Failed to check if user is registered", err)
		return
	}

	if found {
		httperr.Abort(c, httperr.ErrDuplicateEmail)
		return
	}

	hash, err := d.Argon.HashPassword(data.Password)
	if err != nil {
		httperr.Internal(c, "Failed to hash password", err)
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "please upload image")
		return
	}

	folderID, err := gonanoid.Generate(folderCharset, 5)
	if err != nil {
		httperr.Internal(c, "Failed to generate folder ID", err)
		return
	}

	folder := fmt.Sprintf("%s/users/%s", viper.GetString("storage.main_folder"), folderID)

	img, err := d.Uploader.Upload(c.Request.Context(), file, folder)
	if err != nil {
		httperr.Internal(c, "Failed to upload profile image", err)
		return
	}

	u := model.User{
		Name:         data.Name,
		Email:        data.Email,
		PasswordHash: hash,
		ImageURL:     img.URL,
		ImageID:      img.PublicID,
		FolderID:     folderID,
		Role:         model.RoleUser,
	}

	// The row is created before the mail goes out so a failed insert, e.g.
	// a raced duplicate email, never leaves a confirmation link pointing at
	// an account that doesn't exist.
	if err := d.DB.Create(&u).Error; err != nil {
		discardImage(d, img.PublicID)
		httperr.Internal(c, "Failed to create user", err)
		return
	}

	verifToken, err := d.Tokens.IssueVerificationToken(data.Email)
	if err != nil {
		rollbackSignUp(d, u.ID, img.PublicID)
		httperr.Internal(c, "Failed to generate verification token", err)
		return
	}

	if err := d.Mailer.SendConfirmation(data.Email, confirmationLink(c, verifToken)); err != nil {
		// Without the link the account can never verify, and the unique
		// email would block a retry. Roll the row back so sign-up can be
		// attempted again.
		rollbackSignUp(d, u.ID, img.PublicID)
		httperr.Internal(c, "Failed to send verification email", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "user created successfully",
		"data": model.Principal{
			ID:    u.ID,
			Email: u.Email,
			Role:  u.Role,
		},
	})
}

func discardImage(d *internal.Deps, imageID string) {
	if err := d.Uploader.Delete(context.Background(), imageID); err != nil {
		zap.L().Warn("Failed to delete image of rolled back sign-up", zap.Error(err), zap.String("imageID", imageID))
	}
}

func rollbackSignUp(d *internal.Deps, id uint, imageID string) {
	if err := d.DB.Delete(&model.User{}, id).Error; err != nil {
		zap.L().Warn("Failed to roll back user row", zap.Error(err), zap.Uint("id", id))
	}

	discardImage(d, imageID)
}

func confirmationLink(c *gin.Context, token string) string {
	scheme := "http"
	if viper.GetBool("host.ssl.enabled") {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s/user/confirm-email/%s", scheme, c.Request.Host, token)
}
