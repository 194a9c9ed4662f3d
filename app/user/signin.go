package user

import (
	"errors"
	"net/http"

	"boycottwatch/catalog-api/internal"
	"boycottwatch/catalog-api/internal/model"
	"boycottwatch/catalog-api/pkg/httperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type signInBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn verifies the password and rotates the stored login token. An
// unverified account is answered exactly like an unknown one so the
// endpoint can't be used to probe which emails are registered.
func SignIn(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data signInBody
	if err := c.ShouldBind(&data); err != nil {
		httperr.BadRequest(c, "invalid request body")

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Email == "" {
		httperr.BadRequest(c, "email field can't be empty")
		return
	}

	if data.Password == "" {
		httperr.BadRequest(c, "password field can't be empty")
		return
	}

	var u model.User

	err := d.DB.
		Where("email = ? AND email_verified = ?", data.Email, true).
		First(&u).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "please verify your email")
			return
		}

		httperr.Internal(c, "Failed to look up user", err)
		return
	}

	ok, err := d.Argon.ComparePassword(data.Password, u.PasswordHash)
	if err != nil {
		httperr.Internal(c, "Failed to verify password", err)
		return
	}

	if !ok {
		httperr.Abort(c, httperr.ErrInvalidPassword)
		return
	}

	token, err := d.Tokens.IssueLoginToken(u.Email, u.ID, u.Role)
	if err != nil {
		httperr.Internal(c, "Failed to generate login token", err)
		return
	}

	// Concurrent sign-ins both succeed; the stored token is simply the
	// last one written.
	err = d.DB.Model(&model.User{}).
		Where("id = ?", u.ID).
		Update("token", token).
		Error
	if err != nil {
		httperr.Internal(c, "Failed to store login token", err)
		return
	}

	var fresh model.User
	if err := d.DB.First(&fresh, u.ID).Error; err != nil {
		httperr.Internal(c, "Failed to reload user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "logged in successfully",
		"data":        fresh,
		"accesstoken": token,
	})
}
