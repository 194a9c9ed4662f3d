// Package httperr defines the typed rejections used by the auth core and the
// domain handlers, plus the single boundary that turns them into responses.
package httperr

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error is a rejection that is safe to show to the caller. Anything that is
// not an *Error collapses to an opaque 500 at the boundary.
type Error struct {
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func New(status int, msg string) *Error {
	return &Error{Status: status, Message: msg}
}

// Wrap attaches an internal cause to a typed rejection. The cause is only
// ever logged, never serialized.
func Wrap(e *Error, cause error) *Error {
	return &Error{Status: e.Status, Message: e.Message, cause: cause}
}

var (
	ErrUnauthenticated   = New(http.StatusUnauthorized, "please login first")
	ErrBadPrefix         = New(http.StatusBadRequest, "invalid token prefix")
	ErrBadPayload        = New(http.StatusBadRequest, "invalid token payload")
	ErrInvalidToken      = New(http.StatusUnauthorized, "invalid token")
	ErrTokenExpired      = New(http.StatusUnauthorized, "token expired, please login again")
	ErrPrincipalNotFound = New(http.StatusNotFound, "please sign up first")
	ErrForbidden         = New(http.StatusForbidden, "access denied")
	ErrDuplicateEmail    = New(http.StatusConflict, "email already exists")
	ErrInvalidPassword   = New(http.StatusBadRequest, "password is incorrect")
)

// Abort writes err as a structured response and stops the handler chain.
// Every rejection carries a stable status + message pair plus a timestamp
// and the request ID.
func Abort(c *gin.Context, err error) {
	requestID := c.GetString("requestID")

	var e *Error
	if !errors.As(err, &e) {
		zap.L().Error("Unexpected error reached the response boundary",
			zap.Error(err),
			zap.String("requestID", requestID),
		)

		e = &Error{Status: http.StatusInternalServerError, Message: "an unexpected error occurred"}
	}

	c.AbortWithStatusJSON(e.Status, gin.H{
		"error":     e.Message,
		"status":    e.Status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"requestID": requestID,
	})
}

// BadRequest is a shorthand for input-shape rejections where the message
// comes from a validator.
func BadRequest(c *gin.Context, msg string) {
	Abort(c, New(http.StatusBadRequest, msg))
}

// NotFound rejects with a resource-specific message.
func NotFound(c *gin.Context, msg string) {
	Abort(c, New(http.StatusNotFound, msg))
}

// Internal logs the cause and rejects with the opaque 500 payload.
func Internal(c *gin.Context, logMsg string, cause error) {
	requestID := c.GetString("requestID")
	zap.L().Error(logMsg, zap.Error(cause), zap.String("requestID", requestID))

	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error":     "an unexpected error occurred",
		"status":    http.StatusInternalServerError,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"requestID": requestID,
	})
}
