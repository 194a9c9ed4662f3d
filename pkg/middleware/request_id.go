package middleware

import (
	"boycottwatch/catalog-api/pkg/util"

	"github.com/gin-gonic/gin"
)

// NewRequestIDMiddleware generates a request ID for each incoming request
// and sets it as requestID so every log line and error payload can carry it
func NewRequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("requestID", util.RandStr(10))
		c.Next()
	}
}
