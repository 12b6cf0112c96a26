package middleware

import (
	"github.com/haierkeys/fast-note-web/pkg/code"
	"github.com/haierkeys/fast-note-web/pkg/errors"

	"github.com/gin-gonic/gin"
)

// NoFound 404 handler
// NoFound 404 处理
func NoFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		errors.ErrorPage(c, GetTraceIDFromGin(c), code.ErrorNotFoundPage)
		c.Abort()
	}
}
