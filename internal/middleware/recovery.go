package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/haierkeys/fast-note-web/pkg/code"
	"github.com/haierkeys/fast-note-web/pkg/errors"
	"github.com/haierkeys/fast-note-web/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryWithLogger 创建带日志器的 Recovery 中间件（支持依赖注入）
// panic 详情只写入日志，页面只显示通用 500 信息与 TraceID
func RecoveryWithLogger(lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		defer func() {
			if err := recover(); err != nil {
				fields := []zap.Field{
					zap.String(logger.FieldTraceID, GetTraceIDFromGin(c)),
					zap.String("router", path),
					zap.String(logger.FieldMethod, c.Request.Method),
					zap.String("query", query),
					zap.String("ip", c.ClientIP()),
					zap.String("user-agent", c.Request.UserAgent()),
					zap.String("stack", string(debug.Stack())), // 错误堆栈
				}
				switch e := err.(type) {
				case error:
					lg.Error("Recovered from panic", append(fields, zap.Error(e))...)
				default:
					lg.Error("Recovered from unknown panic", append(fields, zap.String("panic_value", fmt.Sprintf("%v", e)))...)
				}

				errors.ErrorPage(c, GetTraceIDFromGin(c), code.ErrorServerInternal)
				c.Abort()
			}
		}()

		c.Next()
	}
}
