// Package web_router 提供页面路由处理器
package web_router

import (
	"context"
	"net/http"

	"github.com/haierkeys/fast-note-web/internal/app"
	"github.com/haierkeys/fast-note-web/internal/middleware"
	pkgapp "github.com/haierkeys/fast-note-web/pkg/app"
	apperrors "github.com/haierkeys/fast-note-web/pkg/errors"
	"github.com/haierkeys/fast-note-web/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 基础 Handler 结构体，封装 App Container
// 所有页面 Handler 都应该嵌入此结构体以获得依赖注入能力
type Handler struct {
	App *app.App
}

// NewHandler 创建基础 Handler 实例
func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}

// render 渲染页面，附带页脚所需的应用信息
func (h *Handler) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["AppName"] = c.GetString("app_name")
	data["AppVersion"] = c.GetString("app_version")
	pkgapp.NewResponse(c).ToHTMLWithStatus(status, name, data)
}

// errorPage 记录错误并渲染错误页面
func (h *Handler) errorPage(c *gin.Context, method string, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logError(c.Request.Context(), method, err)
	} else {
		h.App.Logger().Info(method, zap.Error(err), zap.String(logger.FieldTraceID, middleware.GetTraceIDFromGin(c)))
	}
	apperrors.ErrorPage(c, middleware.GetTraceIDFromGin(c), err)
}

func (h *Handler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String(logger.FieldTraceID, traceID),
	)
}
