package web_router

import (
	"net/http"

	"github.com/haierkeys/fast-note-web/internal/app"

	"github.com/gin-gonic/gin"
)

// PageHandler 静态页面处理器
type PageHandler struct {
	*Handler
}

// NewPageHandler 创建 PageHandler 实例
func NewPageHandler(a *app.App) *PageHandler {
	return &PageHandler{
		Handler: NewHandler(a),
	}
}

// Contacts 联系方式页面
func (h *PageHandler) Contacts(c *gin.Context) {
	h.render(c, http.StatusOK, "contacts.html", gin.H{
		"Title": "Контакты",
	})
}
