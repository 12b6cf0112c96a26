package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/haierkeys/fast-note-web/pkg/code"
)

// VersionInfo version information // 版本信息
type VersionInfo struct {
	Version   string `json:"version"`
	GitTag    string `json:"gitTag"`
	BuildTime string `json:"buildTime"`
}

type Response struct {
	Ctx *gin.Context
}

func NewResponse(ctx *gin.Context) *Response {
	return &Response{
		Ctx: ctx,
	}
}

// GetRequestIP gets the request IP
// GetRequestIP 获取ip
func GetRequestIP(c *gin.Context) string {
	reqIP := c.ClientIP()
	if reqIP == "::1" {
		reqIP = "127.0.0.1"
	}
	return reqIP
}

// ToHTML renders a named template with status 200
// ToHTML 渲染模板页面
func (r *Response) ToHTML(name string, data gin.H) {
	r.ToHTMLWithStatus(http.StatusOK, name, data)
}

func (r *Response) ToHTMLWithStatus(status int, name string, data gin.H) {
	r.Ctx.Set("status_code", status)
	r.Ctx.HTML(status, name, data)
}

// RedirectTo sends a 302 Found to location
// RedirectTo 302 跳转
func (r *Response) RedirectTo(location string) {
	r.Ctx.Set("status_code", http.StatusFound)
	r.Ctx.Redirect(http.StatusFound, location)
}

// ToErrorPage renders the shared error template for the given code
// ToErrorPage 根据错误码渲染错误页面
func (r *Response) ToErrorPage(codeObj *code.Code, traceID string) {
	language := r.Ctx.GetString("lang")
	status := codeObj.StatusCode()
	r.ToHTMLWithStatus(status, "error.html", gin.H{
		"Status":  status,
		"Code":    codeObj.Code(),
		"Message": codeObj.MsgIn(language),
		"Details": codeObj.Details(),
		"TraceID": traceID,
	})
}
