package errors

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/haierkeys/fast-note-web/pkg/app"
	"github.com/haierkeys/fast-note-web/pkg/code"
)

// AppError 统一应用错误结构体
// 包含错误码、消息、详情、追踪ID和时间戳
type AppError struct {
	// Code 错误码
	Code int `json:"code"`
	// Message 错误消息
	Message string `json:"message"`
	// Details 错误详情（可选）
	Details []string `json:"details,omitempty"`
	// TraceID 请求追踪ID
	TraceID string `json:"traceId,omitempty"`
	// Cause 原始错误（不序列化到JSON）
	Cause error `json:"-"`
	// Timestamp 错误发生时间
	Timestamp time.Time `json:"timestamp"`

	source *code.Code
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap 实现 errors.Unwrap 接口，支持错误链路追踪
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is 使 errors.Is 可以直接与错误码比较
func (e *AppError) Is(target error) bool {
	return e.source != nil && e.source.Is(target)
}

// NewAppError 从 Code 对象创建 AppError
func NewAppError(c *code.Code, cause error) *AppError {
	return &AppError{
		Code:      c.Code(),
		Message:   c.Msg(),
		Details:   c.Details(),
		Cause:     cause,
		Timestamp: time.Now(),
		source:    c,
	}
}

// WithTraceID 设置 TraceID 并返回自身（链式调用）
func (e *AppError) WithTraceID(traceID string) *AppError {
	e.TraceID = traceID
	return e
}

// WithDetails 设置详情并返回自身（链式调用）
func (e *AppError) WithDetails(details ...string) *AppError {
	e.Details = details
	if e.source != nil {
		e.source = e.source.WithDetails(details...)
	}
	return e
}

// ToCode 从错误链中取出错误码，未知错误视为服务器内部错误
func ToCode(err error) *code.Code {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.source != nil {
		return appErr.source
	}
	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		return codeErr
	}
	return code.ErrorServerInternal
}

// HTTPStatus maps an error to the HTTP status used for its page
// HTTPStatus 将错误映射为 HTTP 状态码
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return ToCode(err).StatusCode()
}

// ErrorPage 渲染统一的 HTML 错误页面，携带 TraceID
func ErrorPage(c *gin.Context, traceID string, err error) {
	app.NewResponse(c).ToErrorPage(ToCode(err), traceID)
}

// IsAppError 检查错误是否为 AppError 类型
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 从错误链中获取 AppError
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
