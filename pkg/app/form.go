package app

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

const defaultMultipartMemory = 32 << 20

// ValidError 单个字段的校验错误
type ValidError struct {
	Key     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

func (v ValidErrors) ErrorsToString() string {
	return strings.Join(v.Errors(), "; ")
}

// Map groups messages by field key for template rendering
// Map 按字段聚合错误信息，供模板渲染使用
func (v ValidErrors) Map() map[string][]string {
	m := make(map[string][]string, len(v))
	for _, err := range v {
		m[err.Key] = append(m[err.Key], err.Message)
	}
	return m
}

// ValidateStruct validates obj and returns the translated field errors, nil when valid
// ValidateStruct 校验结构体，返回翻译后的字段错误；通过时返回 nil
func ValidateStruct(v binding.StructValidator, trans ut.Translator, obj any) ValidErrors {
	err := v.ValidateStruct(obj)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidErrors{&ValidError{Key: "", Message: err.Error()}}
	}

	var errs ValidErrors
	for _, fe := range verrs {
		msg := fe.Error()
		if trans != nil {
			msg = fe.Translate(trans)
		}
		errs = append(errs, &ValidError{Key: fe.Field(), Message: msg})
	}
	return errs
}

// BindAndValid binds the request body form into obj and validates it
// BindAndValid 绑定表单参数并校验
func BindAndValid(c *gin.Context, obj any) (bool, ValidErrors) {
	if err := parseForm(c.Request); err != nil {
		return false, ValidErrors{&ValidError{Key: "", Message: err.Error()}}
	}
	if err := binding.MapFormWithTag(obj, c.Request.PostForm, "form"); err != nil {
		return false, ValidErrors{&ValidError{Key: "", Message: err.Error()}}
	}

	var trans ut.Translator
	if v, ok := c.Get("trans"); ok {
		trans, _ = v.(ut.Translator)
	}

	if errs := ValidateStruct(binding.Validator, trans, obj); len(errs) > 0 {
		return false, errs
	}
	return true, nil
}

func parseForm(req *http.Request) error {
	if err := req.ParseForm(); err != nil {
		return err
	}
	if err := req.ParseMultipartForm(defaultMultipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}
	return nil
}
