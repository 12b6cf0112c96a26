package validator

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/ru"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	ru_translations "github.com/go-playground/validator/v10/translations/ru"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
)

// CustomValidator gin 的结构体验证器，懒加载 validator/v10
type CustomValidator struct {
	once     sync.Once
	validate *validator.Validate
}

var _ binding.StructValidator = (*CustomValidator)(nil)

func NewCustomValidator() *CustomValidator {
	return &CustomValidator{}
}

// ValidateStruct 仅对结构体（或其指针）做校验，其余类型直接放行
func (v *CustomValidator) ValidateStruct(obj any) error {
	if kindOfData(obj) != reflect.Struct {
		return nil
	}
	v.lazyinit()
	return v.validate.Struct(obj)
}

func (v *CustomValidator) Engine() any {
	v.lazyinit()
	return v.validate
}

func (v *CustomValidator) lazyinit() {
	v.once.Do(func() {
		v.validate = validator.New()
		v.validate.SetTagName("binding")
		// Field names in messages come from the form tag
		// 错误信息中的字段名取自 form 标签
		v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

func kindOfData(data any) reflect.Kind {
	value := reflect.ValueOf(data)
	valueType := value.Kind()
	if valueType == reflect.Ptr {
		valueType = value.Elem().Kind()
	}
	return valueType
}

// NewUniversalTranslator registers the default en/zh/ru messages on the validator engine
// NewUniversalTranslator 为验证器注册英文、中文、俄文默认翻译
func NewUniversalTranslator(v binding.StructValidator) (*ut.UniversalTranslator, error) {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale, zh.New(), ru.New())

	validate, ok := v.Engine().(*validator.Validate)
	if !ok {
		return uni, nil
	}

	register := map[string]func(*validator.Validate, ut.Translator) error{
		"en": en_translations.RegisterDefaultTranslations,
		"zh": zh_translations.RegisterDefaultTranslations,
		"ru": ru_translations.RegisterDefaultTranslations,
	}
	for locale, fn := range register {
		trans, _ := uni.GetTranslator(locale)
		if err := fn(validate, trans); err != nil {
			return nil, err
		}
	}
	return uni, nil
}
