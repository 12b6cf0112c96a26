package code

import (
	"errors"
	"fmt"
	"reflect"
	"sync/atomic"
)

// lang type, used to store English, Chinese and Russian text
// lang 类型，用来存储英文、中文和俄文文本
type lang struct {
	en    string // English // 英文
	zh_cn string // Chinese // 中文
	ru    string // Russian // 俄文
}

// Default language is English // 默认语言为英文
var lng atomic.Value

const FALLBACK_LNG = "en"

func init() {
	lng.Store(FALLBACK_LNG)
}

// GetMessage returns the message in the global default language
// GetMessage 方法根据全局默认语言返回相应的消息
func (l lang) GetMessage() string {
	return l.GetMessageIn(GetGlobalDefaultLang())
}

// GetMessageIn returns the message in the given language, falling back to English
// GetMessageIn 根据传入的语言返回相应的消息，无效时回退到英文
func (l lang) GetMessageIn(language string) string {
	if language == "" {
		language = FALLBACK_LNG
	}
	// Get language field
	// 获取语言字段
	val := reflect.ValueOf(l)
	field := val.FieldByName(language)
	// If the language field is valid and not empty, return the message in that language
	// 如果语言字段有效且非空，返回该语言的消息
	if field.IsValid() && field.String() != "" {
		return field.String()
	}
	// If the specified language is invalid, return the message of the fallback language
	// 如果指定语言无效，返回回退语言的消息
	fallbackField := val.FieldByName(FALLBACK_LNG)
	if fallbackField.IsValid() && fallbackField.String() != "" {
		return fallbackField.String()
	}
	return fmt.Sprintf("No message available for language: %s", language)
}

// GetSupportedLanguages function returns all languages supported by the lang type
// GetSupportedLanguages 函数返回 lang 类型支持的所有语言
func GetSupportedLanguages() []string {
	var languages []string
	typ := reflect.TypeOf(lang{})
	for i := 0; i < typ.NumField(); i++ {
		languages = append(languages, typ.Field(i).Name)
	}
	return languages
}

// IsSupportedLang reports whether language is one of the lang fields
// IsSupportedLang 判断语言是否受支持
func IsSupportedLang(language string) bool {
	for _, l := range GetSupportedLanguages() {
		if l == language {
			return true
		}
	}
	return false
}

// SetGlobalDefaultLang sets the global default language
// 设置全局默认语言
func SetGlobalDefaultLang(language string) error {
	if IsSupportedLang(language) {
		lng.Store(language)
		return nil
	}
	// If the language is invalid, return an error and set it to the default language
	// 如果语言无效，返回错误并设置为默认语言
	lng.Store(FALLBACK_LNG)
	return errors.New("unsupported language type, set defaulting to " + FALLBACK_LNG)
}

// GetGlobalDefaultLang gets the global default language
// GetGlobalDefaultLang 获取全局默认语言
func GetGlobalDefaultLang() string {
	return lng.Load().(string)
}
