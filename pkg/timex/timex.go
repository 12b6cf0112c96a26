// Package timex 提供带区域设置的时间格式化
package timex

import (
	"fmt"
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/ru"
	"github.com/go-playground/locales/zh"
)

// DefaultLocale is the locale used for note creation dates
// DefaultLocale 笔记创建日期使用的默认区域
const DefaultLocale = "ru"

// Locale returns the translator for name ("en", "zh" or "ru")
// Locale 根据名称返回区域翻译器
func Locale(name string) (locales.Translator, error) {
	switch name {
	case "en":
		return en.New(), nil
	case "zh", "zh_cn":
		return zh.New(), nil
	case "ru":
		return ru.New(), nil
	}
	return nil, fmt.Errorf("unsupported date locale %q", name)
}

// FormatDateCreate renders t as "02 <month name> 2006, 15:04" using the locale's wide month name
// FormatDateCreate 将时间格式化为 "日 月份全称 年, 时:分"
func FormatDateCreate(t time.Time, l locales.Translator) string {
	return fmt.Sprintf("%02d %s %d, %02d:%02d",
		t.Day(),
		l.MonthWide(t.Month()),
		t.Year(),
		t.Hour(),
		t.Minute(),
	)
}
