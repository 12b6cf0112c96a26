package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"golang.org/x/text/language"
)

// supportedTags 与 code 包、翻译器支持的语言保持一致
var supportedTags = []language.Tag{
	language.English,
	language.Chinese,
	language.Russian,
}

var langMatcher = language.NewMatcher(supportedTags)

// codeLang 匹配结果对应的 code 包语言字段
var codeLang = map[language.Base]string{
	mustBase(language.English): "en",
	mustBase(language.Chinese): "zh_cn",
	mustBase(language.Russian): "ru",
}

// transLocale 匹配结果对应的翻译器区域
var transLocale = map[language.Base]string{
	mustBase(language.English): "en",
	mustBase(language.Chinese): "zh",
	mustBase(language.Russian): "ru",
}

func mustBase(t language.Tag) language.Base {
	b, _ := t.Base()
	return b
}

// LangWithTranslator 创建带翻译器的语言中间件（支持依赖注入）
// 依次读取 ?lang=、lang 请求头和 Accept-Language，未匹配时使用 defaultLang
// 结果写入上下文：lang 为 code 包语言，trans 为验证错误翻译器
func LangWithTranslator(uni *ut.UniversalTranslator, defaultLang string) gin.HandlerFunc {
	defaultBase := mustBase(language.Make(normalizeLang(defaultLang)))
	if _, ok := codeLang[defaultBase]; !ok {
		defaultBase = mustBase(language.English)
	}

	return func(c *gin.Context) {
		base := matchLang(c)
		if _, ok := codeLang[base]; !ok {
			base = defaultBase
		}

		c.Set("lang", codeLang[base])

		if trans, found := uni.GetTranslator(transLocale[base]); found {
			c.Set("trans", trans)
		} else {
			trans, _ := uni.GetTranslator("en")
			c.Set("trans", trans)
		}

		c.Next()
	}
}

func matchLang(c *gin.Context) language.Base {
	var tags []language.Tag

	if s, exist := c.GetQuery("lang"); exist && s != "" {
		tags = append(tags, language.Make(normalizeLang(s)))
	} else if s = c.GetHeader("lang"); len(s) != 0 {
		tags = append(tags, language.Make(normalizeLang(s)))
	} else if accept := c.GetHeader("Accept-Language"); accept != "" {
		parsed, _, err := language.ParseAcceptLanguage(accept)
		if err == nil {
			tags = parsed
		}
	}

	if len(tags) == 0 {
		return language.Base{}
	}

	_, idx, confidence := langMatcher.Match(tags...)
	if confidence == language.No {
		return language.Base{}
	}
	return mustBase(supportedTags[idx])
}

func normalizeLang(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "_", "-")
}
