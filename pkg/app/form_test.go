package app

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/haierkeys/fast-note-web/pkg/validator"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testForm struct {
	Title    string `form:"title" binding:"required"`
	TextNote string `form:"text_note" binding:"required"`
}

func TestValidateStruct_Translated(t *testing.T) {
	v := validator.NewCustomValidator()
	uni, err := validator.NewUniversalTranslator(v)
	require.NoError(t, err)

	enTrans, _ := uni.GetTranslator("en")
	errs := ValidateStruct(v, enTrans, &testForm{TextNote: "body"})
	require.Len(t, errs, 1)
	assert.Equal(t, "title", errs[0].Key)
	assert.Equal(t, "title is a required field", errs[0].Message)

	ruTrans, _ := uni.GetTranslator("ru")
	errs = ValidateStruct(v, ruTrans, &testForm{})
	require.Len(t, errs, 2)
	m := errs.Map()
	assert.Contains(t, m, "title")
	assert.Contains(t, m, "text_note")
	assert.NotEqual(t, "title is a required field", m["title"][0])
}

func TestValidateStruct_UntranslatedFallback(t *testing.T) {
	errs := ValidateStruct(validator.NewCustomValidator(), nil, &testForm{Title: "t"})
	require.Len(t, errs, 1)
	assert.Equal(t, "text_note", errs[0].Key)
	assert.Contains(t, errs.Error(), "required")
}

func TestValidateStruct_Property(t *testing.T) {
	v := validator.NewCustomValidator()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("valid iff both fields are non-empty", prop.ForAll(
		func(title, text string) bool {
			errs := ValidateStruct(v, nil, &testForm{Title: title, TextNote: text})
			valid := title != "" && text != ""
			if valid {
				return len(errs) == 0
			}
			m := errs.Map()
			_, titleErr := m["title"]
			_, textErr := m["text_note"]
			return titleErr == (title == "") && textErr == (text == "")
		},
		gen.OneGenOf(gen.Const(""), gen.AnyString()),
		gen.OneGenOf(gen.Const(""), gen.AnyString()),
	))

	properties.TestingRun(t)
}

func TestBindAndValid(t *testing.T) {
	gin.SetMode(gin.TestMode)
	binding.Validator = validator.NewCustomValidator()

	newCtx := func(form url.Values) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		req := httptest.NewRequest(http.MethodPost, "/new_note", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		c.Request = req
		return c
	}

	var ok testForm
	valid, errs := BindAndValid(newCtx(url.Values{"title": {"Groceries"}, "text_note": {"milk, eggs"}}), &ok)
	assert.True(t, valid)
	assert.Empty(t, errs)
	assert.Equal(t, testForm{Title: "Groceries", TextNote: "milk, eggs"}, ok)

	var partial testForm
	valid, errs = BindAndValid(newCtx(url.Values{"title": {"only title"}}), &partial)
	assert.False(t, valid)
	require.Len(t, errs, 1)
	assert.Equal(t, "text_note", errs[0].Key)
	assert.Equal(t, "only title", partial.Title)
}
