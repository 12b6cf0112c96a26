package routers

import (
	"html/template"
	"io/fs"
	"strings"
)

// templateFuncs 模板函数
var templateFuncs = template.FuncMap{
	"truncate": func(s string, n int) string {
		r := []rune(s)
		if len(r) <= n {
			return s
		}
		return strings.TrimSpace(string(r[:n])) + "…"
	},
}

// LoadTemplates 从文件系统加载 templates/*.html
// 每个页面以 {{define "<文件名>"}} 命名，共享 layout.html 中的 header / footer
func LoadTemplates(files fs.FS) (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(files, "templates/*.html")
}
