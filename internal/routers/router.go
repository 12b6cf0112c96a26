package routers

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/haierkeys/fast-note-web/internal/app"
	"github.com/haierkeys/fast-note-web/internal/middleware"
	"github.com/haierkeys/fast-note-web/internal/routers/web_router"
	"github.com/haierkeys/fast-note-web/pkg/limiter"

	"github.com/gin-gonic/gin"
)

// mutatingRoutes 需要限流的写操作路由
var mutatingRoutes = []struct {
	method string
	path   string
}{
	{http.MethodPost, "/new_note"},
	{http.MethodPost, "/notes/edit/:id"},
	{http.MethodPost, "/notes/open/:id/edit"},
	{http.MethodGet, "/notes/delete/:id"},
	{http.MethodGet, "/notes/open/:id/delete"},
}

// newMethodLimiter 按配置为写操作路由创建令牌桶
func newMethodLimiter(cfg *app.AppConfig) limiter.Face {
	l := limiter.NewMethodLimiter()
	// 容量不大于 0 时不创建令牌桶，等同于不限流
	if cfg.Limiter.Capacity <= 0 {
		return l
	}
	for _, r := range mutatingRoutes {
		l.AddBuckets(limiter.BucketRule{
			Key:          limiter.RouteKey(r.method, r.path),
			FillInterval: cfg.GetLimiterFillInterval(),
			Capacity:     cfg.Limiter.Capacity,
			Quantum:      cfg.Limiter.Quantum,
		})
	}
	return l
}

// NewRouter 创建页面路由
// files 需包含 templates/ 与 static/ 两个目录
func NewRouter(files fs.FS, appContainer *app.App) (*gin.Engine, error) {

	// 获取配置
	cfg := appContainer.Config()

	tpl, err := LoadTemplates(files)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	static, err := fs.Sub(files, "static")
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tpl)

	r.Use(middleware.AppInfo(app.Name, appContainer.Version().Version))
	r.Use(middleware.TraceMiddleware(cfg.Tracer.Enabled, cfg.Tracer.Header)) // Trace ID 中间件
	r.Use(middleware.LangWithTranslator(appContainer.Translator, cfg.App.DefaultLang))
	r.Use(middleware.AccessLog(appContainer.Logger()))
	r.Use(middleware.RecoveryWithLogger(appContainer.Logger()))
	r.Use(middleware.Metrics(appContainer.Metrics))
	r.Use(middleware.ContextTimeout(cfg.GetContextTimeout()))
	if cfg.Limiter.Enabled {
		r.Use(middleware.RateLimiter(newMethodLimiter(cfg)))
	}

	cacheMiddleware := func(c *gin.Context) {
		c.Header("Cache-Control", "public, max-age=86400")
		c.Next()
	}
	r.Group("/static", cacheMiddleware).StaticFS("/", http.FS(static))

	// 创建 Handlers（注入 App Container）
	noteHandler := web_router.NewNoteHandler(appContainer)
	pageHandler := web_router.NewPageHandler(appContainer)

	r.GET("/", noteHandler.Home)
	r.GET("/notes", noteHandler.List)
	r.GET("/new_note", noteHandler.NewForm)
	r.POST("/new_note", noteHandler.Create)

	r.GET("/notes/open/:id", noteHandler.Open)

	// 编辑与删除各自注册在两个路径上，行为一致
	editMethods := []string{http.MethodGet, http.MethodPost}
	r.Match(editMethods, "/notes/edit/:id", noteHandler.Edit)
	r.Match(editMethods, "/notes/open/:id/edit", noteHandler.Edit)
	r.GET("/notes/delete/:id", noteHandler.Delete)
	r.GET("/notes/open/:id/delete", noteHandler.Delete)

	r.GET("/contacts", pageHandler.Contacts)

	r.NoRoute(middleware.NoFound())

	return r, nil
}
