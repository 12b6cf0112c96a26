package routers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/haierkeys/fast-note-web/internal/app"
	"github.com/haierkeys/fast-note-web/internal/dao"
	"github.com/haierkeys/fast-note-web/pkg/code"
	"github.com/haierkeys/fast-note-web/web"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, time.March, 5, 9, 7, 0, 0, time.UTC)

type testServer struct {
	t   *testing.T
	app *app.App
	r   *gin.Engine
}

func newTestServer(t *testing.T, mutate ...func(*app.AppConfig)) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Cleanup(func() { _ = code.SetGlobalDefaultLang(code.FALLBACK_LNG) })

	cfg, err := app.ParseConfig(nil)
	require.NoError(t, err)
	cfg.Database.Path = filepath.Join(t.TempDir(), "notes.db")
	cfg.Limiter.Enabled = false
	for _, m := range mutate {
		m(cfg)
	}

	db, err := dao.NewDBEngineWithConfig(cfg.DaoDatabaseConfig(), zap.NewNop())
	require.NoError(t, err)

	a, err := app.NewApp(cfg, zap.NewNop(), db, app.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown(context.Background()) })

	r, err := NewRouter(web.FS, a)
	require.NoError(t, err)

	return &testServer{t: t, app: a, r: r}
}

func (s *testServer) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func (s *testServer) post(path, title, text string) *httptest.ResponseRecorder {
	form := url.Values{"title": {title}, "text_note": {text}}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)
	return w
}

func (s *testServer) count() int64 {
	n, err := s.app.NoteService.Count(context.Background())
	require.NoError(s.t, err)
	return n
}

func assertRedirectToNotes(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/notes", w.Header().Get("Location"))
}

func TestHome(t *testing.T) {
	s := newTestServer(t, func(c *app.AppConfig) { c.Database.AutoMigrate = false })

	w := s.get("/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<strong class="note-count">0</strong>`)
	assert.Contains(t, w.Body.String(), app.Name)
}

func TestCreateAndList(t *testing.T) {
	s := newTestServer(t)

	assertRedirectToNotes(t, s.post("/new_note", "Groceries", "Milk, eggs"))

	w := s.get("/notes")
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Groceries")
	assert.Contains(t, body, "Milk, eggs")
	assert.Contains(t, body, "05 марта 2024, 09:07")

	notes, err := s.app.NoteService.List(context.Background())
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Groceries", notes[0].Title)
	assert.Equal(t, "Milk, eggs", notes[0].TextNote)
	assert.NotEmpty(t, notes[0].DateCreate)
}

func TestNewForm(t *testing.T) {
	s := newTestServer(t)

	w := s.get("/new_note")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/new_note"`)
}

func TestCreate_ValidationFailure(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		name, title, text, field string
	}{
		{"empty title", "", "body", "title"},
		{"empty body", "title", "", "text_note"},
		{"both empty", "", "", "title"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := s.post("/new_note", tc.title, tc.text)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), `class="error"`)
			assert.Contains(t, w.Body.String(), tc.field)
		})
	}
	assert.Zero(t, s.count())
}

func TestCreate_ValidationMessageLanguage(t *testing.T) {
	s := newTestServer(t)

	w := s.post("/new_note?lang=en", "", "body")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "title is a required field")
	// 回显已填写的字段
	assert.Contains(t, w.Body.String(), ">body</textarea>")
}

func TestOpen(t *testing.T) {
	s := newTestServer(t)
	s.post("/new_note", "Groceries", "Milk, eggs")

	w := s.get("/notes/open/1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h1>Groceries</h1>")
	assert.Contains(t, w.Body.String(), `href="/notes/open/1/edit"`)
	assert.Contains(t, w.Body.String(), `href="/notes/open/1/delete"`)
}

func TestEdit_KeepsIdentity(t *testing.T) {
	for _, path := range []string{"/notes/edit/%d", "/notes/open/%d/edit"} {
		t.Run(path, func(t *testing.T) {
			s := newTestServer(t)
			s.post("/new_note", "Groceries", "Milk, eggs")
			before, err := s.app.NoteService.Get(context.Background(), 1)
			require.NoError(t, err)

			target := fmt.Sprintf(path, 1)
			w := s.get(target)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), `value="Groceries"`)
			assert.Contains(t, w.Body.String(), fmt.Sprintf(`action="%s"`, target))

			assertRedirectToNotes(t, s.post(target, "Groceries", "Milk, eggs, bread"))

			after, err := s.app.NoteService.Get(context.Background(), 1)
			require.NoError(t, err)
			assert.Equal(t, before.ID, after.ID)
			assert.Equal(t, before.DateCreate, after.DateCreate)
			assert.Equal(t, "Groceries", after.Title)
			assert.Equal(t, "Milk, eggs, bread", after.TextNote)
		})
	}
}

func TestEdit_ValidationFailure(t *testing.T) {
	s := newTestServer(t)
	s.post("/new_note", "Groceries", "Milk, eggs")

	w := s.post("/notes/edit/1", "", "changed")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `class="error"`)

	note, err := s.app.NoteService.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Milk, eggs", note.TextNote)
}

func TestDelete(t *testing.T) {
	for _, path := range []string{"/notes/delete/%d", "/notes/open/%d/delete"} {
		t.Run(path, func(t *testing.T) {
			s := newTestServer(t)
			s.post("/new_note", "Groceries", "Milk, eggs")

			assertRedirectToNotes(t, s.get(fmt.Sprintf(path, 1)))
			assert.Zero(t, s.count())
			assert.NotContains(t, s.get("/notes").Body.String(), "Groceries")
			assert.Equal(t, http.StatusNotFound, s.get("/notes/open/1").Code)

			// 再次删除返回 404，不产生新笔记
			assert.Equal(t, http.StatusNotFound, s.get(fmt.Sprintf(path, 1)).Code)
			assert.Zero(t, s.count())
		})
	}
}

func TestMissingAndInvalidIDs(t *testing.T) {
	s := newTestServer(t)

	paths := []string{
		"/notes/open/42",
		"/notes/edit/42",
		"/notes/open/42/edit",
		"/notes/delete/42",
		"/notes/open/0",
		"/notes/open/-3",
		"/notes/open/abc",
		"/notes/delete/abc",
		"/no/such/page",
	}
	for _, p := range paths {
		w := s.get(p)
		assert.Equal(t, http.StatusNotFound, w.Code, p)
		assert.Contains(t, w.Body.String(), `class="error-status">404`, p)
	}

	assert.Equal(t, http.StatusNotFound, s.post("/notes/edit/42", "a", "b").Code)
	assert.Zero(t, s.count())
}

func TestContactsAndStatic(t *testing.T) {
	s := newTestServer(t)

	w := s.get("/contacts")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Контакты")

	w = s.get("/static/style.css")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.String())
}

func TestTraceHeader(t *testing.T) {
	s := newTestServer(t)

	w := s.get("/notes")
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))
}

func TestRateLimiter(t *testing.T) {
	s := newTestServer(t, func(c *app.AppConfig) {
		c.Limiter.Enabled = true
		c.Limiter.FillInterval = "1h"
		c.Limiter.Capacity = 2
		c.Limiter.Quantum = 1
	})

	assertRedirectToNotes(t, s.post("/new_note", "a", "b"))
	assertRedirectToNotes(t, s.post("/new_note", "c", "d"))
	assert.Equal(t, http.StatusTooManyRequests, s.post("/new_note", "e", "f").Code)
	assert.Equal(t, int64(2), s.count())

	// 读操作不限流
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, s.get("/notes").Code)
	}
}

func TestPrivateRouter(t *testing.T) {
	s := newTestServer(t)
	s.get("/notes")

	r := NewPrivateRouterWithLogger("release", zap.NewNop(), s.app.Metrics.Registry)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fast_note_http_requests_total")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/vars", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "memstats")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, DefaultPrefix+"/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestZeroDurationsStillServe(t *testing.T) {
	var s *testServer
	require.NotPanics(t, func() {
		s = newTestServer(t, func(c *app.AppConfig) {
			c.Limiter.Enabled = true
			c.Limiter.FillInterval = "0"
			c.App.DefaultContextTimeout = "0"
		})
	})

	assertRedirectToNotes(t, s.post("/new_note", "Groceries", "Milk, eggs"))
	w := s.get("/notes")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Groceries")
}

func TestLimiterZeroCapacityDisablesBuckets(t *testing.T) {
	s := newTestServer(t, func(c *app.AppConfig) {
		c.Limiter.Enabled = true
		c.Limiter.Capacity = 0
	})

	for i := 0; i < 5; i++ {
		assertRedirectToNotes(t, s.post("/new_note", "a", "b"))
	}
	assert.Equal(t, int64(5), s.count())
}
