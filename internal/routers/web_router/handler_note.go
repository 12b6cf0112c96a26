package web_router

import (
	"net/http"

	"github.com/haierkeys/fast-note-web/internal/app"
	"github.com/haierkeys/fast-note-web/internal/dto"
	pkgapp "github.com/haierkeys/fast-note-web/pkg/app"
	"github.com/haierkeys/fast-note-web/pkg/code"

	"github.com/gin-gonic/gin"
)

// NoteHandler 笔记页面路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type NoteHandler struct {
	*Handler
}

// NewNoteHandler 创建 NoteHandler 实例
func NewNoteHandler(a *app.App) *NoteHandler {
	return &NoteHandler{
		Handler: NewHandler(a),
	}
}

// noteID 解析路由中的笔记 ID，非正整数视为页面不存在
func (h *NoteHandler) noteID(c *gin.Context) (int64, bool) {
	params := &dto.NoteIDRequest{}
	if err := c.ShouldBindUri(params); err != nil {
		return 0, false
	}
	return params.ID, true
}

// Home 首页，首次访问时创建笔记表
func (h *NoteHandler) Home(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.App.NoteService.EnsureSchema(ctx); err != nil {
		h.errorPage(c, "NoteHandler.Home.EnsureSchema", err)
		return
	}

	count, err := h.App.NoteService.Count(ctx)
	if err != nil {
		h.errorPage(c, "NoteHandler.Home.Count", err)
		return
	}

	h.render(c, http.StatusOK, "main.html", gin.H{
		"Title":     "Главная",
		"NoteCount": count,
	})
}

// List 笔记列表
func (h *NoteHandler) List(c *gin.Context) {
	notes, err := h.App.NoteService.List(c.Request.Context())
	if err != nil {
		h.errorPage(c, "NoteHandler.List", err)
		return
	}

	h.render(c, http.StatusOK, "notes.html", gin.H{
		"Title": "Все заметки",
		"Notes": notes,
	})
}

// NewForm 新建笔记表单
func (h *NoteHandler) NewForm(c *gin.Context) {
	h.renderNewForm(c, &dto.NoteForm{}, nil)
}

// Create 提交新建笔记，校验失败时带错误重新渲染表单
func (h *NoteHandler) Create(c *gin.Context) {
	params := &dto.NoteForm{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.renderNewForm(c, params, errs)
		return
	}

	if _, err := h.App.NoteService.Create(c.Request.Context(), params); err != nil {
		h.errorPage(c, "NoteHandler.Create", err)
		return
	}

	pkgapp.NewResponse(c).RedirectTo("/notes")
}

func (h *NoteHandler) renderNewForm(c *gin.Context, form *dto.NoteForm, errs pkgapp.ValidErrors) {
	h.render(c, http.StatusOK, "new_note_form.html", gin.H{
		"Title":  "Новая заметка",
		"Form":   form,
		"Errors": errs.Map(),
	})
}

// Open 查看单个笔记
func (h *NoteHandler) Open(c *gin.Context) {
	id, ok := h.noteID(c)
	if !ok {
		h.errorPage(c, "NoteHandler.Open.noteID", code.ErrorNotFoundPage)
		return
	}

	note, err := h.App.NoteService.Get(c.Request.Context(), id)
	if err != nil {
		h.errorPage(c, "NoteHandler.Open", err)
		return
	}

	h.render(c, http.StatusOK, "open_note.html", gin.H{
		"Title": note.Title,
		"Note":  note,
	})
}

// Edit 编辑笔记，GET 渲染表单，POST 保存
// /notes/edit/:id 与 /notes/open/:id/edit 共用
func (h *NoteHandler) Edit(c *gin.Context) {
	id, ok := h.noteID(c)
	if !ok {
		h.errorPage(c, "NoteHandler.Edit.noteID", code.ErrorNotFoundPage)
		return
	}

	ctx := c.Request.Context()

	note, err := h.App.NoteService.Get(ctx, id)
	if err != nil {
		h.errorPage(c, "NoteHandler.Edit.Get", err)
		return
	}

	if c.Request.Method != http.MethodPost {
		h.renderEditForm(c, note.ID, note.DateCreate, &dto.NoteForm{Title: note.Title, TextNote: note.TextNote}, nil)
		return
	}

	params := &dto.NoteForm{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.renderEditForm(c, note.ID, note.DateCreate, params, errs)
		return
	}

	note.Apply(params.Title, params.TextNote)
	if err := h.App.NoteService.Update(ctx, note); err != nil {
		h.errorPage(c, "NoteHandler.Edit.Update", err)
		return
	}

	pkgapp.NewResponse(c).RedirectTo("/notes")
}

func (h *NoteHandler) renderEditForm(c *gin.Context, id int64, dateCreate string, form *dto.NoteForm, errs pkgapp.ValidErrors) {
	h.render(c, http.StatusOK, "edit_note.html", gin.H{
		"Title":  "Изменить заметку",
		"Note":   dto.NoteDTO{ID: id, Title: form.Title, TextNote: form.TextNote, DateCreate: dateCreate},
		"Form":   form,
		"Errors": errs.Map(),
		"Action": c.Request.URL.Path,
	})
}

// Delete 删除笔记，不存在时返回 404
// /notes/delete/:id 与 /notes/open/:id/delete 共用
func (h *NoteHandler) Delete(c *gin.Context) {
	id, ok := h.noteID(c)
	if !ok {
		h.errorPage(c, "NoteHandler.Delete.noteID", code.ErrorNotFoundPage)
		return
	}

	ctx := c.Request.Context()

	note, err := h.App.NoteService.Get(ctx, id)
	if err != nil {
		h.errorPage(c, "NoteHandler.Delete.Get", err)
		return
	}

	if err := h.App.NoteService.Delete(ctx, note.ID); err != nil {
		h.errorPage(c, "NoteHandler.Delete", err)
		return
	}

	pkgapp.NewResponse(c).RedirectTo("/notes")
}
