// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

// NoteForm Note create / edit form
// NoteForm 新建、编辑笔记的表单参数
type NoteForm struct {
	Title    string `json:"title" form:"title" binding:"required"`        // 标题
	TextNote string `json:"textNote" form:"text_note" binding:"required"` // 正文
}

// NoteIDRequest Path parameter of /notes/.../:id
// NoteIDRequest 路由中的笔记 ID
type NoteIDRequest struct {
	ID int64 `uri:"id" binding:"required,gt=0"`
}

// NoteDTO Note view model for templates
// NoteDTO 模板使用的笔记视图对象
type NoteDTO struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	TextNote   string `json:"textNote"`
	DateCreate string `json:"dateCreate"`
}
