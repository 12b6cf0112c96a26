// Package domain 定义领域模型和接口
package domain

// Note 笔记领域模型
type Note struct {
	ID         int64
	Title      string
	TextNote   string
	DateCreate string // 创建时间，格式 "DD <月份> YYYY, HH:MM"，创建后不再修改
}

// Apply overwrites the editable fields; ID and DateCreate are left untouched
// Apply 只覆盖可编辑字段
func (n *Note) Apply(title, textNote string) {
	n.Title = title
	n.TextNote = textNote
}
