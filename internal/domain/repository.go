// Package domain 定义领域模型和接口
package domain

import "context"

// NoteRepository 笔记仓储接口
type NoteRepository interface {
	// AutoMigrate 创建笔记表（已存在时不做任何事）
	AutoMigrate(ctx context.Context) error

	// List 按 id 升序返回全部笔记
	List(ctx context.Context) ([]*Note, error)

	// GetByID 根据ID获取笔记，不存在时返回 gorm.ErrRecordNotFound
	GetByID(ctx context.Context, id int64) (*Note, error)

	// Create 创建笔记，返回带 ID 的笔记
	Create(ctx context.Context, note *Note) (*Note, error)

	// Update 只更新标题和正文
	Update(ctx context.Context, note *Note) error

	// Delete 删除笔记
	Delete(ctx context.Context, id int64) error

	// Count 笔记总数
	Count(ctx context.Context) (int64, error)
}
