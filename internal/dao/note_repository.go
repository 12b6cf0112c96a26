// Package dao 实现数据访问层
package dao

import (
	"context"
	"fmt"

	"github.com/haierkeys/fast-note-web/internal/domain"
	"github.com/haierkeys/fast-note-web/internal/model"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// noteRepository 实现 domain.NoteRepository 接口
type noteRepository struct {
	dao *Dao
}

// NewNoteRepository 创建 NoteRepository 实例
func NewNoteRepository(dao *Dao) domain.NoteRepository {
	return &noteRepository{dao: dao}
}

func (r *noteRepository) table() string {
	return r.dao.Table(model.TableNameNote)
}

// note 获取笔记表会话
func (r *noteRepository) note(ctx context.Context) *gorm.DB {
	return r.dao.DB(ctx).Table(r.table())
}

// toDomain 将数据库模型转换为领域模型
func (r *noteRepository) toDomain(m *model.Note) *domain.Note {
	if m == nil {
		return nil
	}
	note := &domain.Note{}
	_ = copier.Copy(note, m)
	return note
}

// toModel 将领域模型转换为数据库模型
func (r *noteRepository) toModel(note *domain.Note) *model.Note {
	if note == nil {
		return nil
	}
	m := &model.Note{}
	_ = copier.Copy(m, note)
	return m
}

// AutoMigrate 创建笔记表
func (r *noteRepository) AutoMigrate(ctx context.Context) error {
	return model.AutoMigrate(r.dao.DB(ctx), "Note", r.table())
}

// List 获取全部笔记，按插入顺序
func (r *noteRepository) List(ctx context.Context) ([]*domain.Note, error) {
	var ms []*model.Note
	if err := r.note(ctx).Order("id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	list := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		list = append(list, r.toDomain(m))
	}
	return list, nil
}

// GetByID 根据ID获取笔记
func (r *noteRepository) GetByID(ctx context.Context, id int64) (*domain.Note, error) {
	var m model.Note
	if err := r.note(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, fmt.Errorf("note %d: %w", id, err)
	}
	return r.toDomain(&m), nil
}

// Create 创建笔记
func (r *noteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	m := r.toModel(note)
	m.ID = 0
	if err := r.note(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Update 只更新 title 与 text_note
func (r *noteRepository) Update(ctx context.Context, note *domain.Note) error {
	res := r.note(ctx).Where("id = ?", note.ID).Updates(map[string]interface{}{
		"title":     note.Title,
		"text_note": note.TextNote,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	// MySQL 在值未变化时返回 0 行，需再确认记录是否存在
	var n int64
	if err := r.note(ctx).Where("id = ?", note.ID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("note %d: %w", note.ID, gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete 删除笔记
func (r *noteRepository) Delete(ctx context.Context, id int64) error {
	res := r.note(ctx).Where("id = ?", id).Delete(&model.Note{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("note %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

// Count 笔记总数
func (r *noteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.note(ctx).Count(&n).Error
	return n, err
}
