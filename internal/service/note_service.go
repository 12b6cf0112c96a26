// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/haierkeys/fast-note-web/internal/domain"
	"github.com/haierkeys/fast-note-web/internal/dto"
	"github.com/haierkeys/fast-note-web/pkg/code"
	apperrors "github.com/haierkeys/fast-note-web/pkg/errors"
	"github.com/haierkeys/fast-note-web/pkg/logger"
	"github.com/haierkeys/fast-note-web/pkg/metrics"
	"github.com/haierkeys/fast-note-web/pkg/timex"

	"github.com/go-playground/locales"
	"github.com/jinzhu/copier"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// NoteService 定义笔记业务服务接口
type NoteService interface {
	// EnsureSchema 确保笔记表存在，并发调用只执行一次迁移
	EnsureSchema(ctx context.Context) error

	// List 获取全部笔记
	List(ctx context.Context) ([]*dto.NoteDTO, error)

	// Get 根据 ID 获取笔记，不存在时返回 code.ErrorNoteNotFound
	Get(ctx context.Context, id int64) (*domain.Note, error)

	// Create 创建笔记并记录创建时间
	Create(ctx context.Context, form *dto.NoteForm) (*domain.Note, error)

	// Update 保存笔记的标题和正文
	Update(ctx context.Context, note *domain.Note) error

	// Delete 删除笔记，不存在时返回 code.ErrorNoteNotFound
	Delete(ctx context.Context, id int64) error

	// Count 笔记总数
	Count(ctx context.Context) (int64, error)
}

// noteService 实现 NoteService 接口
type noteService struct {
	repo    domain.NoteRepository
	locale  locales.Translator
	now     func() time.Time
	logger  *zap.Logger
	metrics *metrics.Metrics

	sf       singleflight.Group
	migrated atomic.Bool
}

// NoteServiceOption 可选配置
type NoteServiceOption func(*noteService)

// WithClock 替换时间来源
func WithClock(now func() time.Time) NoteServiceOption {
	return func(s *noteService) { s.now = now }
}

// WithMetrics 记录笔记操作指标
func WithMetrics(m *metrics.Metrics) NoteServiceOption {
	return func(s *noteService) { s.metrics = m }
}

// NewNoteService 创建 NoteService 实例
func NewNoteService(repo domain.NoteRepository, cfg NoteServiceConfig, lg *zap.Logger, opts ...NoteServiceOption) (NoteService, error) {
	name := cfg.DateLocale
	if name == "" {
		name = timex.DefaultLocale
	}
	locale, err := timex.Locale(name)
	if err != nil {
		return nil, err
	}
	if lg == nil {
		lg = zap.NewNop()
	}

	s := &noteService{
		repo:   repo,
		locale: locale,
		now:    time.Now,
		logger: lg,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// EnsureSchema 使用 Singleflight 合并并发的建表请求
func (s *noteService) EnsureSchema(ctx context.Context) error {
	if s.migrated.Load() {
		return nil
	}
	_, err, _ := s.sf.Do("note_ensure_schema", func() (interface{}, error) {
		if s.migrated.Load() {
			return nil, nil
		}
		if err := s.repo.AutoMigrate(ctx); err != nil {
			return nil, apperrors.NewAppError(code.ErrorDBQuery, err)
		}
		s.migrated.Store(true)
		return nil, nil
	})
	s.metrics.ObserveNoteOp("migrate", err)
	return err
}

// List 获取全部笔记
func (s *noteService) List(ctx context.Context) ([]*dto.NoteDTO, error) {
	notes, err := s.repo.List(ctx)
	s.metrics.ObserveNoteOp("list", err)
	if err != nil {
		return nil, apperrors.NewAppError(code.ErrorDBQuery, err)
	}

	list := make([]*dto.NoteDTO, 0, len(notes))
	for _, n := range notes {
		s.logger.Debug("note fetched",
			zap.Int64(logger.FieldNoteID, n.ID),
			zap.String(logger.FieldTitle, n.Title),
		)
		item := &dto.NoteDTO{}
		_ = copier.Copy(item, n)
		list = append(list, item)
	}
	s.metrics.SetNotesTotal(int64(len(list)))
	return list, nil
}

// Get 根据 ID 获取笔记
func (s *noteService) Get(ctx context.Context, id int64) (*domain.Note, error) {
	note, err := s.repo.GetByID(ctx, id)
	s.metrics.ObserveNoteOp("get", err)
	if err != nil {
		return nil, s.wrap(err)
	}
	return note, nil
}

// Create 创建笔记，date_create 只在这里写入
func (s *noteService) Create(ctx context.Context, form *dto.NoteForm) (*domain.Note, error) {
	note := &domain.Note{
		Title:      form.Title,
		TextNote:   form.TextNote,
		DateCreate: timex.FormatDateCreate(s.now(), s.locale),
	}
	created, err := s.repo.Create(ctx, note)
	s.metrics.ObserveNoteOp("create", err)
	if err != nil {
		return nil, apperrors.NewAppError(code.ErrorDBQuery, err)
	}
	s.logger.Info("note created", zap.Int64(logger.FieldNoteID, created.ID))
	return created, nil
}

// Update 保存笔记，仓储只写入标题和正文
func (s *noteService) Update(ctx context.Context, note *domain.Note) error {
	err := s.repo.Update(ctx, note)
	s.metrics.ObserveNoteOp("update", err)
	if err != nil {
		return s.wrap(err)
	}
	s.logger.Info("note updated", zap.Int64(logger.FieldNoteID, note.ID))
	return nil
}

// Delete 删除笔记
func (s *noteService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	s.metrics.ObserveNoteOp("delete", err)
	if err != nil {
		return s.wrap(err)
	}
	s.logger.Info("note deleted", zap.Int64(logger.FieldNoteID, id))
	return nil
}

// Count 笔记总数
func (s *noteService) Count(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx)
	s.metrics.ObserveNoteOp("count", err)
	if err != nil {
		return 0, apperrors.NewAppError(code.ErrorDBQuery, err)
	}
	s.metrics.SetNotesTotal(n)
	return n, nil
}

func (s *noteService) wrap(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewAppError(code.ErrorNoteNotFound, err)
	}
	return apperrors.NewAppError(code.ErrorDBQuery, err)
}
