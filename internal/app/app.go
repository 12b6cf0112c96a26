// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/haierkeys/fast-note-web/internal/dao"
	"github.com/haierkeys/fast-note-web/internal/domain"
	"github.com/haierkeys/fast-note-web/internal/service"
	pkgapp "github.com/haierkeys/fast-note-web/pkg/app"
	"github.com/haierkeys/fast-note-web/pkg/code"
	"github.com/haierkeys/fast-note-web/pkg/metrics"
	"github.com/haierkeys/fast-note-web/pkg/validator"

	"github.com/gin-gonic/gin/binding"
	ut "github.com/go-playground/universal-translator"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// Repository 层
	NoteRepo domain.NoteRepository

	// Service 层
	NoteService service.NoteService

	// 基础设施组件
	Translator *ut.UniversalTranslator
	Metrics    *metrics.Metrics

	// 关闭控制
	shutdownCh chan struct{}
}

// Option NewApp 的可选参数
type Option func(*appOptions)

type appOptions struct {
	clock func() time.Time
}

// WithClock 替换笔记创建时间的时间来源
func WithClock(now func() time.Time) Option {
	return func(o *appOptions) { o.clock = now }
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	var o appOptions
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{
		config:     cfg,
		logger:     logger,
		DB:         db,
		Metrics:    metrics.New(),
		shutdownCh: make(chan struct{}),
	}

	// 初始化验证器与翻译器
	v := validator.NewCustomValidator()
	binding.Validator = v
	uni, err := validator.NewUniversalTranslator(v)
	if err != nil {
		return nil, fmt.Errorf("failed to init validator translations: %w", err)
	}
	a.Translator = uni

	if err := code.SetGlobalDefaultLang(cfg.App.DefaultLang); err != nil {
		logger.Warn("unsupported default-lang, falling back", zap.String("lang", cfg.App.DefaultLang), zap.Error(err))
	}

	// 初始化 DAO（使用依赖注入）
	a.Dao = dao.New(db, cfg.Database.TablePrefix, logger)

	// 初始化 Repository 层
	a.NoteRepo = dao.NewNoteRepository(a.Dao)

	// 初始化 Service 层
	svcConfig := service.ServiceConfig{
		Note: service.NoteServiceConfig{DateLocale: cfg.App.DateLocale},
	}
	svcOpts := []service.NoteServiceOption{service.WithMetrics(a.Metrics)}
	if o.clock != nil {
		svcOpts = append(svcOpts, service.WithClock(o.clock))
	}
	a.NoteService, err = service.NewNoteService(a.NoteRepo, svcConfig.Note, logger, svcOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create note service: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := a.NoteService.EnsureSchema(context.Background()); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
	}

	return a, nil
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown 优雅关闭应用容器
// ctx 用于控制关闭超时，如果为 nil 则使用默认 30 秒超时
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("App container shutting down...")

	// 如果没有提供 context，使用默认超时
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
	}

	// 标记关闭
	select {
	case <-a.shutdownCh:
		// 已经关闭
		return nil
	default:
		close(a.shutdownCh)
	}

	done := make(chan error, 1)
	go func() { done <- a.Close() }()

	select {
	case err := <-done:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %w", ctx.Err())
	}

	a.logger.Info("App container shutdown completed successfully")
	return nil
}

// IsShuttingDown 检查应用是否正在关闭
func (a *App) IsShuttingDown() bool {
	select {
	case <-a.shutdownCh:
		return true
	default:
		return false
	}
}
