// Package task 后台定时任务
package task

import (
	"github.com/haierkeys/fast-note-web/internal/app"
	"github.com/haierkeys/fast-note-web/pkg/safe_close"

	"go.uber.org/zap"
)

// Manager 任务管理器,负责创建和管理所有任务
type Manager struct {
	scheduler *Scheduler
	logger    *zap.Logger
	app       *app.App
}

// NewManager 创建任务管理器
func NewManager(logger *zap.Logger, sc *safe_close.SafeClose, a *app.App) *Manager {
	return &Manager{
		scheduler: NewScheduler(logger, sc),
		logger:    logger,
		app:       a,
	}
}

// RegisterTasks 注册所有任务
func (m *Manager) RegisterTasks() error {
	statsTask := NewNoteStatsTask(m.app.NoteService, m.app.Config().GetStatsInterval())
	if statsTask.LoopInterval() > 0 {
		m.scheduler.AddTask(statsTask)
	} else {
		m.logger.Info("note stats task is disabled (stats-interval not configured)")
	}

	return nil
}

// Start 启动所有已注册的任务
func (m *Manager) Start() {
	m.scheduler.Start()
}
