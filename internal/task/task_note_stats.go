package task

import (
	"context"
	"time"

	"github.com/haierkeys/fast-note-web/internal/service"
)

// NoteStatsTask 定期统计笔记总数，刷新 fast_note_notes 指标
type NoteStatsTask struct {
	svc      service.NoteService
	interval time.Duration
}

// NewNoteStatsTask 创建笔记统计任务
func NewNoteStatsTask(svc service.NoteService, interval time.Duration) *NoteStatsTask {
	return &NoteStatsTask{svc: svc, interval: interval}
}

func (t *NoteStatsTask) Name() string { return "note_stats" }

func (t *NoteStatsTask) LoopInterval() time.Duration { return t.interval }

func (t *NoteStatsTask) IsStartupRun() bool { return true }

// Run 表不存在时先建表，Count 会同时更新指标
func (t *NoteStatsTask) Run(ctx context.Context) error {
	if err := t.svc.EnsureSchema(ctx); err != nil {
		return err
	}
	_, err := t.svc.Count(ctx)
	return err
}
