package task

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/haierkeys/fast-note-web/pkg/safe_close"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingTask struct {
	runs     atomic.Int32
	interval time.Duration
	startup  bool
	panics   bool
	err      error
}

func (t *countingTask) Name() string                { return "counting" }
func (t *countingTask) LoopInterval() time.Duration { return t.interval }
func (t *countingTask) IsStartupRun() bool          { return t.startup }
func (t *countingTask) Run(ctx context.Context) error {
	t.runs.Add(1)
	if t.panics {
		panic("boom")
	}
	return t.err
}

func TestScheduler_StartupOnly(t *testing.T) {
	sc := safe_close.NewSafeClose()
	s := NewScheduler(zap.NewNop(), sc)
	task := &countingTask{startup: true}
	s.AddTask(task)
	s.Start()

	sc.SendCloseSignal(nil)
	assert.NoError(t, sc.WaitClosed())
	assert.Equal(t, int32(1), task.runs.Load())
}

func TestScheduler_LoopUntilClosed(t *testing.T) {
	sc := safe_close.NewSafeClose()
	s := NewScheduler(zap.NewNop(), sc)
	task := &countingTask{interval: 5 * time.Millisecond, err: errors.New("ignored")}
	s.AddTask(task)
	s.Start()

	assert.Eventually(t, func() bool { return task.runs.Load() >= 2 }, time.Second, time.Millisecond)

	sc.SendCloseSignal(nil)
	assert.NoError(t, sc.WaitClosed())
	n := task.runs.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, n, task.runs.Load())
}

func TestScheduler_PanicRecovered(t *testing.T) {
	sc := safe_close.NewSafeClose()
	s := NewScheduler(zap.NewNop(), sc)
	task := &countingTask{startup: true, interval: 5 * time.Millisecond, panics: true}
	s.AddTask(task)
	s.Start()

	assert.Eventually(t, func() bool { return task.runs.Load() >= 2 }, time.Second, time.Millisecond)
	sc.SendCloseSignal(nil)
	assert.NoError(t, sc.WaitClosed())
}

func TestScheduler_NoTasks(t *testing.T) {
	sc := safe_close.NewSafeClose()
	NewScheduler(zap.NewNop(), sc).Start()
	sc.SendCloseSignal(nil)
	assert.NoError(t, sc.WaitClosed())
}
