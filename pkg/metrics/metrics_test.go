package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func value(t *testing.T, c prometheus.Metric) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	if m.Counter != nil {
		return m.Counter.GetValue()
	}
	return m.Gauge.GetValue()
}

func TestMetrics_NoteOps(t *testing.T) {
	m := New()

	m.ObserveNoteOp("create", nil)
	m.ObserveNoteOp("create", nil)
	m.ObserveNoteOp("delete", errors.New("not found"))
	m.SetNotesTotal(5)

	assert.Equal(t, 2.0, value(t, m.NoteOps.WithLabelValues("create", "ok")))
	assert.Equal(t, 1.0, value(t, m.NoteOps.WithLabelValues("delete", "error")))
	assert.Equal(t, 5.0, value(t, m.NotesTotal))
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New()
		New()
	})
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveNoteOp("list", nil)
		m.SetNotesTotal(1)
	})
}
