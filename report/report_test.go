package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerRecords(t *testing.T) {
	r := New()
	lg := NewLogger(WithReport(r), WithQuiet())

	lg.Infof("created %d lanes", 2)
	lg.Phase("flows").Warnw("A->X", "target %q not found", "X")
	lg.Errorw("Task_9", "unsupported")

	items := r.Diagnostics()
	if !assert.Len(t, items, 3) {
		return
	}
	assert.Equal(t, Diagnostic{Level: LevelInfo, Message: "created 2 lanes"}, items[0])
	assert.Equal(t, "flows", items[1].Phase)
	assert.Equal(t, "A->X", items[1].Subject)
	assert.Equal(t, `[warn] flows A->X: target "X" not found`, items[1].String())

	if assert.Len(t, r.Warnings(), 1) {
		assert.Equal(t, "A->X", r.Warnings()[0].Subject)
	}
	if assert.Len(t, r.Errors(), 1) {
		assert.Equal(t, "Task_9", r.Errors()[0].Subject)
	}
	assert.Len(t, r.Filter(LevelWarn), 2)
	assert.True(t, r.HasErrors())
	assert.Equal(t, "1 warnings, 1 errors", r.Summary())
}

func TestLoggerDefaultReport(t *testing.T) {
	lg := NewLogger(WithQuiet())
	lg.Debug("x")
	assert.Equal(t, 1, lg.Report().Len())
	assert.False(t, lg.Report().HasErrors())
	assert.Empty(t, lg.Report().Warnings())
}
