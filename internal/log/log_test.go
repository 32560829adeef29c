package log

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Logger.SetOutput(&buf)
	t.Cleanup(func() { Logger.SetOutput(os.Stderr) })
	return &buf
}

func TestCloseError_LogsFailure(t *testing.T) {
	buf := captureOutput(t)

	CloseError("database shop.db", errors.New("disk I/O error"))

	out := buf.String()
	assert.Contains(t, out, "failed to close resource")
	assert.Contains(t, out, "shop.db")
	assert.Contains(t, out, "disk I/O error")
}

func TestCloseError_NilIsSilent(t *testing.T) {
	buf := captureOutput(t)

	CloseError("database shop.db", nil)

	assert.Empty(t, buf.String())
}

func TestTemporalLogger_RoutesToLogger(t *testing.T) {
	buf := captureOutput(t)

	TemporalLogger{}.Warn("activity failed", "trace_id", "t-1")

	assert.Contains(t, buf.String(), "activity failed")
	assert.Contains(t, buf.String(), "t-1")
}
