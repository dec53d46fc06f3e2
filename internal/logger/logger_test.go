package logger

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchRecords(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf).WithRun("run-1")

	l.BatchStarted("/notes", "md->omd")
	l.FileConverted("/notes/a.md", "/notes/a.omd", 12)
	l.ConversionError("/notes/b.md", "/notes/b.omd", errors.New("boom"))
	l.BatchCompleted(1, 2, 1, 1500*time.Millisecond)

	out := buf.String()
	assert.Contains(t, out, "batch started")
	assert.Contains(t, out, "run_id=run-1")
	assert.Contains(t, out, "bytes_saved=12")
	assert.Contains(t, out, "error=boom")
	assert.Contains(t, out, "batch completed")
	assert.Contains(t, out, "files_converted=1")
}

func TestDebugRecordsFilteredByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithLevel(&buf, log.InfoLevel)

	l.Skipped("a.md", "unchanged")
	assert.Empty(t, buf.String())

	l = NewWithLevel(&buf, log.DebugLevel)
	l.Skipped("a.md", "unchanged")
	assert.Contains(t, buf.String(), "file skipped")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.InfoLevel, ParseLevel(""))
	assert.Equal(t, log.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, log.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, log.InfoLevel, ParseLevel("nonsense"))
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qmd.log")

	l, cleanup, err := NewFileLogger(path, log.InfoLevel)
	require.NoError(t, err)
	l.Info("hello")
	cleanup()

	_, _, err = NewFileLogger(filepath.Join(t.TempDir(), "missing", "qmd.log"), log.InfoLevel)
	assert.Error(t, err)
}
