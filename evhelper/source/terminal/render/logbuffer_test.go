package render

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogBuffer_Wraps(t *testing.T) {
	lb := NewLogBuffer(3)
	for _, msg := range []string{"one", "two", "three", "four"} {
		lb.Add(LogEntry{Level: slog.LevelInfo, Message: msg})
	}

	assert.Equal(t, 3, lb.Len())

	var got []string
	for _, e := range lb.Recent(0, slog.LevelDebug) {
		got = append(got, e.Message)
	}
	assert.Equal(t, []string{"four", "three", "two"}, got)

	assert.Len(t, lb.Recent(2, slog.LevelDebug), 2)

	lb.Clear()
	assert.Empty(t, lb.Recent(0, slog.LevelDebug))
}

func TestLogBuffer_FiltersByLevel(t *testing.T) {
	lb := NewLogBuffer(10)
	lb.Add(LogEntry{Level: slog.LevelDebug, Message: "debug"})
	lb.Add(LogEntry{Level: slog.LevelWarn, Message: "warn"})
	lb.Add(LogEntry{Level: slog.LevelInfo, Message: "info"})

	got := lb.Recent(0, slog.LevelInfo)
	require.Len(t, got, 2)
	assert.Equal(t, "info", got[0].Message)
	assert.Equal(t, "warn", got[1].Message)
}

func TestHandler(t *testing.T) {
	lb := NewLogBuffer(10)
	logger := slog.New(NewHandler(lb, slog.LevelInfo))

	logger.Debug("hidden")
	logger.With("source", "terminal").WithGroup("key").Info("Pressed", "name", "Space", "held", 2*time.Second)

	entries := lb.Recent(0, slog.LevelDebug)
	require.Len(t, entries, 1)
	assert.Equal(t, "Pressed source=terminal key.name=Space key.held=2s", entries[0].Message)
}

func TestFormatEntry(t *testing.T) {
	ts := time.Date(2024, 1, 2, 13, 4, 5, 0, time.UTC)
	assert.Equal(t, "13:04:05 [WRN] careful", FormatEntry(LogEntry{Time: ts, Level: slog.LevelWarn, Message: "careful"}))
	assert.Equal(t, "13:04:05 [DBG] x", FormatEntry(LogEntry{Time: ts, Level: slog.LevelDebug - 4, Message: "x"}))
}
