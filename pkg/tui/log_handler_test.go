package tui

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogHandler_Enabled(t *testing.T) {
	h := NewLogHandler(slog.LevelWarn)

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestLogHandler_HandleWithoutProgram(t *testing.T) {
	h := NewLogHandler(slog.LevelInfo)
	record := slog.NewRecord(time.Now(), slog.LevelInfo, "ignored", 0)

	assert.NoError(t, h.Handle(context.Background(), record))
}

func TestLogHandler_Summarize(t *testing.T) {
	tests := []struct {
		name    string
		handler slog.Handler
		attrs   []slog.Attr
		want    string
	}{
		{
			name:    "message only",
			handler: NewLogHandler(slog.LevelInfo),
			want:    "tag rejected",
		},
		{
			name:    "record attrs",
			handler: NewLogHandler(slog.LevelInfo),
			attrs:   []slog.Attr{slog.String("name", "go"), slog.Int("index", 2)},
			want:    "tag rejected (name=go, index=2)",
		},
		{
			name:    "handler attrs come first",
			handler: NewLogHandler(slog.LevelInfo).WithAttrs([]slog.Attr{slog.String("cmd", "pick")}),
			attrs:   []slog.Attr{slog.String("name", "go")},
			want:    "tag rejected (cmd=pick, name=go)",
		},
		{
			name:    "group prefix",
			handler: NewLogHandler(slog.LevelInfo).WithGroup("store"),
			attrs:   []slog.Attr{slog.String("name", "go")},
			want:    "tag rejected (store.name=go)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := slog.NewRecord(time.Now(), slog.LevelWarn, "tag rejected", 0)
			record.AddAttrs(tt.attrs...)

			h := tt.handler.(*LogHandler)
			assert.Equal(t, tt.want, h.summarize(record))
		})
	}
}

func TestLogHandler_DerivedHandlersShareProgram(t *testing.T) {
	h := NewLogHandler(slog.LevelInfo)
	derived := h.WithAttrs([]slog.Attr{slog.String("k", "v")}).(*LogHandler)

	assert.Same(t, h.program, derived.program)
	assert.Same(t, h, h.WithGroup(""))
}
