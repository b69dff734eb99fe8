package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg delivers a slog record to the model for display in the
// status line
type logRecordMsg struct {
	Summary string
	Level   slog.Level
}

// LogHandler is a slog.Handler that routes records into a running
// bubbletea program, where they replace the status line. Records below
// the configured level are dropped, as are records that arrive before
// SetProgram is called.
//
// Handlers derived via WithAttrs/WithGroup share the program pointer, so a
// single SetProgram call reaches all of them.
type LogHandler struct {
	level   slog.Level
	program *atomic.Pointer[tea.Program]
	attrs   []slog.Attr
	groups  []string
}

// NewLogHandler creates a handler for records at or above level
func NewLogHandler(level slog.Level) *LogHandler {
	return &LogHandler{
		level:   level,
		program: &atomic.Pointer[tea.Program]{},
	}
}

// SetProgram sets the program that receives log messages. Safe to call
// from any goroutine.
func (h *LogHandler) SetProgram(program *tea.Program) {
	h.program.Store(program)
}

// Enabled implements slog.Handler
func (h *LogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle implements slog.Handler
func (h *LogHandler) Handle(_ context.Context, record slog.Record) error {
	program := h.program.Load()
	if program == nil {
		return nil
	}

	// Records are often logged from inside Update, where a blocking Send
	// would wait on the event loop that is running it
	msg := logRecordMsg{Summary: h.summarize(record), Level: record.Level}
	go program.Send(msg)
	return nil
}

// summarize builds "message (key=value, ...)"
func (h *LogHandler) summarize(record slog.Record) string {
	prefix := strings.Join(h.groups, ".")
	if prefix != "" {
		prefix += "."
	}

	var parts []string
	for _, attr := range h.attrs {
		parts = append(parts, fmt.Sprintf("%s%s=%s", prefix, attr.Key, attr.Value))
	}
	record.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, fmt.Sprintf("%s%s=%s", prefix, attr.Key, attr.Value))
		return true
	})

	if len(parts) == 0 {
		return record.Message
	}
	return record.Message + " (" + strings.Join(parts, ", ") + ")"
}

// WithAttrs implements slog.Handler
func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LogHandler{
		level:   h.level,
		program: h.program,
		attrs:   append(append([]slog.Attr(nil), h.attrs...), attrs...),
		groups:  append([]string(nil), h.groups...),
	}
}

// WithGroup implements slog.Handler
func (h *LogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &LogHandler{
		level:   h.level,
		program: h.program,
		attrs:   append([]slog.Attr(nil), h.attrs...),
		groups:  append(append([]string(nil), h.groups...), name),
	}
}
