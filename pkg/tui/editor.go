package tui

import (
	"io"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pluqqy/taginput/pkg/models"
	"github.com/pluqqy/taginput/pkg/taginput"
)

// TagSource is the host store the editor reads committed tags from
type TagSource interface {
	List() []models.Tag
}

// Options configures the editor
type Options struct {
	Title       string
	Placeholder string
	Width       int
	ShowHelp    bool

	// Clipboard writes text to the system clipboard. Defaults to
	// clipboard.WriteAll.
	Clipboard func(text string) error

	Logger *slog.Logger
}

// statusMsg replaces the status line
type statusMsg struct {
	Text  string
	Level slog.Level
}

// statusFadeMsg clears the status line if it still shows the message with
// the given sequence number
type statusFadeMsg struct {
	seq int
}

// statusFadeDelay is how long a status message stays visible
const statusFadeDelay = 5 * time.Second

// Editor is a bubbletea model that drives a taginput.Machine from terminal
// events and renders its state
type Editor struct {
	machine *taginput.Machine
	store   TagSource

	input   textinput.Model
	help    help.Model
	keys    KeyMap
	confirm *ConfirmationModel

	opts      Options
	logger    *slog.Logger
	width     int
	tagCursor int

	status      string
	statusLevel slog.Level
	statusSeq   int

	done     bool
	canceled bool
}

// NewEditor creates an editor. The machine's callbacks must apply intents
// to store; the editor re-reads store after every event.
func NewEditor(machine *taginput.Machine, store TagSource, opts Options) *Editor {
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.Width <= 0 {
		opts.Width = 60
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = opts.Placeholder
	ti.Width = opts.Width - 4

	h := help.New()
	h.Width = opts.Width

	e := &Editor{
		machine:   machine,
		store:     store,
		input:     ti,
		help:      h,
		keys:      DefaultKeyMap(),
		confirm:   NewConfirmation(),
		opts:      opts,
		logger:    logger,
		width:     opts.Width,
		tagCursor: -1,
	}
	e.refresh()
	e.focus()
	return e
}

// Init implements tea.Model
func (e *Editor) Init() tea.Cmd {
	return textinput.Blink
}

// Tags returns the committed tags
func (e *Editor) Tags() []models.Tag {
	return e.store.List()
}

// Done reports whether the user finished editing
func (e *Editor) Done() bool {
	return e.done
}

// Canceled reports whether the user abandoned editing
func (e *Editor) Canceled() bool {
	return e.canceled
}

// Machine exposes the underlying state machine
func (e *Editor) Machine() *taginput.Machine {
	return e.machine
}

// Update implements tea.Model
func (e *Editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.setWidth(msg.Width)

	case tea.FocusMsg:
		cmd = e.focus()

	case tea.BlurMsg:
		e.blur()

	case statusMsg:
		cmd = e.setStatus(msg.Text, msg.Level)

	case logRecordMsg:
		cmd = e.setStatus(msg.Summary, msg.Level)

	case statusFadeMsg:
		if msg.seq == e.statusSeq {
			e.status = ""
		}

	case tea.KeyMsg:
		cmd = e.handleKey(msg)
	}

	e.refresh()
	return e, cmd
}

// refresh hands the store's tags back to the machine, as a host re-renders
// with new props after applying an intent
func (e *Editor) refresh() {
	e.machine.SetTags(e.store.List())
	if e.tagCursor >= len(e.machine.Tags()) {
		e.tagCursor = len(e.machine.Tags()) - 1
	}
}

func (e *Editor) setStatus(text string, level slog.Level) tea.Cmd {
	e.statusSeq++
	e.status, e.statusLevel = text, level

	seq := e.statusSeq
	return tea.Tick(statusFadeDelay, func(time.Time) tea.Msg {
		return statusFadeMsg{seq: seq}
	})
}

func (e *Editor) setWidth(width int) {
	if e.opts.Width > 0 && width > e.opts.Width {
		width = e.opts.Width
	}
	e.width = width
	e.help.Width = width
	e.input.Width = width - 4
}

func (e *Editor) focus() tea.Cmd {
	if !e.machine.Focused() {
		e.machine.Focus()
	}
	return e.input.Focus()
}

func (e *Editor) blur() {
	if e.machine.Focused() {
		e.machine.Blur()
	}
	e.input.Blur()
	e.syncInput()
}

// syncInput copies the machine's query into the text field when a commit
// or clear changed it behind the field's back
func (e *Editor) syncInput() {
	if e.input.Value() != e.machine.Query() {
		e.input.SetValue(e.machine.Query())
		e.input.CursorEnd()
	}
}

func (e *Editor) handleKey(msg tea.KeyMsg) tea.Cmd {
	if e.confirm.Active() {
		return e.confirm.Update(msg)
	}

	switch {
	case key.Matches(msg, e.keys.Cancel):
		e.canceled = true
		return tea.Quit
	case key.Matches(msg, e.keys.Done):
		return e.finish()
	case key.Matches(msg, e.keys.Copy):
		return e.copyTags()
	case key.Matches(msg, e.keys.ShowHelp):
		e.help.ShowAll = !e.help.ShowAll
		return nil
	case key.Matches(msg, e.keys.Focus):
		if e.machine.Focused() {
			e.blur()
			return nil
		}
		return e.focus()
	}

	if !e.machine.Focused() {
		// Tab moves focus back into the field, as it would in a form
		if msg.Type == tea.KeyTab || msg.Type == tea.KeyShiftTab {
			return e.focus()
		}
		return nil
	}

	if msg.Paste {
		return e.forward(msg)
	}

	if e.machine.Query() == "" {
		if handled := e.handleTagSelection(msg); handled {
			return nil
		}
	}
	e.tagCursor = -1

	event := e.machine.KeyDown(msg.String())
	if event.DefaultPrevented() {
		e.syncInput()
		return nil
	}

	switch msg.Type {
	case tea.KeyTab, tea.KeyShiftTab:
		// Nothing to commit, so focus leaves the field
		e.blur()
		return nil
	case tea.KeyEnter:
		e.syncInput()
		return nil
	}

	return e.forward(msg)
}

// forward lets the text field apply its default editing and reports the
// resulting text to the machine
func (e *Editor) forward(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	if e.input.Value() != e.machine.Query() {
		e.machine.Input(e.input.Value())
	}
	e.syncInput()
	return cmd
}

// handleTagSelection moves between committed tags and removes the
// selected one while the query is empty
func (e *Editor) handleTagSelection(msg tea.KeyMsg) bool {
	count := len(e.machine.Tags())

	switch {
	case key.Matches(msg, e.keys.Left):
		if count == 0 {
			return true
		}
		if e.tagCursor <= 0 {
			e.tagCursor = count - 1
		} else {
			e.tagCursor--
		}
		return true
	case key.Matches(msg, e.keys.Right):
		if count == 0 {
			return true
		}
		if e.tagCursor < 0 || e.tagCursor >= count-1 {
			e.tagCursor = 0
		} else {
			e.tagCursor++
		}
		return true
	case key.Matches(msg, e.keys.Remove):
		if e.tagCursor >= 0 {
			e.machine.DeleteTag(e.tagCursor)
		}
		return true
	}
	return false
}

// finish ends the session, asking first if a typed query would be lost
func (e *Editor) finish() tea.Cmd {
	if e.machine.Query() == "" {
		e.done = true
		return tea.Quit
	}

	e.confirm.Show(ConfirmationConfig{
		Message:     "Discard \"" + e.machine.Query() + "\"?",
		Destructive: true,
		YesLabel:    "Discard",
		NoLabel:     "Keep editing",
	}, func() tea.Cmd {
		e.machine.Clear()
		e.syncInput()
		e.done = true
		return tea.Quit
	}, nil)
	return nil
}

// copyTags writes the tag names to the clipboard
func (e *Editor) copyTags() tea.Cmd {
	names := models.TagNames(e.store.List())
	write := e.opts.Clipboard
	logger := e.logger

	return func() tea.Msg {
		if len(names) == 0 {
			return statusMsg{Text: "No tags to copy", Level: slog.LevelWarn}
		}
		if err := write(joinNames(names)); err != nil {
			logger.Error("clipboard copy failed", "error", err)
			return statusMsg{Text: "Copy failed: " + err.Error(), Level: slog.LevelError}
		}
		logger.Info("tags copied", "count", len(names))
		return statusMsg{Text: "✓ Copied tags to clipboard", Level: slog.LevelInfo}
	}
}
