// Package taginput implements the interaction logic of a tag input: the
// query being typed, the keyboard-highlighted suggestion, focus, and the
// rules that turn them into add, delete and update intents.
//
// A Machine holds no rendering state. Front-ends report raw events to it
// (Input, KeyDown, Focus, Blur) and read back State to draw. Committed tags
// are owned by the host, which receives intents through Callbacks and hands
// the new list back with SetTags.
//
// A Machine is not safe for concurrent use; events are expected to arrive
// one at a time from a single event loop.
package taginput

import (
	"log/slog"
	"unicode/utf8"

	"github.com/pluqqy/taginput/pkg/matcher"
	"github.com/pluqqy/taginput/pkg/models"
	"github.com/pluqqy/taginput/pkg/suggest"
)

// NoIndex is the highlighted index when no option is highlighted
const NoIndex = -1

// Machine is the tag input state machine
type Machine struct {
	cfg        Config
	delimiters delimiterSet
	logger     *slog.Logger

	tags        []models.Tag
	suggestions []models.Candidate
	generation  uint64

	query   string
	focused bool
	index   int

	memo    suggest.Memo
	derived suggest.Result
}

// State is a read-only snapshot for rendering
type State struct {
	Query            string
	Focused          bool
	Index            int
	Options          []models.Candidate
	HighlightedQuery string
	Expanded         bool
	Tags             []models.Tag
}

// New validates cfg and returns a machine with an empty query
func New(cfg Config) (*Machine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	m := &Machine{
		cfg:         cfg,
		delimiters:  newDelimiterSet(cfg.Delimiters),
		logger:      cfg.Logger,
		tags:        cfg.Tags,
		suggestions: cfg.Suggestions,
		index:       NoIndex,
	}
	m.sync()
	return m, nil
}

// sync re-derives the option list. Whenever the options are recomputed the
// highlighted index is dropped, so it can never point into a list it was not
// chosen from.
func (m *Machine) sync() {
	result, recomputed := m.memo.Get(m.suggestions, m.generation, m.query, m.cfg.suggestConfig())
	m.derived = result
	if recomputed {
		m.index = NoIndex
	}
}

// State returns the current snapshot
func (m *Machine) State() State {
	m.sync()
	return State{
		Query:            m.query,
		Focused:          m.focused,
		Index:            m.Index(),
		Options:          m.derived.Options,
		HighlightedQuery: m.derived.HighlightedQuery,
		Expanded:         m.Expanded(),
		Tags:             m.tags,
	}
}

// Query returns the text being composed
func (m *Machine) Query() string {
	return m.query
}

// Focused reports whether the input has focus
func (m *Machine) Focused() bool {
	return m.focused
}

// Index returns the highlighted option, or NoIndex
func (m *Machine) Index() int {
	if m.index < 0 || m.index >= len(m.derived.Options) {
		return NoIndex
	}
	return m.index
}

// Options returns the current option list
func (m *Machine) Options() []models.Candidate {
	m.sync()
	return m.derived.Options
}

// HighlightedQuery returns the text to mark inside option labels
func (m *Machine) HighlightedQuery() string {
	m.sync()
	return m.derived.HighlightedQuery
}

// Expanded reports whether the suggestion panel should be shown
func (m *Machine) Expanded() bool {
	return m.focused && utf8.RuneCountInString(m.query) >= m.cfg.MinQueryLength
}

// Tags returns the tags last handed to the machine
func (m *Machine) Tags() []models.Tag {
	return m.tags
}

// SetTags replaces the host-owned tag list
func (m *Machine) SetTags(tags []models.Tag) {
	m.tags = tags
}

// SetSuggestions replaces the candidate set and forces the options to be
// recomputed
func (m *Machine) SetSuggestions(candidates []models.Candidate) {
	m.suggestions = candidates
	m.generation++
	m.sync()
}

// Input reports the full text of the input after an edit. A single
// delimiter character appended to the query is treated as a delimiter key
// press, which covers keyboards that only report text changes.
func (m *Machine) Input(text string) {
	if m.cfg.Callbacks.OnInput != nil {
		m.cfg.Callbacks.OnInput(text)
	}

	if utf8.RuneCountInString(text) == utf8.RuneCountInString(m.query)+1 {
		last, _ := utf8.DecodeLastRuneInString(text)
		if m.delimiters.has(Key(string(last))) {
			m.logger.Debug("delimiter typed", "query", m.query, "delimiter", string(last))
			m.Commit()
			return
		}
	}

	if text != m.query {
		m.setQuery(text)
	}
}

// KeyDown reports a key press and returns the event so the front-end can
// check DefaultPrevented before applying its own handling
func (m *Machine) KeyDown(raw string) *KeyEvent {
	event := NewKeyEvent(raw)

	if m.cfg.Callbacks.OnKeyDown != nil {
		m.cfg.Callbacks.OnKeyDown(event)
	}

	if m.delimiters.has(event.Key) {
		if m.query != "" || m.Index() > NoIndex {
			event.PreventDefault()
		}
		m.Commit()
	}

	switch event.Key {
	case KeyBackspace:
		if m.cfg.AllowBackspace {
			m.pressBackspace()
		}
	case KeyArrowUp:
		event.PreventDefault()
		m.move(-1)
	case KeyArrowDown:
		event.PreventDefault()
		m.move(1)
	}

	return event
}

// Focus reports that the input gained focus
func (m *Machine) Focus() {
	m.focused = true
	if m.cfg.Callbacks.OnFocus != nil {
		m.cfg.Callbacks.OnFocus()
	}
}

// Blur reports that the input lost focus. With AddOnBlur the pending query
// is committed first, using the highlight the user left it on.
func (m *Machine) Blur() {
	if m.cfg.AddOnBlur {
		m.Commit()
	}

	m.focused = false
	m.index = NoIndex

	if m.cfg.Callbacks.OnBlur != nil {
		m.cfg.Callbacks.OnBlur()
	}
}

// Commit turns the highlighted option, an option named exactly like the
// query, or (with AllowNew) the query itself into a tag. It reports whether
// a tag was added.
func (m *Machine) Commit() bool {
	if utf8.RuneCountInString(m.query) < m.cfg.MinQueryLength {
		return false
	}

	options := m.Options()
	idx := m.Index()

	if idx == NoIndex && !m.cfg.AllowNew {
		exact := matcher.Exact(m.query)
		for i, option := range options {
			if exact.Match(option.Name) {
				idx = i
				break
			}
		}
	}

	if idx > NoIndex && idx < len(options) {
		return m.AddTag(options[idx])
	}
	if m.cfg.AllowNew {
		return m.AddTag(models.Candidate{Name: m.query})
	}

	m.logger.Debug("commit ignored", "query", m.query)
	return false
}

// AddTag emits an addition intent for candidate unless it is disabled or
// rejected by OnValidate. On success the query is cleared.
func (m *Machine) AddTag(candidate models.Candidate) bool {
	if candidate.Disabled {
		m.logger.Debug("addition rejected", "name", candidate.Name, "reason", "disabled")
		return false
	}

	tag := candidate.Tag()
	if m.cfg.Callbacks.OnValidate != nil && !m.cfg.Callbacks.OnValidate(tag) {
		m.logger.Debug("addition rejected", "name", candidate.Name, "reason", "invalid")
		return false
	}

	m.logger.Debug("tag added", "name", tag.Name, "query", m.query)
	m.cfg.Callbacks.OnAddition(tag, m.query)
	m.Clear()
	return true
}

// DeleteTag emits a deletion intent for the tag at index
func (m *Machine) DeleteTag(index int) bool {
	if index < 0 || index >= len(m.tags) {
		return false
	}

	m.logger.Debug("tag deleted", "index", index)
	m.cfg.Callbacks.OnDelete(index)
	return true
}

// UpdateTag emits an update intent replacing the tag at index
func (m *Machine) UpdateTag(index int, tag models.Tag) bool {
	if m.cfg.Callbacks.OnUpdate == nil || index < 0 || index >= len(m.tags) {
		return false
	}

	m.cfg.Callbacks.OnUpdate(index, tag)
	return true
}

// Clear empties the query and drops the highlight
func (m *Machine) Clear() {
	m.index = NoIndex
	m.setQuery("")
}

func (m *Machine) setQuery(query string) {
	m.query = query
	m.sync()
}

func (m *Machine) pressBackspace() {
	if m.query != "" {
		return
	}
	m.DeleteTag(len(m.tags) - 1)
}

// move steps the highlight by delta, wrapping at both ends
func (m *Machine) move(delta int) {
	options := m.Options()
	if len(options) == 0 {
		return
	}

	last := len(options) - 1
	current := m.Index()

	switch {
	case delta < 0 && current <= 0:
		m.index = last
	case delta < 0:
		m.index = current - 1
	case current >= last:
		m.index = 0
	default:
		m.index = current + 1
	}
}
