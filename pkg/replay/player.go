package replay

import (
	"fmt"

	"github.com/pluqqy/taginput/pkg/models"
	"github.com/pluqqy/taginput/pkg/taginput"
)

// Entry is one line of a transcript: an intent and the step that caused it
type Entry struct {
	Step   int    `json:"step" yaml:"step"`
	Event  string `json:"event" yaml:"event"`
	Intent string `json:"intent" yaml:"intent"`
}

// Recorder collects intents into a transcript. Its callbacks go into the
// machine's Config, usually behind tags.Store.Callbacks.
type Recorder struct {
	entries []Entry
	step    int
	event   string
}

// Callbacks returns intent handlers that record into r
func (r *Recorder) Callbacks() taginput.Callbacks {
	return taginput.Callbacks{
		OnAddition: func(tag models.Tag, query string) {
			r.record(fmt.Sprintf("add %q (query %q)", tag.Name, query))
		},
		OnDelete: func(index int) {
			r.record(fmt.Sprintf("delete %d", index))
		},
		OnUpdate: func(index int, tag models.Tag) {
			r.record(fmt.Sprintf("update %d %q", index, tag.Name))
		},
		OnFocus: func() { r.record("focus") },
		OnBlur:  func() { r.record("blur") },
	}
}

func (r *Recorder) record(intent string) {
	r.entries = append(r.entries, Entry{Step: r.step, Event: r.event, Intent: intent})
}

// Entries returns the transcript so far
func (r *Recorder) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// TagSource supplies the tags the host currently holds
type TagSource interface {
	List() []models.Tag
}

// Player feeds events to a machine. After every event the machine is handed
// the store's tags, as a host would re-render after applying intents.
type Player struct {
	machine  *taginput.Machine
	store    TagSource
	recorder *Recorder
}

// NewPlayer creates a player. recorder may be nil.
func NewPlayer(machine *taginput.Machine, store TagSource, recorder *Recorder) *Player {
	if recorder == nil {
		recorder = &Recorder{}
	}
	return &Player{machine: machine, store: store, recorder: recorder}
}

// Play applies events in order and stops at the first invalid one
func (p *Player) Play(events []Event) error {
	for i, event := range events {
		if err := p.Step(i+1, event); err != nil {
			return err
		}
	}
	return nil
}

// Step applies a single event
func (p *Player) Step(step int, event Event) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("event %d: %w", step, err)
	}

	p.recorder.step = step
	p.recorder.event = event.String()

	m := p.machine
	switch event.Type {
	case EventInput:
		m.Input(event.Text)
	case EventTyping:
		// each character is appended to whatever the query is by then,
		// since a typed delimiter may have committed and cleared it
		for _, r := range event.Text {
			m.Input(m.Query() + string(r))
			p.refresh()
		}
	case EventKey:
		m.KeyDown(event.Key)
	case EventFocus:
		m.Focus()
	case EventBlur:
		m.Blur()
	case EventDelete:
		m.DeleteTag(event.Index)
	case EventUpdate:
		m.UpdateTag(event.Index, models.Tag{Name: event.Name})
	case EventClear:
		m.Clear()
	}

	p.refresh()
	return nil
}

func (p *Player) refresh() {
	p.machine.SetTags(p.store.List())
}

// Transcript returns the recorded intents
func (p *Player) Transcript() []Entry {
	return p.recorder.Entries()
}
