// Package replay drives a taginput.Machine from a recorded script of
// events and keeps a transcript of the intents it emits.
package replay

import (
	"errors"
	"fmt"

	"github.com/pluqqy/taginput/pkg/files"
	"github.com/pluqqy/taginput/pkg/models"
)

// EventType names what an Event reports to the machine
type EventType string

const (
	EventInput  EventType = "input"  // replace the input text
	EventTyping EventType = "type"   // type text one character at a time
	EventKey    EventType = "key"    // press a key
	EventFocus  EventType = "focus"  // input gains focus
	EventBlur   EventType = "blur"   // input loses focus
	EventDelete EventType = "delete" // remove the tag at Index
	EventUpdate EventType = "update" // replace the tag at Index with Name
	EventClear  EventType = "clear"  // empty the query
)

// Script errors
var (
	ErrUnknownEvent = errors.New("unknown event type")
	ErrEmptyScript  = errors.New("script has no events")
)

// Script is a replayable session. Suggestions and Tags are merged with
// whatever the caller already configured.
type Script struct {
	Suggestions []models.Candidate `yaml:"suggestions" toml:"suggestions" json:"suggestions"`
	Tags        []string           `yaml:"tags" toml:"tags" json:"tags"`
	Events      []Event            `yaml:"events" toml:"events" json:"events"`
}

// Event is one step of a script
type Event struct {
	Type  EventType `yaml:"type" toml:"type" json:"type"`
	Text  string    `yaml:"text,omitempty" toml:"text,omitempty" json:"text,omitempty"`
	Key   string    `yaml:"key,omitempty" toml:"key,omitempty" json:"key,omitempty"`
	Index int       `yaml:"index,omitempty" toml:"index,omitempty" json:"index,omitempty"`
	Name  string    `yaml:"name,omitempty" toml:"name,omitempty" json:"name,omitempty"`
}

// String renders the event for transcripts
func (e Event) String() string {
	switch e.Type {
	case EventInput, EventTyping:
		return fmt.Sprintf("%s %q", e.Type, e.Text)
	case EventKey:
		return fmt.Sprintf("key %s", e.Key)
	case EventDelete:
		return fmt.Sprintf("delete %d", e.Index)
	case EventUpdate:
		return fmt.Sprintf("update %d %q", e.Index, e.Name)
	default:
		return string(e.Type)
	}
}

// Validate checks that the event carries what its type needs
func (e Event) Validate() error {
	switch e.Type {
	case EventInput, EventTyping, EventFocus, EventBlur, EventClear, EventDelete:
		return nil
	case EventKey:
		if e.Key == "" {
			return fmt.Errorf("key event without a key")
		}
		return nil
	case EventUpdate:
		if e.Name == "" {
			return fmt.Errorf("update event without a name")
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, e.Type)
	}
}

// Validate checks every event
func (s *Script) Validate() error {
	if len(s.Events) == 0 {
		return ErrEmptyScript
	}
	for i, event := range s.Events {
		if err := event.Validate(); err != nil {
			return fmt.Errorf("event %d: %w", i+1, err)
		}
	}
	return nil
}

// Load reads a script, choosing the decoder by file extension
func Load(path string) (*Script, error) {
	var s Script
	if err := files.ReadFile(path, &s); err != nil {
		return nil, fmt.Errorf("failed to load script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid script %s: %w", path, err)
	}
	return &s, nil
}

// Parse decodes a script in the given format
func Parse(data []byte, format files.Format) (*Script, error) {
	var s Script
	if err := files.Decode(data, format, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}
	return &s, nil
}
