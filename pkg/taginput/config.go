package taginput

import (
	"errors"
	"io"
	"log/slog"

	"github.com/pluqqy/taginput/pkg/models"
	"github.com/pluqqy/taginput/pkg/suggest"
)

// Configuration errors returned by New
var (
	ErrMissingOnAddition = errors.New("taginput: OnAddition callback is required")
	ErrMissingOnDelete   = errors.New("taginput: OnDelete callback is required")
	ErrInvalidLength     = errors.New("taginput: query and suggestion lengths cannot be negative")
)

// Callbacks are the intents the machine emits. OnAddition and OnDelete are
// required; the rest are optional.
type Callbacks struct {
	// OnAddition receives the tag to add and the query that produced it
	OnAddition func(tag models.Tag, query string)

	// OnDelete receives the position of the tag to remove
	OnDelete func(index int)

	// OnUpdate receives a position and its replacement tag
	OnUpdate func(index int, tag models.Tag)

	// OnValidate can veto an addition by returning false
	OnValidate func(tag models.Tag) bool

	OnInput   func(query string)
	OnKeyDown func(event *KeyEvent)
	OnFocus   func()
	OnBlur    func()
}

// Config holds everything the machine needs from its host
type Config struct {
	Tags                 []models.Tag
	Suggestions          []models.Candidate
	SuggestionsFilter    suggest.Filter
	SuggestionsTransform suggest.Transform

	// Delimiters are key identifiers or single characters that commit the
	// query. Key names are normalized with NormalizeKey.
	Delimiters []string

	MinQueryLength       int
	MaxSuggestionsLength int
	AllowNew             bool
	AllowBackspace       bool
	AddOnBlur            bool
	NoSuggestionsText    string

	Callbacks Callbacks

	// Logger receives debug records about commits and rejections.
	// Nil discards them.
	Logger *slog.Logger
}

// DefaultDelimiters returns the keys that commit by default
func DefaultDelimiters() []string {
	return []string{string(KeyTab), string(KeyEnter)}
}

// DefaultConfig returns a Config with every option at its default value.
// Callers set the callbacks and override what they need.
func DefaultConfig() Config {
	return Config{
		Delimiters:           DefaultDelimiters(),
		MinQueryLength:       2,
		MaxSuggestionsLength: suggest.DefaultMaxSuggestionsLength,
		AllowBackspace:       true,
	}
}

func (c *Config) validate() error {
	if c.Callbacks.OnAddition == nil {
		return ErrMissingOnAddition
	}
	if c.Callbacks.OnDelete == nil {
		return ErrMissingOnDelete
	}
	if c.MinQueryLength < 0 || c.MaxSuggestionsLength < 0 {
		return ErrInvalidLength
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Delimiters == nil {
		c.Delimiters = DefaultDelimiters()
	}
	if c.MaxSuggestionsLength == 0 {
		c.MaxSuggestionsLength = suggest.DefaultMaxSuggestionsLength
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
}

func (c *Config) suggestConfig() suggest.Config {
	return suggest.Config{
		Filter:               c.SuggestionsFilter,
		Transform:            c.SuggestionsTransform,
		MaxSuggestionsLength: c.MaxSuggestionsLength,
		NoSuggestionsText:    c.NoSuggestionsText,
	}
}
