package tags

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/pluqqy/taginput/pkg/models"
	"github.com/pluqqy/taginput/pkg/taginput"
)

// Store errors
var (
	ErrDuplicateTag    = errors.New("tag already present")
	ErrIndexOutOfRange = errors.New("tag index out of range")
)

// StoreOptions controls how a Store accepts tags
type StoreOptions struct {
	// Normalize rewrites names with models.NormalizeTagName and validates
	// them before they are stored
	Normalize bool

	// AllowDuplicates permits the same name, ignoring case, more than once
	AllowDuplicates bool

	// OnChange is called with a copy of the tags after every mutation
	OnChange func(tags []models.Tag)

	Logger *slog.Logger
}

// Store is an ordered list of committed tags. It applies the add, delete
// and update intents emitted by a taginput.Machine.
type Store struct {
	mu     sync.RWMutex
	tags   []models.Tag
	opts   StoreOptions
	logger *slog.Logger
}

// NewStore creates a store holding initial
func NewStore(initial []models.Tag, opts StoreOptions) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Store{
		tags:   make([]models.Tag, 0, len(initial)),
		opts:   opts,
		logger: logger,
	}
	for _, tag := range initial {
		if prepared, err := s.prepare(tag, -1); err == nil {
			s.tags = append(s.tags, prepared)
		} else {
			logger.Warn("dropping initial tag", "name", tag.Name, "error", err)
		}
	}
	return s
}

// prepare normalizes and checks tag. skip is an index excluded from the
// duplicate check, used when a tag replaces itself.
func (s *Store) prepare(tag models.Tag, skip int) (models.Tag, error) {
	if s.opts.Normalize {
		if err := models.ValidateTagName(strings.TrimSpace(tag.Name)); err != nil {
			return tag, fmt.Errorf("invalid tag name %q: %w", tag.Name, err)
		}
		tag.Name = models.NormalizeTagName(tag.Name)
	}

	if !s.opts.AllowDuplicates {
		for i, existing := range s.tags {
			if i != skip && strings.EqualFold(existing.Name, tag.Name) {
				return tag, fmt.Errorf("%w: %s", ErrDuplicateTag, tag.Name)
			}
		}
	}
	return tag, nil
}

// Validate reports whether Add would accept tag
func (s *Store) Validate(tag models.Tag) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := s.prepare(tag, -1)
	return err
}

// Add appends tag. query is the text that produced it and is only logged.
func (s *Store) Add(tag models.Tag, query string) error {
	s.mu.Lock()
	prepared, err := s.prepare(tag, -1)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.tags = append(s.tags, prepared)
	snapshot := s.copyLocked()
	s.mu.Unlock()

	s.logger.Info("tag added", "name", prepared.Name, "query", query)
	s.changed(snapshot)
	return nil
}

// Delete removes the tag at index
func (s *Store) Delete(index int) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.tags) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	removed := s.tags[index]
	s.tags = append(s.tags[:index], s.tags[index+1:]...)
	snapshot := s.copyLocked()
	s.mu.Unlock()

	s.logger.Info("tag deleted", "name", removed.Name, "index", index)
	s.changed(snapshot)
	return nil
}

// Update replaces the tag at index
func (s *Store) Update(index int, tag models.Tag) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.tags) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	prepared, err := s.prepare(tag, index)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.tags[index] = prepared
	snapshot := s.copyLocked()
	s.mu.Unlock()

	s.logger.Info("tag updated", "name", prepared.Name, "index", index)
	s.changed(snapshot)
	return nil
}

// List returns a copy of the tags
func (s *Store) List() []models.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

// Names returns the tag names in order
func (s *Store) Names() []string {
	return models.TagNames(s.List())
}

// Len returns the number of tags
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tags)
}

// HasTag checks if a tag name is present, ignoring case
func (s *Store) HasTag(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, existing := range s.tags {
		if strings.EqualFold(existing.Name, name) {
			return true
		}
	}
	return false
}

func (s *Store) copyLocked() []models.Tag {
	out := make([]models.Tag, len(s.tags))
	copy(out, s.tags)
	return out
}

func (s *Store) changed(snapshot []models.Tag) {
	if s.opts.OnChange != nil {
		s.opts.OnChange(snapshot)
	}
}

// Callbacks returns intent handlers that apply to this store. Additions
// the store would refuse are vetoed through OnValidate, so the machine
// keeps the query for the user to fix. Intent handlers in base run after
// the store applied the intent; its other callbacks are kept as they are.
func (s *Store) Callbacks(base taginput.Callbacks) taginput.Callbacks {
	cb := base

	cb.OnValidate = func(tag models.Tag) bool {
		if base.OnValidate != nil && !base.OnValidate(tag) {
			return false
		}
		if err := s.Validate(tag); err != nil {
			s.logger.Warn("tag rejected", "name", tag.Name, "error", err)
			return false
		}
		return true
	}
	cb.OnAddition = func(tag models.Tag, query string) {
		if err := s.Add(tag, query); err != nil {
			s.logger.Warn("tag not added", "name", tag.Name, "error", err)
			return
		}
		if base.OnAddition != nil {
			base.OnAddition(tag, query)
		}
	}
	cb.OnDelete = func(index int) {
		if err := s.Delete(index); err != nil {
			s.logger.Warn("tag not deleted", "index", index, "error", err)
			return
		}
		if base.OnDelete != nil {
			base.OnDelete(index)
		}
	}
	cb.OnUpdate = func(index int, tag models.Tag) {
		if err := s.Update(index, tag); err != nil {
			s.logger.Warn("tag not updated", "index", index, "error", err)
			return
		}
		if base.OnUpdate != nil {
			base.OnUpdate(index, tag)
		}
	}
	return cb
}
