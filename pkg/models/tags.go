package models

import (
	"errors"
	"hash/fnv"
	"strings"
)

// Tag-related errors
var (
	ErrEmptyTagName        = errors.New("tag name cannot be empty")
	ErrTagNameTooLong      = errors.New("tag name cannot exceed 50 characters")
	ErrInvalidTagCharacter = errors.New("tag name contains invalid characters")
)

// MaxTagNameLength is the longest tag name ValidateTagName accepts
const MaxTagNameLength = 50

// Candidate is a suggestible option shown in the autocomplete list
type Candidate struct {
	ID          string `yaml:"id,omitempty" toml:"id,omitempty" json:"id,omitempty"`
	Name        string `yaml:"name" toml:"name" json:"name"`
	Disabled    bool   `yaml:"disabled,omitempty" toml:"disabled,omitempty" json:"disabled,omitempty"`
	Color       string `yaml:"color,omitempty" toml:"color,omitempty" json:"color,omitempty"`
	Description string `yaml:"description,omitempty" toml:"description,omitempty" json:"description,omitempty"`

	// Placeholder marks the synthetic "no suggestions" entry. It is never
	// committed and never gets match highlighting.
	Placeholder bool `yaml:"-" toml:"-" json:"-"`
}

// Tag is a committed selection. Tags are identified by their position in
// the owning store, so Name does not have to be unique.
type Tag struct {
	Name   string         `yaml:"name" json:"name"`
	Fields map[string]any `yaml:"fields,omitempty" json:"fields,omitempty"`
}

// Tag converts the candidate into a tag carrying its id and colour
func (c Candidate) Tag() Tag {
	tag := Tag{Name: c.Name}
	if c.ID != "" || c.Color != "" {
		tag.Fields = make(map[string]any, 2)
		if c.ID != "" {
			tag.Fields["id"] = c.ID
		}
		if c.Color != "" {
			tag.Fields["color"] = c.Color
		}
	}
	return tag
}

// Field returns a string field of the tag, or "" when absent
func (t Tag) Field(key string) string {
	if t.Fields == nil {
		return ""
	}
	if v, ok := t.Fields[key].(string); ok {
		return v
	}
	return ""
}

// TagNames extracts the names of the given tags, in order
func TagNames(tags []Tag) []string {
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}
	return names
}

// TagsFromNames builds plain tags from names
func TagsFromNames(names []string) []Tag {
	tags := make([]Tag, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		tags = append(tags, Tag{Name: name})
	}
	return tags
}

// DefaultColorPalette provides a curated set of colors for tags
// These colors are chosen for good contrast and accessibility
var DefaultColorPalette = []string{
	"#e74c3c", // red
	"#3498db", // blue
	"#2ecc71", // green
	"#f39c12", // orange
	"#9b59b6", // purple
	"#1abc9c", // turquoise
	"#34495e", // dark gray
	"#e67e22", // dark orange
	"#16a085", // dark turquoise
	"#8e44ad", // dark purple
	"#f1c40f", // yellow
	"#d35400", // pumpkin
	"#27ae60", // nephritis
	"#2980b9", // belize hole
	"#c0392b", // pomegranate
}

// GetTagColor returns the explicit color for a tag if one is set, or
// derives a stable one from the tag name
func GetTagColor(tagName string, explicitColor string) string {
	if explicitColor != "" {
		return explicitColor
	}

	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(tagName)))
	hash := h.Sum32()

	return DefaultColorPalette[int(hash%uint32(len(DefaultColorPalette)))]
}

// NormalizeTagName normalizes a tag name for consistency
func NormalizeTagName(name string) string {
	// Convert to lowercase and trim spaces
	normalized := strings.ToLower(strings.TrimSpace(name))

	// Replace spaces with hyphens
	normalized = strings.ReplaceAll(normalized, " ", "-")

	// Keep only alphanumeric, hyphens and slashes for hierarchy
	var result strings.Builder
	for _, r := range normalized {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '/' {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// ValidateTagName checks if a tag name is valid
func ValidateTagName(name string) error {
	if name == "" {
		return ErrEmptyTagName
	}

	if len(name) > MaxTagNameLength {
		return ErrTagNameTooLong
	}

	for _, r := range name {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '-' || r == '/' || r == ' ') {
			return ErrInvalidTagCharacter
		}
	}

	return nil
}

// IsHierarchicalTag checks if a tag has a parent (contains /)
func IsHierarchicalTag(tagName string) bool {
	return strings.Contains(tagName, "/")
}

// GetTagParent returns the parent part of a hierarchical tag
func GetTagParent(tagName string) string {
	parts := strings.Split(tagName, "/")
	if len(parts) > 1 {
		return strings.Join(parts[:len(parts)-1], "/")
	}
	return ""
}

// GetTagLeaf returns the leaf part of a hierarchical tag
func GetTagLeaf(tagName string) string {
	parts := strings.Split(tagName, "/")
	return parts[len(parts)-1]
}
