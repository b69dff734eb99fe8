package tags

import (
	"fmt"
	"strconv"

	"github.com/pluqqy/taginput/pkg/files"
	"github.com/pluqqy/taginput/pkg/matcher"
	"github.com/pluqqy/taginput/pkg/models"
)

// Catalog is the read-only set of candidates offered as suggestions. It is
// loaded once from a YAML, TOML or JSON (comments allowed) file shaped as
//
//	tags:
//	  - name: golang
//	    description: Go language
//	  - name: rust
//	    disabled: true
type Catalog struct {
	Tags []models.Candidate `yaml:"tags" toml:"tags" json:"tags"`
}

// LoadCatalog reads a catalog file, picking the decoder by extension
func LoadCatalog(path string) (*Catalog, error) {
	var c Catalog
	if err := files.ReadFile(path, &c); err != nil {
		return nil, fmt.Errorf("failed to load tag catalog: %w", err)
	}
	c.assignIDs()
	return &c, nil
}

// ParseCatalog decodes catalog data in the given format
func ParseCatalog(data []byte, format files.Format) (*Catalog, error) {
	var c Catalog
	if err := files.Decode(data, format, &c); err != nil {
		return nil, fmt.Errorf("failed to parse tag catalog: %w", err)
	}
	c.assignIDs()
	return &c, nil
}

// FromNames builds a catalog of enabled candidates from plain names
func FromNames(names []string) *Catalog {
	c := &Catalog{Tags: make([]models.Candidate, 0, len(names))}
	for _, name := range names {
		if name == "" {
			continue
		}
		c.Tags = append(c.Tags, models.Candidate{Name: name})
	}
	c.assignIDs()
	return c
}

// assignIDs gives entries without an id their 1-based position
func (c *Catalog) assignIDs() {
	for i := range c.Tags {
		if c.Tags[i].ID == "" {
			c.Tags[i].ID = strconv.Itoa(i + 1)
		}
	}
}

// Candidates returns a copy of the catalog entries
func (c *Catalog) Candidates() []models.Candidate {
	out := make([]models.Candidate, len(c.Tags))
	copy(out, c.Tags)
	return out
}

// Len returns the number of entries
func (c *Catalog) Len() int {
	return len(c.Tags)
}

// Get finds an entry by name, ignoring case
func (c *Catalog) Get(name string) (models.Candidate, bool) {
	exact := matcher.Exact(name)
	for _, candidate := range c.Tags {
		if exact.Match(candidate.Name) {
			return candidate, true
		}
	}
	return models.Candidate{}, false
}

// Merge appends entries from other whose names are not already present.
// Entries without an id get their new position.
func (c *Catalog) Merge(other *Catalog) {
	if other == nil {
		return
	}
	for _, candidate := range other.Tags {
		if _, exists := c.Get(candidate.Name); !exists {
			c.Tags = append(c.Tags, candidate)
		}
	}
	c.assignIDs()
}
