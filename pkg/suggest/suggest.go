// Package suggest turns a candidate set and a query into the ordered,
// length-capped list of options offered to the user.
package suggest

import (
	"github.com/pluqqy/taginput/pkg/matcher"
	"github.com/pluqqy/taginput/pkg/models"
)

// DefaultMaxSuggestionsLength caps the option list when no limit is set
const DefaultMaxSuggestionsLength = 6

// Filter decides whether a candidate is offered for query
type Filter func(candidate models.Candidate, query string) bool

// Transform replaces filtering entirely. It receives the query and the full
// candidate set and returns the options to show. Result.HighlightedQuery may
// be left empty, in which case the query itself is highlighted.
type Transform func(query string, candidates []models.Candidate) Result

// Result is the derived option list for one query
type Result struct {
	Options []models.Candidate

	// HighlightedQuery is the text marked inside option labels
	HighlightedQuery string
}

// Config controls ComputeOptions
type Config struct {
	Filter               Filter
	Transform            Transform
	MaxSuggestionsLength int
	NoSuggestionsText    string
}

// DefaultFilter keeps candidates whose name contains query, ignoring case
func DefaultFilter(candidate models.Candidate, query string) bool {
	return matcher.Partial(query).Match(candidate.Name)
}

// List adapts a transform that only returns options
func List(fn func(query string, candidates []models.Candidate) []models.Candidate) Transform {
	return func(query string, candidates []models.Candidate) Result {
		return Result{Options: fn(query, candidates)}
	}
}

// Placeholder builds the synthetic entry shown when nothing matches
func Placeholder(text string) models.Candidate {
	return models.Candidate{
		Name:        text,
		Disabled:    true,
		Placeholder: true,
	}
}

// ComputeOptions derives the option list for query. It never modifies
// candidates, and identical inputs always give identical output.
func ComputeOptions(candidates []models.Candidate, query string, cfg Config) Result {
	var options []models.Candidate
	highlighted := query

	if cfg.Transform != nil {
		result := cfg.Transform(query, candidates)
		// Copy so truncation and the placeholder never alias the
		// transform's backing array.
		options = append([]models.Candidate(nil), result.Options...)
		if result.HighlightedQuery != "" {
			highlighted = result.HighlightedQuery
		}
	} else {
		filter := cfg.Filter
		if filter == nil {
			filter = DefaultFilter
		}
		for _, candidate := range candidates {
			if filter(candidate, query) {
				options = append(options, candidate)
			}
		}
	}

	if len(options) == 0 && cfg.NoSuggestionsText != "" {
		options = append(options, Placeholder(cfg.NoSuggestionsText))
	}

	limit := cfg.MaxSuggestionsLength
	if limit <= 0 {
		limit = DefaultMaxSuggestionsLength
	}
	if len(options) > limit {
		options = options[:limit]
	}
	if options == nil {
		options = []models.Candidate{}
	}

	return Result{Options: options, HighlightedQuery: highlighted}
}
