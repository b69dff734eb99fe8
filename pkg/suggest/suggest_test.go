package suggest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/taginput/pkg/models"
)

func fruit() []models.Candidate {
	return []models.Candidate{
		{ID: "1", Name: "Apple"},
		{ID: "2", Name: "Banana"},
		{ID: "3", Name: "Avocado"},
	}
}

func names(options []models.Candidate) []string {
	out := make([]string, len(options))
	for i, o := range options {
		out[i] = o.Name
	}
	return out
}

func TestComputeOptions_DefaultFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		max   int
		want  []string
	}{
		{"all contain a", "a", 0, []string{"Apple", "Banana", "Avocado"}},
		{"capped at two", "a", 2, []string{"Apple", "Banana"}},
		{"case insensitive", "AV", 0, []string{"Avocado"}},
		{"no match", "kiwi", 0, []string{}},
		{"empty query matches all", "", 0, []string{"Apple", "Banana", "Avocado"}},
		{"regex specials", "a.*", 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComputeOptions(fruit(), tt.query, Config{MaxSuggestionsLength: tt.max})
			assert.Equal(t, tt.want, names(result.Options))
			assert.Equal(t, tt.query, result.HighlightedQuery)
		})
	}
}

func TestComputeOptions_DefaultLimit(t *testing.T) {
	var candidates []models.Candidate
	for i := 0; i < 10; i++ {
		candidates = append(candidates, models.Candidate{Name: strings.Repeat("x", i+1)})
	}

	result := ComputeOptions(candidates, "x", Config{})
	assert.Len(t, result.Options, DefaultMaxSuggestionsLength)
	assert.Equal(t, "x", result.Options[0].Name)
}

func TestComputeOptions_NoSuggestionsText(t *testing.T) {
	result := ComputeOptions(fruit(), "kiwi", Config{NoSuggestionsText: "No matches"})

	require.Len(t, result.Options, 1)
	assert.Equal(t, "No matches", result.Options[0].Name)
	assert.True(t, result.Options[0].Disabled)
	assert.True(t, result.Options[0].Placeholder)

	withMatches := ComputeOptions(fruit(), "apple", Config{NoSuggestionsText: "No matches"})
	assert.Equal(t, []string{"Apple"}, names(withMatches.Options))
}

func TestComputeOptions_CustomFilter(t *testing.T) {
	prefix := func(c models.Candidate, q string) bool {
		return strings.HasPrefix(strings.ToLower(c.Name), strings.ToLower(q))
	}

	result := ComputeOptions(fruit(), "a", Config{Filter: prefix})
	assert.Equal(t, []string{"Apple", "Avocado"}, names(result.Options))
}

func TestComputeOptions_Transform(t *testing.T) {
	t.Run("bare list", func(t *testing.T) {
		reverse := List(func(query string, candidates []models.Candidate) []models.Candidate {
			out := make([]models.Candidate, 0, len(candidates))
			for i := len(candidates) - 1; i >= 0; i-- {
				out = append(out, candidates[i])
			}
			return out
		})

		result := ComputeOptions(fruit(), "zz", Config{Transform: reverse, MaxSuggestionsLength: 2})
		assert.Equal(t, []string{"Avocado", "Banana"}, names(result.Options))
		assert.Equal(t, "zz", result.HighlightedQuery)
	})

	t.Run("structured result overrides highlight", func(t *testing.T) {
		transform := func(query string, candidates []models.Candidate) Result {
			return Result{Options: candidates[:1], HighlightedQuery: "pp"}
		}

		result := ComputeOptions(fruit(), "apple", Config{Transform: transform})
		assert.Equal(t, []string{"Apple"}, names(result.Options))
		assert.Equal(t, "pp", result.HighlightedQuery)
	})

	t.Run("nil options get placeholder", func(t *testing.T) {
		transform := func(string, []models.Candidate) Result { return Result{} }

		result := ComputeOptions(fruit(), "a", Config{Transform: transform, NoSuggestionsText: "none"})
		require.Len(t, result.Options, 1)
		assert.True(t, result.Options[0].Disabled)
	})

	t.Run("transform output is not aliased", func(t *testing.T) {
		backing := fruit()
		transform := func(string, []models.Candidate) Result { return Result{Options: backing[:0]} }

		ComputeOptions(fruit(), "a", Config{Transform: transform, NoSuggestionsText: "none"})
		assert.Equal(t, "Apple", backing[0].Name)
	})
}

func TestComputeOptions_DoesNotMutateInput(t *testing.T) {
	candidates := fruit()
	before := append([]models.Candidate(nil), candidates...)

	ComputeOptions(candidates, "a", Config{MaxSuggestionsLength: 1, NoSuggestionsText: "none"})
	ComputeOptions(candidates, "zzz", Config{NoSuggestionsText: "none"})

	assert.Equal(t, before, candidates)
}

func TestComputeOptions_Deterministic(t *testing.T) {
	cfg := Config{MaxSuggestionsLength: 2}
	assert.Equal(t, ComputeOptions(fruit(), "a", cfg), ComputeOptions(fruit(), "a", cfg))
}
