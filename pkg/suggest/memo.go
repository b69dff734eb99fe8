package suggest

import "github.com/pluqqy/taginput/pkg/models"

// Memo caches the last ComputeOptions result. It recomputes only when the
// query or the candidate generation differs from the previous call, so
// unrelated state changes reuse the cached options.
type Memo struct {
	valid          bool
	prevQuery      string
	prevGeneration uint64
	result         Result
}

// Get returns options for query. recomputed reports whether the cached
// value was replaced; callers holding an index into the previous options
// must treat it as stale when it is true.
func (m *Memo) Get(candidates []models.Candidate, generation uint64, query string, cfg Config) (result Result, recomputed bool) {
	if m.valid && m.prevQuery == query && m.prevGeneration == generation {
		return m.result, false
	}

	m.result = ComputeOptions(candidates, query, cfg)
	m.prevQuery = query
	m.prevGeneration = generation
	m.valid = true
	return m.result, true
}

// Invalidate forces the next Get to recompute
func (m *Memo) Invalidate() {
	m.valid = false
}
