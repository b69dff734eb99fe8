// Package matcher builds the case-insensitive exact and substring tests
// used to filter and resolve tag suggestions. Queries are always treated
// literally: regular expression metacharacters in a query are escaped.
package matcher

import (
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Kind distinguishes the two match modes
type Kind int

const (
	KindExact Kind = iota
	KindPartial
)

// cacheSize bounds the number of compiled matchers kept per kind
const cacheSize = 128

// Matcher tests names against a single query
type Matcher struct {
	kind  Kind
	query string
	re    *regexp.Regexp
}

type cacheKey struct {
	kind  Kind
	query string
}

var cache *lru.Cache[cacheKey, *Matcher]

func init() {
	c, err := lru.New[cacheKey, *Matcher](cacheSize)
	if err != nil {
		panic(err)
	}
	cache = c
}

// Exact returns a matcher accepting names equal to query, ignoring case.
// Exact("") only accepts the empty name.
func Exact(query string) *Matcher {
	return get(KindExact, query)
}

// Partial returns a matcher accepting names containing query, ignoring
// case. Partial("") accepts every name.
func Partial(query string) *Matcher {
	return get(KindPartial, query)
}

func get(kind Kind, query string) *Matcher {
	key := cacheKey{kind: kind, query: query}
	if m, ok := cache.Get(key); ok {
		return m
	}

	m := compile(kind, query)
	// Another caller may have raced us; keep whichever got in first so
	// repeated calls for one query hand out the same matcher.
	if prev, ok, _ := cache.PeekOrAdd(key, m); ok {
		return prev
	}
	return m
}

func compile(kind Kind, query string) *Matcher {
	pattern := "(?i)" + regexp.QuoteMeta(query)
	if kind == KindExact {
		pattern = "(?i)^" + regexp.QuoteMeta(query) + "$"
	}
	return &Matcher{
		kind:  kind,
		query: query,
		re:    regexp.MustCompile(pattern),
	}
}

// Match reports whether name satisfies the matcher
func (m *Matcher) Match(name string) bool {
	return m.re.MatchString(name)
}

// Query returns the query the matcher was built from
func (m *Matcher) Query() string {
	return m.query
}

// Kind returns the match mode
func (m *Matcher) Kind() Kind {
	return m.kind
}

// FindAll returns the byte ranges of every non-overlapping occurrence of
// the query in name. An empty query has no occurrences.
func (m *Matcher) FindAll(name string) [][]int {
	if m.query == "" {
		return nil
	}
	return m.re.FindAllStringIndex(name, -1)
}

// Index returns the position of the first name that matches, or -1
func (m *Matcher) Index(names []string) int {
	for i, name := range names {
		if m.Match(name) {
			return i
		}
	}
	return -1
}

// String implements fmt.Stringer
func (m *Matcher) String() string {
	var b strings.Builder
	if m.kind == KindExact {
		b.WriteString("exact(")
	} else {
		b.WriteString("partial(")
	}
	b.WriteString(m.query)
	b.WriteString(")")
	return b.String()
}
