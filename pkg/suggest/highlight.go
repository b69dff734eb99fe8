package suggest

import "github.com/pluqqy/taginput/pkg/matcher"

// Segment is a run of a label, either matching the query or not
type Segment struct {
	Text    string
	Matched bool
}

// Highlight splits label into segments marking every case-insensitive,
// literal occurrence of query
func Highlight(label, query string) []Segment {
	ranges := matcher.Partial(query).FindAll(label)
	if len(ranges) == 0 {
		return []Segment{{Text: label}}
	}

	segments := make([]Segment, 0, len(ranges)*2+1)
	pos := 0
	for _, r := range ranges {
		if r[0] > pos {
			segments = append(segments, Segment{Text: label[pos:r[0]]})
		}
		segments = append(segments, Segment{Text: label[r[0]:r[1]], Matched: true})
		pos = r[1]
	}
	if pos < len(label) {
		segments = append(segments, Segment{Text: label[pos:]})
	}
	return segments
}
