// Package annotate overlays highlight and hyperlink spans onto plain text.
//
// Annotate is a pure function: it keeps no state between calls and is safe
// for concurrent use.
package annotate

import (
	"sort"
	"strings"
)

// SegmentKind describes how a segment should be presented.
type SegmentKind int

const (
	PlainText SegmentKind = iota
	Highlighted
	Link
	HighlightedLink
)

func (k SegmentKind) String() string {
	switch k {
	case PlainText:
		return "text"
	case Highlighted:
		return "highlight"
	case Link:
		return "link"
	case HighlightedLink:
		return "highlight-link"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name in JSON output.
func (k SegmentKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Segment is one run of the annotated output. Start and End are byte offsets
// into the source paragraph.
type Segment struct {
	Kind  SegmentKind `json:"kind"`
	Text  string      `json:"text"`
	Color string      `json:"color,omitempty"`
	URL   string      `json:"url,omitempty"`
	Start int         `json:"start"`
	End   int         `json:"end"`
}

// Match is one located occurrence of a rule's text.
type Match struct {
	Start int
	End   int
	Text  string
	Rule  Rule
}

// Annotate splits paragraph into segments covering it without gaps or
// overlaps. An empty paragraph yields a single empty PlainText segment.
func Annotate(paragraph string, rules Rules) []Segment {
	matches := FindMatches(paragraph, rules)
	if len(matches) == 0 {
		return []Segment{{Kind: PlainText, Text: paragraph, End: len(paragraph)}}
	}

	annotated := merge(matches)

	segments := make([]Segment, 0, len(annotated)*2+1)
	cursor := 0
	for _, seg := range annotated {
		// Overlaps between different rules have no defined presentation; the
		// earlier span wins.
		if seg.Start < cursor {
			continue
		}
		if seg.Start > cursor {
			segments = append(segments, plain(paragraph, cursor, seg.Start))
		}
		segments = append(segments, seg)
		cursor = seg.End
	}
	if cursor < len(paragraph) {
		segments = append(segments, plain(paragraph, cursor, len(paragraph)))
	}
	return segments
}

// FindMatches locates every match for rules in paragraph, sorted by start
// offset. Highlights are scanned before hyperlinks and the sort is stable, so
// a highlight precedes a hyperlink at the same offset.
func FindMatches(paragraph string, rules Rules) []Match {
	var matches []Match
	for _, rule := range rules.Highlights {
		if rule.Occurrence == First {
			if m, ok := firstMatch(paragraph, rule); ok {
				matches = append(matches, m)
			}
			continue
		}
		matches = append(matches, allMatches(paragraph, rule)...)
	}
	for _, rule := range rules.Hyperlinks {
		matches = append(matches, allMatches(paragraph, rule)...)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Start < matches[j].Start
	})
	return matches
}

func firstMatch(paragraph string, rule Rule) (Match, bool) {
	if rule.Text == "" {
		return Match{}, false
	}
	idx := strings.Index(paragraph, rule.Text)
	if idx == -1 {
		return Match{}, false
	}
	return Match{Start: idx, End: idx + len(rule.Text), Text: rule.Text, Rule: rule}, true
}

func allMatches(paragraph string, rule Rule) []Match {
	if rule.Text == "" {
		return nil
	}
	var matches []Match
	from := 0
	for from <= len(paragraph) {
		idx := strings.Index(paragraph[from:], rule.Text)
		if idx == -1 {
			break
		}
		start := from + idx
		end := start + len(rule.Text)
		matches = append(matches, Match{Start: start, End: end, Text: rule.Text, Rule: rule})
		from = end
	}
	return matches
}

// merge folds each coincident highlight/hyperlink pair into a single
// HighlightedLink segment and converts the remaining matches one to one.
func merge(matches []Match) []Segment {
	out := make([]Segment, 0, len(matches))
	for i := 0; i < len(matches); i++ {
		cur := matches[i]
		if i+1 < len(matches) && coincident(cur, matches[i+1]) {
			next := matches[i+1]
			hl, link := cur, next
			if cur.Rule.Kind == Hyperlink {
				hl, link = next, cur
			}
			out = append(out, Segment{
				Kind:  HighlightedLink,
				Text:  cur.Text,
				Color: hl.Rule.Color,
				URL:   link.Rule.URL,
				Start: cur.Start,
				End:   cur.End,
			})
			i++
			continue
		}
		out = append(out, single(cur))
	}
	return out
}

func coincident(a, b Match) bool {
	return a.Start == b.Start && a.End == b.End && a.Text == b.Text && a.Rule.Kind != b.Rule.Kind
}

func single(m Match) Segment {
	seg := Segment{Text: m.Text, Start: m.Start, End: m.End}
	if m.Rule.Kind == Hyperlink {
		seg.Kind = Link
		seg.URL = m.Rule.URL
	} else {
		seg.Kind = Highlighted
		seg.Color = m.Rule.Color
	}
	return seg
}

func plain(paragraph string, start, end int) Segment {
	return Segment{Kind: PlainText, Text: paragraph[start:end], Start: start, End: end}
}

// Join concatenates the text of segments; for Annotate's output it returns
// the original paragraph.
func Join(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(seg.Text)
	}
	return b.String()
}
