package annotate

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind distinguishes highlight rules from hyperlink rules.
type Kind int

const (
	Highlight Kind = iota
	Hyperlink
)

func (k Kind) String() string {
	switch k {
	case Highlight:
		return "highlight"
	case Hyperlink:
		return "hyperlink"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Occurrence controls whether a highlight applies to the first match or to every match.
type Occurrence int

const (
	All Occurrence = iota
	First
)

// Rule is a single normalized annotation rule.
type Rule struct {
	Text       string
	Kind       Kind
	Color      string // empty means the caller's default color
	Occurrence Occurrence
	URL        string
}

// Rules holds the highlight and hyperlink rules for a bio variant, in scan order.
type Rules struct {
	Highlights []Rule
	Hyperlinks []Rule
}

// highlightWord is the object form of a highlight_words entry.
type highlightWord struct {
	Text       string `json:"text"`
	Color      string `json:"color,omitempty"`
	Occurrence string `json:"occurrence,omitempty"`
}

type hyperlink struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

type rulesJSON struct {
	HighlightWords []json.RawMessage `json:"highlight_words"`
	Hyperlinks     []hyperlink       `json:"hyperlinks"`
}

// UnmarshalJSON accepts highlight_words entries either as bare strings or as
// {text, color, occurrence} objects. A bare string highlights every occurrence
// with the default color.
func (r *Rules) UnmarshalJSON(data []byte) error {
	var raw rulesJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	rules := Rules{}
	for i, entry := range raw.HighlightWords {
		var text string
		if err := json.Unmarshal(entry, &text); err == nil {
			rules.Highlights = append(rules.Highlights, Rule{Text: text, Kind: Highlight})
			continue
		}
		var word highlightWord
		if err := json.Unmarshal(entry, &word); err != nil {
			return fmt.Errorf("highlight_words[%d]: %w", i, err)
		}
		rules.Highlights = append(rules.Highlights, Rule{
			Text:       word.Text,
			Kind:       Highlight,
			Color:      word.Color,
			Occurrence: parseOccurrence(word.Occurrence),
		})
	}
	for _, link := range raw.Hyperlinks {
		rules.Hyperlinks = append(rules.Hyperlinks, Rule{Text: link.Text, Kind: Hyperlink, URL: link.URL})
	}

	*r = rules
	return nil
}

// MarshalJSON writes the object form for every highlight rule.
func (r Rules) MarshalJSON() ([]byte, error) {
	out := struct {
		HighlightWords []highlightWord `json:"highlight_words"`
		Hyperlinks     []hyperlink     `json:"hyperlinks"`
	}{
		HighlightWords: []highlightWord{},
		Hyperlinks:     []hyperlink{},
	}
	for _, h := range r.Highlights {
		word := highlightWord{Text: h.Text, Color: h.Color}
		if h.Occurrence == First {
			word.Occurrence = "first"
		}
		out.HighlightWords = append(out.HighlightWords, word)
	}
	for _, l := range r.Hyperlinks {
		out.Hyperlinks = append(out.Hyperlinks, hyperlink{Text: l.Text, URL: l.URL})
	}
	return json.Marshal(out)
}

func parseOccurrence(s string) Occurrence {
	if s == "first" {
		return First
	}
	return All
}

var (
	ErrEmptyText  = errors.New("rule text is empty")
	ErrMissingURL = errors.New("hyperlink has no url")
)

// Validate reports rules that Annotate would silently skip.
func (r Rules) Validate() error {
	var errs []error
	for i, h := range r.Highlights {
		if h.Text == "" {
			errs = append(errs, fmt.Errorf("highlight_words[%d]: %w", i, ErrEmptyText))
		}
	}
	for i, l := range r.Hyperlinks {
		if l.Text == "" {
			errs = append(errs, fmt.Errorf("hyperlinks[%d]: %w", i, ErrEmptyText))
		}
		if l.URL == "" {
			errs = append(errs, fmt.Errorf("hyperlinks[%d] %q: %w", i, l.Text, ErrMissingURL))
		}
	}
	return errors.Join(errs...)
}
