// Package render turns content and annotated text into HTML fragments for
// the page templates.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/SohamRatnaparkhi/developer-minimal-portfolio/internal/annotate"
)

// DefaultColor is used for highlights whose rule has no color.
const DefaultColor = "hsl(var(--primary))"

// Segments renders annotated segments as inline HTML. Every piece of text
// and every attribute value is escaped. Links whose URL is not http, https,
// mailto or relative lose their anchor, and unsafe colors are replaced by
// defaultColor.
func Segments(segments []annotate.Segment, defaultColor string) template.HTML {
	if defaultColor == "" || !SafeColor(defaultColor) {
		defaultColor = DefaultColor
	}
	var b strings.Builder
	for _, seg := range segments {
		text := template.HTMLEscapeString(seg.Text)
		kind := seg.Kind
		if (kind == annotate.Link || kind == annotate.HighlightedLink) && !SafeURL(seg.URL) {
			if kind == annotate.Link {
				kind = annotate.PlainText
			} else {
				kind = annotate.Highlighted
			}
		}
		switch kind {
		case annotate.Highlighted:
			fmt.Fprintf(&b, `<span class="font-semibold" style="color: %s">%s</span>`, colorOr(seg.Color, defaultColor), text)
		case annotate.Link:
			fmt.Fprintf(&b, `<a href="%s" target="_blank" rel="noopener noreferrer" class="bio-link">%s</a>`,
				template.HTMLEscapeString(seg.URL), text)
		case annotate.HighlightedLink:
			fmt.Fprintf(&b, `<a href="%s" target="_blank" rel="noopener noreferrer" class="bio-link font-semibold" style="color: %s">%s</a>`,
				template.HTMLEscapeString(seg.URL), colorOr(seg.Color, defaultColor), text)
		default:
			b.WriteString(text)
		}
	}
	return template.HTML(b.String())
}

var colorPattern = regexp.MustCompile(`^[#\w(),.%\s-]+$`)

// SafeColor reports whether c can be placed in a style attribute as a
// color value: no declarations, urls or expressions.
func SafeColor(c string) bool {
	lc := strings.ToLower(c)
	return colorPattern.MatchString(c) && !strings.Contains(lc, "url(") && !strings.Contains(lc, "expression")
}

// SafeURL reports whether u is an http, https, mailto or relative URL.
func SafeURL(u string) bool {
	parsed, err := url.Parse(strings.TrimSpace(u))
	if err != nil {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "", "http", "https", "mailto":
		return true
	default:
		return false
	}
}

func colorOr(c, fallback string) string {
	if c == "" || !SafeColor(c) {
		c = fallback
	}
	return template.HTMLEscapeString(c)
}

// Paragraph annotates a paragraph and renders it in one step.
func Paragraph(paragraph string, rules annotate.Rules, defaultColor string) template.HTML {
	return Segments(annotate.Annotate(paragraph, rules), defaultColor)
}

var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

// Markdown renders markdown to HTML. Raw HTML in the source is not passed
// through.
func Markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// MustMarkdown is Markdown for templates: a conversion error renders the
// escaped source instead.
func MustMarkdown(src string) template.HTML {
	out, err := Markdown(src)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return out
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01"}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MonthYear formats a date as "March 2025"; unparseable input is returned as is.
func MonthYear(s string) string {
	t, ok := parseDate(s)
	if !ok {
		return s
	}
	return t.Format("January 2006")
}

// ShortDate formats a date as "Mar 14, 2025"; unparseable input is returned as is.
func ShortDate(s string) string {
	t, ok := parseDate(s)
	if !ok {
		return s
	}
	return t.Format("Jan 2, 2006")
}

// Initials returns the first letter of each word in name.
func Initials(name string) string {
	var b strings.Builder
	for _, w := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(w)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// FirstLetter returns the first letter of s, used as an image placeholder.
func FirstLetter(s string) string {
	r, size := utf8.DecodeRuneInString(strings.TrimSpace(s))
	if size == 0 {
		return ""
	}
	return string(r)
}

// Take returns at most n leading items and how many were left out.
func Take(items []string, n int) ([]string, int) {
	if len(items) <= n {
		return items, 0
	}
	return items[:n], len(items) - n
}

// Funcs are the helpers available to every page template. defaultColor is
// used for highlights without a color of their own.
func Funcs(defaultColor string) template.FuncMap {
	return template.FuncMap{
		"segments":    func(s []annotate.Segment) template.HTML { return Segments(s, defaultColor) },
		"markdown":    MustMarkdown,
		"monthYear":   MonthYear,
		"shortDate":   ShortDate,
		"initials":    Initials,
		"firstLetter": FirstLetter,
		"lower":       strings.ToLower,
		"join":        strings.Join,
		"take": func(items []string, n int) []string {
			out, _ := Take(items, n)
			return out
		},
		"more": func(items []string, n int) int {
			_, rest := Take(items, n)
			return rest
		},
	}
}
