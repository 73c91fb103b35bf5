// Package nav maps page sections to navigation items and picks the active one.
package nav

import "math"

// Section is one anchor on the index page.
type Section struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Sections lists the index page anchors in page order.
var Sections = []Section{
	{ID: "home", Label: "Home"},
	{ID: "experience", Label: "Experience"},
	{ID: "skills", Label: "Skills"},
	{ID: "github", Label: "GitHub"},
	{ID: "projects", Label: "Projects"},
	{ID: "extra-curriculars", Label: "Extracurriculars"},
	{ID: "blog", Label: "Blog"},
}

// Items are the sections with a navigation entry. GitHub has none; it sits
// under Projects.
var Items = []Section{
	{ID: "home", Label: "Home"},
	{ID: "experience", Label: "Experience"},
	{ID: "skills", Label: "Skills"},
	{ID: "projects", Label: "Projects"},
	{ID: "extra-curriculars", Label: "Extracurriculars"},
	{ID: "blog", Label: "Blog"},
}

const DefaultSection = "home"

// Bounds is the vertical extent of a section relative to the viewport.
type Bounds struct {
	ID     string  `json:"id"`
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// ItemFor returns the navigation item a section belongs to, and false when
// the section has none.
func ItemFor(sectionID string) (string, bool) {
	if sectionID == "github" {
		sectionID = "projects"
	}
	for _, item := range Items {
		if item.ID == sectionID {
			return sectionID, true
		}
	}
	return "", false
}

// ClosestSection returns the navigation item whose section center is
// nearest to viewportCenter. Sections without a navigation item are ignored;
// with nothing to choose from the result is DefaultSection. Ties go to the
// earlier section.
func ClosestSection(viewportCenter float64, sections []Bounds) string {
	best := DefaultSection
	bestDistance := math.Inf(1)
	for _, s := range sections {
		id, ok := ItemFor(s.ID)
		if !ok {
			continue
		}
		d := math.Abs(s.Top + s.Height/2 - viewportCenter)
		if d < bestDistance {
			bestDistance = d
			best = id
		}
	}
	return best
}
