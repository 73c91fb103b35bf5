package nav

import "testing"

func TestItemFor(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"home", "home", true},
		{"github", "projects", true},
		{"blog", "blog", true},
		{"footer", "", false},
	}
	for _, tt := range tests {
		got, ok := ItemFor(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ItemFor(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestClosestSection(t *testing.T) {
	sections := []Bounds{
		{ID: "home", Top: -900, Height: 800},
		{ID: "experience", Top: -100, Height: 600},
		{ID: "skills", Top: 500, Height: 400},
	}
	if got := ClosestSection(400, sections); got != "experience" {
		t.Errorf("ClosestSection() = %q, want experience", got)
	}
	if got := ClosestSection(700, sections); got != "skills" {
		t.Errorf("ClosestSection() = %q, want skills", got)
	}
}

func TestClosestSection_GitHubMapsToProjects(t *testing.T) {
	sections := []Bounds{
		{ID: "skills", Top: -1000, Height: 400},
		{ID: "github", Top: 200, Height: 400},
		{ID: "projects", Top: 900, Height: 800},
	}
	if got := ClosestSection(400, sections); got != "projects" {
		t.Errorf("ClosestSection() = %q, want projects", got)
	}
}

func TestClosestSection_IgnoresUnknownSections(t *testing.T) {
	sections := []Bounds{
		{ID: "footer", Top: 350, Height: 100},
		{ID: "blog", Top: 2000, Height: 100},
	}
	if got := ClosestSection(400, sections); got != "blog" {
		t.Errorf("ClosestSection() = %q, want blog", got)
	}
}

func TestClosestSection_Empty(t *testing.T) {
	if got := ClosestSection(400, nil); got != DefaultSection {
		t.Errorf("ClosestSection(nil) = %q, want %q", got, DefaultSection)
	}
}

func TestClosestSection_TieGoesToEarlier(t *testing.T) {
	sections := []Bounds{
		{ID: "experience", Top: 0, Height: 200},
		{ID: "skills", Top: 200, Height: 200},
	}
	if got := ClosestSection(200, sections); got != "experience" {
		t.Errorf("ClosestSection() = %q, want experience", got)
	}
}
