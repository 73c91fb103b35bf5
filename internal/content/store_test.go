package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/SohamRatnaparkhi/developer-minimal-portfolio/internal/annotate"
)

func TestDefaults(t *testing.T) {
	s, err := Defaults()
	if err != nil {
		t.Fatalf("Defaults failed: %v", err)
	}
	if s.Profile.Name == "" {
		t.Error("expected profile name in embedded defaults")
	}
	if err := s.Validate(); err != nil {
		t.Errorf("embedded defaults should validate, got %v", err)
	}
	if len(s.Projects) == 0 || len(s.Blog) == 0 || len(s.Skills) == 0 {
		t.Error("expected embedded list documents to be populated")
	}
}

func TestLoadMissingDirUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Profile.Name == "" {
		t.Error("expected defaults to be loaded")
	}
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	profile := `{"name": "Ada", "bio": {"lg": {"highlight_words": ["Ada"], "hyperlinks": [], "paragraphs": ["Ada writes code"]}}}`
	if err := os.WriteFile(filepath.Join(dir, "profile.json"), []byte(profile), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Profile.Name != "Ada" {
		t.Errorf("name = %q, want Ada", s.Profile.Name)
	}
	if len(s.Projects) != 0 {
		t.Errorf("missing projects.json should give no projects, got %d", len(s.Projects))
	}

	segs := s.Profile.Bio.Variant("lg").Annotate()
	if len(segs) != 1 || len(segs[0]) != 2 {
		t.Fatalf("unexpected segments %+v", segs)
	}
	if segs[0][0].Kind != annotate.Highlighted || segs[0][0].Text != "Ada" {
		t.Errorf("first segment = %+v, want highlighted Ada", segs[0][0])
	}
}

func TestLoadFSMissingProfile(t *testing.T) {
	_, err := LoadFS(fstest.MapFS{})
	if err == nil {
		t.Fatal("expected error when profile.json is missing")
	}
}

func TestLoadFSInvalidJSON(t *testing.T) {
	fsys := fstest.MapFS{
		"profile.json":  {Data: []byte(`{"name": "x"}`)},
		"projects.json": {Data: []byte(`{not json`)},
	}
	if _, err := LoadFS(fsys); err == nil {
		t.Fatal("expected parse error for projects.json")
	}
}

func TestValidateReportsBadRules(t *testing.T) {
	fsys := fstest.MapFS{
		"profile.json": {Data: []byte(`{"name": "x", "bio": {"md": {"highlight_words": [""], "hyperlinks": [{"text": "a"}], "paragraphs": []}}}`)},
	}
	s, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("LoadFS failed: %v", err)
	}
	err = s.Validate()
	if !errors.Is(err, annotate.ErrEmptyText) || !errors.Is(err, annotate.ErrMissingURL) {
		t.Errorf("Validate() = %v, want empty text and missing url errors", err)
	}
}

func testStore() *Store {
	return &Store{
		Projects: []Project{
			{ID: "a", Name: "Alpha", Description: "CLI tool", TechStack: []string{"Go"}, Category: "Tools", Featured: true},
			{ID: "b", Name: "Beta", Description: "web app", TechStack: []string{"React"}, Category: "Web", Featured: true},
			{ID: "c", Name: "Gamma", Description: "service", TechStack: []string{"Go", "gRPC"}, Category: "Backend", Featured: false},
			{ID: "d", Name: "Delta", Description: "site", TechStack: []string{"Jekyll"}, Category: "Web", Featured: true},
			{ID: "e", Name: "Epsilon", Description: "bot", TechStack: []string{"Python"}, Category: "Tools", Featured: true},
			{ID: "f", Name: "Zeta", Description: "game", TechStack: []string{"Rust"}, Category: "Games", Featured: true},
		},
		Blog: []BlogPost{
			{ID: "1", Featured: true, Published: true},
			{ID: "2", Featured: true, Published: false},
			{ID: "3", Featured: false, Published: true},
			{ID: "4", Featured: true, Published: true},
			{ID: "5", Featured: true, Published: true},
			{ID: "6", Featured: true, Published: true},
		},
		Skills: []Skill{
			{Name: "Go", Category: "Languages"},
			{Name: "Docker", Category: "Infra"},
			{Name: "Rust", Category: "Languages"},
		},
		Research:     []Research{{ID: "r1", Featured: true}, {ID: "r2"}},
		Achievements: []Achievement{{ID: "x1"}, {ID: "x2", Featured: true}},
	}
}

func TestFeaturedProjects(t *testing.T) {
	got := testStore().FeaturedProjects()
	ids := ""
	for _, p := range got {
		ids += p.ID
	}
	if ids != "abde" {
		t.Errorf("FeaturedProjects() ids = %q, want %q", ids, "abde")
	}
}

func TestFilterProjects(t *testing.T) {
	s := testStore()
	tests := []struct {
		name     string
		search   string
		category string
		want     int
	}{
		{"everything", "", "all", 6},
		{"empty category", "", "", 6},
		{"by category", "", "Web", 2},
		{"by tech case insensitive", "go", "all", 2},
		{"by description", "BOT", "all", 1},
		{"search and category", "go", "Backend", 1},
		{"no match", "cobol", "all", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.FilterProjects(tt.search, tt.category); len(got) != tt.want {
				t.Errorf("FilterProjects(%q, %q) returned %d, want %d", tt.search, tt.category, len(got), tt.want)
			}
		})
	}
}

func TestProjectCategories(t *testing.T) {
	got := testStore().ProjectCategories()
	want := []string{"all", "Tools", "Web", "Backend", "Games"}
	if len(got) != len(want) {
		t.Fatalf("ProjectCategories() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ProjectCategories()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestProjectByID(t *testing.T) {
	s := testStore()
	p, err := s.ProjectByID("c")
	if err != nil || p.Name != "Gamma" {
		t.Errorf("ProjectByID(c) = %+v, %v", p, err)
	}
	if _, err := s.ProjectByID("zzz"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ProjectByID(zzz) error = %v, want ErrNotFound", err)
	}
}

func TestFeaturedPosts(t *testing.T) {
	got := testStore().FeaturedPosts()
	if len(got) != 3 {
		t.Fatalf("FeaturedPosts() returned %d, want 3", len(got))
	}
	if got[0].ID != "1" || got[1].ID != "4" || got[2].ID != "5" {
		t.Errorf("FeaturedPosts() = %v", got)
	}
}

func TestPublishedPosts(t *testing.T) {
	if got := testStore().PublishedPosts(); len(got) != 5 {
		t.Errorf("PublishedPosts() returned %d, want 5", len(got))
	}
}

func TestSkillGroups(t *testing.T) {
	groups := testStore().SkillGroups()
	if len(groups) != 2 {
		t.Fatalf("SkillGroups() returned %d groups, want 2", len(groups))
	}
	if groups[0].Category != "Languages" || len(groups[0].Skills) != 2 {
		t.Errorf("first group = %+v", groups[0])
	}
	if groups[1].Category != "Infra" || len(groups[1].Skills) != 1 {
		t.Errorf("second group = %+v", groups[1])
	}
}

func TestFeaturedResearchAndAchievements(t *testing.T) {
	s := testStore()
	if got := s.FeaturedResearch(); len(got) != 1 || got[0].ID != "r1" {
		t.Errorf("FeaturedResearch() = %v", got)
	}
	if got := s.FeaturedAchievements(); len(got) != 1 || got[0].ID != "x2" {
		t.Errorf("FeaturedAchievements() = %v", got)
	}
	if _, err := s.ResearchByID("r2"); err != nil {
		t.Errorf("ResearchByID(r2) error = %v", err)
	}
}

func TestBioVariantFallback(t *testing.T) {
	b := Bio{
		SM: BioVariant{Paragraphs: []string{"sm"}},
		LG: BioVariant{Paragraphs: []string{"lg"}},
	}
	if got := b.Variant("sm").Paragraphs[0]; got != "sm" {
		t.Errorf("Variant(sm) = %q", got)
	}
	if got := b.Variant("xl").Paragraphs[0]; got != "lg" {
		t.Errorf("Variant(xl) = %q, want lg fallback", got)
	}
}

func TestGridSkills(t *testing.T) {
	s := &Store{}
	for i := 0; i < 15; i++ {
		s.Skills = append(s.Skills, Skill{Name: fmt.Sprintf("skill-%d", i), Category: "Tools"})
	}
	grid := s.GridSkills()
	if len(grid) != 12 {
		t.Fatalf("GridSkills() returned %d, want 12", len(grid))
	}
	if grid[0].Name != "skill-0" || grid[11].Name != "skill-11" {
		t.Errorf("GridSkills() should keep document order, got %q..%q", grid[0].Name, grid[11].Name)
	}
	if got := testStore().GridSkills(); len(got) != 3 {
		t.Errorf("GridSkills() on a short list returned %d, want 3", len(got))
	}
}

func TestNormalizeSize(t *testing.T) {
	tests := map[string]string{"sm": "sm", "md": "md", "lg": "lg", "xl": "lg", "": "lg", "SM": "lg"}
	for in, want := range tests {
		if got := NormalizeSize(in); got != want {
			t.Errorf("NormalizeSize(%q) = %q, want %q", in, got, want)
		}
	}
}
