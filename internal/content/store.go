// Package content loads the portfolio's static JSON documents and answers the
// queries the page sections need.
package content

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"
)

//go:embed defaults/*.json
var defaults embed.FS

// Logger is used to report fallbacks while loading.
var Logger = log.New(os.Stderr, "[content] ", log.LstdFlags)

var ErrNotFound = errors.New("not found")

const (
	maxFeaturedProjects = 4
	maxFeaturedPosts    = 3
	maxGridSkills       = 12
)

// Store holds every content document. It is read-only after Load.
type Store struct {
	Profile      Profile
	Experience   []Experience
	Skills       []Skill
	Projects     []Project
	Blog         []BlogPost
	Research     []Research
	Achievements []Achievement
}

// Load reads the documents from dir. An empty or missing dir falls back to
// the embedded defaults.
func Load(dir string) (*Store, error) {
	if dir == "" {
		return Defaults()
	}
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		Logger.Printf("content dir %s not found, using embedded defaults", dir)
		return Defaults()
	}
	if err != nil {
		return nil, fmt.Errorf("accessing content dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content path %s is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir))
}

// Defaults loads the embedded documents.
func Defaults() (*Store, error) {
	sub, err := fs.Sub(defaults, "defaults")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// LoadFS reads every document from fsys. profile.json is required; the list
// documents are optional and default to empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	s := &Store{}
	if err := readJSON(fsys, "profile.json", &s.Profile, true); err != nil {
		return nil, err
	}

	docs := []struct {
		name string
		dst  any
	}{
		{"experience.json", &s.Experience},
		{"skills.json", &s.Skills},
		{"projects.json", &s.Projects},
		{"blog.json", &s.Blog},
		{"research.json", &s.Research},
		{"achievements.json", &s.Achievements},
	}
	for _, d := range docs {
		if err := readJSON(fsys, d.name, d.dst, false); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func readJSON(fsys fs.FS, name string, dst any, required bool) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

// Validate checks the bio annotation rules of every breakpoint.
func (s *Store) Validate() error {
	var errs []error
	variants := []struct {
		size string
		bio  BioVariant
	}{
		{"sm", s.Profile.Bio.SM},
		{"md", s.Profile.Bio.MD},
		{"lg", s.Profile.Bio.LG},
	}
	for _, v := range variants {
		if err := v.bio.Rules.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("profile.json bio.%s: %w", v.size, err))
		}
	}
	if s.Profile.Name == "" {
		errs = append(errs, errors.New("profile.json: name is required"))
	}
	return errors.Join(errs...)
}

// FeaturedProjects returns up to four featured projects in document order.
func (s *Store) FeaturedProjects() []Project {
	var out []Project
	for _, p := range s.Projects {
		if !p.Featured {
			continue
		}
		out = append(out, p)
		if len(out) == maxFeaturedProjects {
			break
		}
	}
	return out
}

// FilterProjects matches search case-insensitively against name, description
// and tech stack. Category "all" or "" matches every category.
func (s *Store) FilterProjects(search, category string) []Project {
	q := strings.ToLower(strings.TrimSpace(search))
	var out []Project
	for _, p := range s.Projects {
		if category != "" && category != "all" && p.Category != category {
			continue
		}
		if q != "" && !projectMatches(p, q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func projectMatches(p Project, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, tech := range p.TechStack {
		if strings.Contains(strings.ToLower(tech), q) {
			return true
		}
	}
	return false
}

// ProjectCategories returns "all" followed by each distinct category in
// first-seen order.
func (s *Store) ProjectCategories() []string {
	seen := map[string]bool{}
	out := []string{"all"}
	for _, p := range s.Projects {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

func (s *Store) ProjectByID(id string) (Project, error) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, nil
		}
	}
	return Project{}, fmt.Errorf("project %q: %w", id, ErrNotFound)
}

// FeaturedPosts returns up to three posts that are both featured and published.
func (s *Store) FeaturedPosts() []BlogPost {
	var out []BlogPost
	for _, p := range s.Blog {
		if !p.Featured || !p.Published {
			continue
		}
		out = append(out, p)
		if len(out) == maxFeaturedPosts {
			break
		}
	}
	return out
}

func (s *Store) PublishedPosts() []BlogPost {
	var out []BlogPost
	for _, p := range s.Blog {
		if p.Published {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) FeaturedResearch() []Research {
	var out []Research
	for _, r := range s.Research {
		if r.Featured {
			out = append(out, r)
		}
	}
	return out
}

func (s *Store) ResearchByID(id string) (Research, error) {
	for _, r := range s.Research {
		if r.ID == id {
			return r, nil
		}
	}
	return Research{}, fmt.Errorf("research %q: %w", id, ErrNotFound)
}

func (s *Store) FeaturedAchievements() []Achievement {
	var out []Achievement
	for _, a := range s.Achievements {
		if a.Featured {
			out = append(out, a)
		}
	}
	return out
}

// GridSkills returns the skills shown in the static desktop grid, in
// document order.
func (s *Store) GridSkills() []Skill {
	if len(s.Skills) > maxGridSkills {
		return s.Skills[:maxGridSkills]
	}
	return s.Skills
}

// SkillGroups groups skills by category, categories in first-seen order.
func (s *Store) SkillGroups() []SkillGroup {
	index := map[string]int{}
	var groups []SkillGroup
	for _, sk := range s.Skills {
		i, ok := index[sk.Category]
		if !ok {
			i = len(groups)
			index[sk.Category] = i
			groups = append(groups, SkillGroup{Category: sk.Category})
		}
		groups[i].Skills = append(groups[i].Skills, sk)
	}
	return groups
}
