package content

import (
	"encoding/json"

	"github.com/SohamRatnaparkhi/developer-minimal-portfolio/internal/annotate"
)

// SocialLinks are the profile's external accounts.
type SocialLinks struct {
	GitHub    string `json:"github"`
	LinkedIn  string `json:"linkedin"`
	Twitter   string `json:"twitter"`
	Portfolio string `json:"portfolio,omitempty"`
}

// BioVariant is the bio text for one breakpoint together with its annotation rules.
type BioVariant struct {
	Paragraphs []string
	Rules      annotate.Rules
}

func (b *BioVariant) UnmarshalJSON(data []byte) error {
	var raw struct {
		Paragraphs []string `json:"paragraphs"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var rules annotate.Rules
	if err := json.Unmarshal(data, &rules); err != nil {
		return err
	}
	b.Paragraphs = raw.Paragraphs
	b.Rules = rules
	return nil
}

// Annotate returns the annotated segments of every paragraph.
func (b BioVariant) Annotate() [][]annotate.Segment {
	out := make([][]annotate.Segment, 0, len(b.Paragraphs))
	for _, p := range b.Paragraphs {
		out = append(out, annotate.Annotate(p, b.Rules))
	}
	return out
}

// Bio holds the small, medium and large breakpoint variants.
type Bio struct {
	SM BioVariant `json:"sm"`
	MD BioVariant `json:"md"`
	LG BioVariant `json:"lg"`
}

// Variant returns the bio for a size name; unknown sizes fall back to lg.
func (b Bio) Variant(size string) BioVariant {
	switch NormalizeSize(size) {
	case "sm":
		return b.SM
	case "md":
		return b.MD
	default:
		return b.LG
	}
}

// NormalizeSize maps a size name to sm, md or lg.
func NormalizeSize(size string) string {
	switch size {
	case "sm", "md":
		return size
	default:
		return "lg"
	}
}

type Profile struct {
	Name           string      `json:"name"`
	Title          string      `json:"title"`
	Email          string      `json:"email"`
	GitHubUsername string      `json:"githubUsername"`
	SocialLinks    SocialLinks `json:"socialLinks"`
	Bio            Bio         `json:"bio"`
}

type Experience struct {
	ID           string   `json:"id"`
	Position     string   `json:"position"`
	Company      string   `json:"company"`
	Logo         string   `json:"logo,omitempty"`
	Link         string   `json:"link,omitempty"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate,omitempty"`
	Location     string   `json:"location,omitempty"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// Current reports whether the position has no end date.
func (e Experience) Current() bool {
	return e.EndDate == "" || e.EndDate == "Present"
}

type Skill struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Level    int    `json:"level,omitempty"`
}

type Project struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	LongDescription string   `json:"longDescription,omitempty"`
	Image           string   `json:"image,omitempty"`
	Images          []string `json:"images,omitempty"`
	TechStack       []string `json:"techStack"`
	Category        string   `json:"category"`
	GitHubURL       string   `json:"githubUrl,omitempty"`
	LiveURL         string   `json:"liveUrl,omitempty"`
	IsOpenSource    bool     `json:"isOpenSource"`
	Featured        bool     `json:"featured"`
}

type BlogPost struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Excerpt   string   `json:"excerpt"`
	Date      string   `json:"date"`
	ReadTime  string   `json:"readTime"`
	Tags      []string `json:"tags"`
	URL       string   `json:"url"`
	Image     string   `json:"image,omitempty"`
	Featured  bool     `json:"featured"`
	Published bool     `json:"published"`
}

type Research struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Authors     []string `json:"authors,omitempty"`
	Publication string   `json:"publication,omitempty"`
	Date        string   `json:"date"`
	Link        string   `json:"link,omitempty"`
	Category    string   `json:"category"`
	Featured    bool     `json:"featured"`
}

type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	Icon        string `json:"icon,omitempty"`
	Featured    bool   `json:"featured"`
}

// SkillGroup is the skills of one category in document order.
type SkillGroup struct {
	Category string
	Skills   []Skill
}
