package main

import (
	"embed"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SohamRatnaparkhi/developer-minimal-portfolio/internal/annotate"
	"github.com/SohamRatnaparkhi/developer-minimal-portfolio/internal/config"
	"github.com/SohamRatnaparkhi/developer-minimal-portfolio/internal/content"
	"github.com/SohamRatnaparkhi/developer-minimal-portfolio/internal/github"
	"github.com/SohamRatnaparkhi/developer-minimal-portfolio/internal/nav"
	"github.com/SohamRatnaparkhi/developer-minimal-portfolio/internal/render"
	"github.com/SohamRatnaparkhi/developer-minimal-portfolio/internal/store"
	"github.com/SohamRatnaparkhi/developer-minimal-portfolio/internal/theme"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

const themeCookie = "theme"

type server struct {
	cfg     *config.Config
	content *content.Store
	db      *store.DB
	github  *github.Client
	mailer  mailer

	adminToken  string
	hashingSalt string

	now func() time.Time
	// track runs visitor recording; tests replace it to run synchronously.
	track func(func())
}

func newServer(cfg *config.Config, site *content.Store, db *store.DB) *server {
	s := &server{
		cfg:     cfg,
		content: site,
		db:      db,
		github:  github.NewClient(cfg.GitHub.APIBase, cfg.GitHub.CacheTTL),
		now:     time.Now,
		track:   func(f func()) { go f() },
	}
	if cfg.SMTP.Enabled() {
		s.mailer = newSMTPMailer(cfg.SMTP)
	} else {
		log.Println("SMTP credentials not configured; contact messages are only stored")
	}
	s.initAdminToken()
	return s
}

func (s *server) routes() *gin.Engine {
	r := gin.Default()

	color := s.cfg.DefaultColor
	if color == "" {
		color = render.DefaultColor
	}
	tmpl := template.Must(template.New("").Funcs(render.Funcs(color)).ParseFS(templatesFS, "templates/*.html"))
	r.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Fatal("Failed to load static assets:", err)
	}
	r.StaticFS("/static", http.FS(static))
	r.Static("/images", "./images")

	r.Use(colorSchemeHintMiddleware(), s.visitorTrackingMiddleware())

	r.GET("/", s.handleIndex)
	r.GET("/projects", s.handleProjects)
	r.GET("/projects/:id", s.handleProjectDetail)
	r.GET("/research/:id", s.handleResearchDetail)
	r.GET("/blog", s.handleBlog)
	r.GET("/github-content", s.handleGitHubContent)

	// HTMX contact form endpoint - returns just the form HTML
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"title": "Contact Me",
		})
	})
	r.POST("/contact", s.handleContact)

	r.POST("/theme/toggle", s.handleThemeToggle)

	api := r.Group("/api")
	api.GET("/bio", s.handleBio)
	api.POST("/nav/active", s.handleNavActive)

	s.setupAdminRoutes(r)

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "not-found.html", s.page(c, "Page not found", nil))
	})
	return r
}

// cookieThemeStore persists the theme preference in a cookie.
type cookieThemeStore struct {
	c *gin.Context
}

func (s cookieThemeStore) Get() string {
	v, _ := s.c.Cookie(themeCookie)
	return v
}

func (s cookieThemeStore) Set(value string) error {
	s.c.SetCookie(themeCookie, value, 365*24*3600, "/", "", false, false)
	return nil
}

const colorSchemeHint = "Sec-CH-Prefers-Color-Scheme"

// colorSchemeHintMiddleware asks the browser to send its color scheme
// preference, which themeFor falls back to when no theme cookie is set.
func colorSchemeHintMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Accept-CH", colorSchemeHint)
		c.Header("Critical-CH", colorSchemeHint)
		c.Writer.Header().Add("Vary", colorSchemeHint)
		c.Next()
	}
}

func themeFor(c *gin.Context) *theme.Controller {
	prefersDark := c.GetHeader(colorSchemeHint) == theme.Dark
	return theme.NewController(cookieThemeStore{c}, prefersDark)
}

// page returns the data shared by every full page, merged with extra.
func (s *server) page(c *gin.Context, title string, extra gin.H) gin.H {
	h := gin.H{
		"Title":       title,
		"Dark":        themeFor(c).IsDark(),
		"NavItems":    nav.Items,
		"Profile":     s.content.Profile,
		"CurrentYear": s.now().Year(),
	}
	for k, v := range extra {
		h[k] = v
	}
	return h
}

func (s *server) handleIndex(c *gin.Context) {
	bio := s.content.Profile.Bio
	c.HTML(http.StatusOK, "index.html", s.page(c, s.content.Profile.Name+" - "+s.content.Profile.Title, gin.H{
		"Bio": map[string][][]annotate.Segment{
			"sm": bio.SM.Annotate(),
			"md": bio.MD.Annotate(),
			"lg": bio.LG.Annotate(),
		},
		"Experience":   s.content.Experience,
		"SkillGroups":  s.content.SkillGroups(),
		"GridSkills":   s.content.GridSkills(),
		"Projects":     s.content.FeaturedProjects(),
		"Research":     s.content.FeaturedResearch(),
		"Achievements": s.content.FeaturedAchievements(),
		"Posts":        s.content.FeaturedPosts(),
		"GitHubYear":   github.LastYear,
	}))
}

func (s *server) handleProjects(c *gin.Context) {
	search := c.Query("q")
	category := c.DefaultQuery("category", "all")
	c.HTML(http.StatusOK, "projects.html", s.page(c, "Projects", gin.H{
		"Projects":   s.content.FilterProjects(search, category),
		"Total":      len(s.content.Projects),
		"Categories": s.content.ProjectCategories(),
		"Search":     search,
		"Category":   category,
	}))
}

func (s *server) handleBlog(c *gin.Context) {
	c.HTML(http.StatusOK, "blog.html", s.page(c, "Blog", gin.H{
		"Posts": s.content.PublishedPosts(),
	}))
}

func (s *server) handleProjectDetail(c *gin.Context) {
	p, err := s.content.ProjectByID(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "contact-error.html", gin.H{"error": "Project not found"})
		return
	}
	c.HTML(http.StatusOK, "project-detail.html", gin.H{"Project": p})
}

func (s *server) handleResearchDetail(c *gin.Context) {
	r, err := s.content.ResearchByID(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "contact-error.html", gin.H{"error": "Research not found"})
		return
	}
	c.HTML(http.StatusOK, "research-detail.html", gin.H{"Research": r})
}

func (s *server) handleGitHubContent(c *gin.Context) {
	opts := github.YearOptions(s.now())
	year := c.DefaultQuery("year", github.LastYear)
	if !validYear(opts, year) {
		year = github.LastYear
	}
	profile := s.content.Profile
	data := gin.H{
		"Profile":     profile,
		"YearOptions": opts,
		"GitHubYear":  year,
		"YearLabel":   github.LabelFor(opts, year),
		"Palette":     github.Palettes[theme.Name(themeFor(c).IsDark())],
	}

	if profile.GitHubUsername == "" {
		data["Error"] = "No GitHub username configured."
		c.HTML(http.StatusOK, "github-content.html", data)
		return
	}
	cal, err := s.github.Contributions(c.Request.Context(), profile.GitHubUsername, year)
	if err != nil {
		log.Printf("Error loading GitHub contributions for %s: %v", profile.GitHubUsername, err)
		data["Error"] = "Unable to load contributions right now."
		c.HTML(http.StatusOK, "github-content.html", data)
		return
	}
	data["Total"] = cal.Sum()
	data["Weeks"] = cal.Weeks()
	c.HTML(http.StatusOK, "github-content.html", data)
}

func validYear(opts []github.YearOption, year string) bool {
	for _, o := range opts {
		if o.Value == year {
			return true
		}
	}
	return false
}

func (s *server) handleThemeToggle(c *gin.Context) {
	if _, err := themeFor(c).Toggle(); err != nil {
		log.Printf("Error saving theme preference: %v", err)
	}
	c.Redirect(http.StatusSeeOther, localReferer(c))
}

// localReferer returns the path and query of the Referer when it points at
// this host, and "/" otherwise.
func localReferer(c *gin.Context) string {
	ref, err := url.Parse(c.GetHeader("Referer"))
	if err != nil || ref.Path == "" {
		return "/"
	}
	if ref.Host != "" && ref.Host != c.Request.Host {
		return "/"
	}
	if ref.Host == "" && (ref.Scheme != "" || !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "//")) {
		return "/"
	}
	back := ref.Path
	if ref.RawQuery != "" {
		back += "?" + ref.RawQuery
	}
	return back
}

// handleBio returns the annotated bio for ?size=sm|md|lg.
func (s *server) handleBio(c *gin.Context) {
	size := content.NormalizeSize(c.Query("size"))
	c.JSON(http.StatusOK, gin.H{
		"size":       size,
		"paragraphs": s.content.Profile.Bio.Variant(size).Annotate(),
	})
}

type navRequest struct {
	ViewportCenter float64      `json:"viewportCenter"`
	Sections       []nav.Bounds `json:"sections"`
}

func (s *server) handleNavActive(c *gin.Context) {
	var req navRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": nav.ClosestSection(req.ViewportCenter, req.Sections)})
}
