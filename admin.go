// admin.go - privacy-conscious visitor tracking and the admin dashboard
package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SohamRatnaparkhi/developer-minimal-portfolio/internal/store"
)

const (
	adminCookie = "admin_token"

	// Visits older than this many months are deleted.
	retentionMonths = 12

	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

func (s *server) initAdminToken() {
	s.adminToken = generateAdminToken()
	s.hashingSalt = generateAdminToken() // Use for IP hashing

	log.Printf("Admin access available at: /admin/login")
	if gin.Mode() == gin.DebugMode {
		log.Printf("Admin token (dev only): %s", s.adminToken)
	}
	log.Println("Privacy: Visitor tracking enabled with hashed IP addresses")
}

func generateAdminToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal("Failed to generate admin token:", err)
	}
	return hex.EncodeToString(bytes)
}

// hashIP returns a salted, truncated hash that is stable per IP for the
// lifetime of the process.
func (s *server) hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + s.hashingSalt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

// adminCredentials returns the configured login. Without a configured
// password the development defaults apply in debug mode only.
func (s *server) adminCredentials() (username, password string, ok bool) {
	username, password = s.cfg.Admin.Username, s.cfg.Admin.Password
	if username == "" {
		username = defaultAdminUsername
	}
	if password != "" {
		return username, password, true
	}
	if gin.Mode() != gin.DebugMode {
		return "", "", false
	}
	log.Println("WARNING: Using default admin password. Set PORTFOLIO_ADMIN__PASSWORD.")
	return username, defaultAdminPassword, true
}

func (s *server) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func untrackedPath(path string) bool {
	for _, prefix := range []string{"/static/", "/images/", "/admin", "/api/", "/favicon", "/privacy", "/theme/"} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (s *server) visitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if untrackedPath(path) || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		v := store.Visitor{
			HashedIP:  s.hashIP(c.ClientIP()),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      path,
			Timestamp: s.now(),
		}
		s.track(func() {
			if err := s.db.RecordVisit(context.Background(), v); err != nil {
				log.Printf("Error recording visitor: %v", err)
			}
		})
		c.Next()
	}
}

func (s *server) cleanupOldVisitorData() {
	cutoff := s.now().AddDate(0, -retentionMonths, 0)
	n, err := s.db.CleanupVisitors(context.Background(), cutoff)
	if err != nil {
		log.Printf("Error cleaning up old visitor data: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Privacy cleanup: Removed %d visitor records older than %d months", n, retentionMonths)
	}
}

func (s *server) setupAdminRoutes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", s.page(c, "Privacy Policy", nil))
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		username, password, ok := s.adminCredentials()
		if !ok {
			c.HTML(http.StatusServiceUnavailable, "admin-login.html", gin.H{
				"error": "Admin login is not configured",
			})
			return
		}

		userOK := subtle.ConstantTimeCompare([]byte(c.PostForm("username")), []byte(username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(c.PostForm("password")), []byte(password)) == 1
		if !userOK || !passOK {
			log.Printf("Failed admin login attempt from %s", s.hashIP(c.ClientIP()))
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"error": "Invalid credentials",
			})
			return
		}

		c.SetCookie(adminCookie, s.adminToken, 3600*24, "/admin", "", false, true)
		log.Printf("Admin login successful from %s", s.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		log.Printf("Admin logout from %s", s.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	adminGroup := r.Group("/admin")
	adminGroup.Use(s.adminAuthMiddleware())

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.db.Stats(c.Request.Context(), s.now())
		if err != nil {
			log.Printf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats": stats,
		})
	})

	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.db.Stats(c.Request.Context(), s.now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	adminGroup.GET("/visitors", func(c *gin.Context) {
		visitors, err := s.db.RecentVisitors(c.Request.Context(), 200)
		if err != nil {
			log.Printf("Error loading visitors: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"visitors": visitors,
		})
	})

	adminGroup.GET("/messages", func(c *gin.Context) {
		messages, err := s.db.RecentMessages(c.Request.Context(), 200)
		if err != nil {
			log.Printf("Error loading contact messages: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load messages",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-messages.html", gin.H{
			"messages": messages,
		})
	})

	adminGroup.POST("/privacy/cleanup", func(c *gin.Context) {
		go s.cleanupOldVisitorData()
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup initiated"})
	})

	adminGroup.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.db.Stats(c.Request.Context(), s.now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		log.Printf("Admin stats exported by %s", s.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}
