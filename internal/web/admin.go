package web

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminCookie    = "admin_token"
	adminPath      = "/admin"
	sessionIssuer  = "portfolio"
	submissionsCap = 200
)

// adminClaims identify an admin session.
type adminClaims struct {
	jwt.RegisteredClaims
}

func (s *Server) issueSession(username string) (string, error) {
	now := s.now()
	claims := adminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.SessionTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.sessionKey)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session")
	}
	return token, nil
}

func (s *Server) verifySession(token string) (*adminClaims, error) {
	if token == "" {
		return nil, errors.New("session token is empty")
	}
	claims := &adminClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.sessionKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Wrap(err, "invalid session")
	}
	if claims.Subject != s.cfg.AdminUsername {
		return nil, errors.New("session subject mismatch")
	}
	return claims, nil
}

// checkCredentials compares against the configured admin account. A bcrypt
// hash is accepted in place of the plain password.
func (s *Server) checkCredentials(username, password string) bool {
	if !s.cfg.AdminEnabled() {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.AdminUsername)) == 1
	want := s.cfg.AdminPassword
	var passOK bool
	if isBcrypt(want) {
		passOK = bcrypt.CompareHashAndPassword([]byte(want), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(want)) == 1
	}
	return userOK && passOK
}

func isBcrypt(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// Middleware to check admin authentication
func (s *Server) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		claims, err := s.verifySession(token)
		if err != nil {
			log.Printf("Rejected admin session from %s: %v", hashIP(c.ClientIP(), s.salt), err)
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Set("admin", claims.Subject)
		c.Next()
	}
}

func (s *Server) adminRoutes() {
	r := s.engine

	// Admin login page
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title":    "Admin Login",
			"disabled": !s.cfg.AdminEnabled(),
		})
	})

	// Admin login handler
	r.POST("/admin/login", s.limiter.Middleware(), func(c *gin.Context) {
		if !s.cfg.AdminEnabled() {
			c.HTML(http.StatusForbidden, "admin-login.html", gin.H{
				"title":    "Admin Login",
				"disabled": true,
			})
			return
		}

		username := c.PostForm("username")
		password := c.PostForm("password")
		if !s.checkCredentials(username, password) {
			log.Printf("Failed admin login attempt from %s", hashIP(c.ClientIP(), s.salt))
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"title": "Admin Login",
				"error": "Invalid credentials",
			})
			return
		}

		token, err := s.issueSession(username)
		if err != nil {
			log.Printf("Error issuing admin session: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to start session",
			})
			return
		}
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(adminCookie, token, int(s.cfg.SessionTTL/time.Second), adminPath, "", c.Request.TLS != nil, true)
		log.Printf("Admin login successful from %s", hashIP(c.ClientIP(), s.salt))
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	// Admin logout
	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, adminPath, "", c.Request.TLS != nil, true)
		log.Printf("Admin logout from %s", hashIP(c.ClientIP(), s.salt))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group(adminPath, s.adminAuth())

	// Admin dashboard
	admin.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context())
		if err != nil {
			log.Printf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats":     stats,
			"visits":    s.hub.Len(),
			"retention": s.cfg.VisitorRetention,
		})
	})

	// Contact submissions
	admin.GET("/submissions", func(c *gin.Context) {
		subs, err := s.store.ListSubmissions(c.Request.Context(), submissionsCap)
		if err != nil {
			log.Printf("Error loading submissions: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load submissions",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-submissions.html", gin.H{
			"submissions": subs,
		})
	})

	// Admin API endpoints for HTMX/AJAX
	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	// Admin statistics export (for backups or analysis)
	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		log.Printf("Admin stats exported by %s", hashIP(c.ClientIP(), s.salt))
		c.JSON(http.StatusOK, stats)
	})

	// Delete visitor rows past the retention window now
	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		n, err := s.store.CleanupVisitors(c.Request.Context(), s.now().Add(-s.cfg.VisitorRetention))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete", "deleted": n})
	})
}
