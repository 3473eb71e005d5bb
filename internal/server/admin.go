package server

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	adminCookie      = "admin_token"
	defaultAdminUser = "admin"
	defaultAdminPass = "admin123"
)

// Admin holds the dashboard credentials and the per-process secrets used
// for the session token and IP hashing.
type Admin struct {
	username  string
	password  string
	token     string
	salt      string
	retention time.Duration
	log       *zap.Logger
}

// NewAdmin falls back to development credentials when username or password
// is empty. Visitor rows older than retention are removed by Cleanup.
func NewAdmin(username, password string, retention time.Duration, log *zap.Logger) (*Admin, error) {
	if log == nil {
		log = zap.NewNop()
	}
	token, err := randomHex()
	if err != nil {
		return nil, fmt.Errorf("generate admin token: %w", err)
	}
	salt, err := randomHex()
	if err != nil {
		return nil, fmt.Errorf("generate hashing salt: %w", err)
	}

	if username == "" {
		username = defaultAdminUser
		log.Warn("using default admin username, set ADMIN_USERNAME")
	}
	if password == "" {
		password = defaultAdminPass
		log.Warn("using default admin password, set ADMIN_PASSWORD")
	}

	log.Info("admin access available", zap.String("path", "/admin/login"))
	if gin.Mode() == gin.DebugMode {
		log.Debug("admin token (dev only)", zap.String("token", token))
	}
	return &Admin{
		username:  username,
		password:  password,
		token:     token,
		salt:      salt,
		retention: retention,
		log:       log,
	}, nil
}

func randomHex() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashIP returns a truncated salted hash, stable for the life of the process.
func (a *Admin) HashIP(ip string) string {
	h := sha256.Sum256([]byte(ip + a.salt))
	return hex.EncodeToString(h[:])[:16]
}

func (a *Admin) valid(username, password string) bool {
	u := subtle.ConstantTimeCompare([]byte(username), []byte(a.username))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(a.password))
	return u&p == 1
}

// Middleware to check admin authentication
func (a *Admin) auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (d *Deps) setupAdminRoutes(r *gin.Engine) {
	a := d.Admin

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		if !a.valid(c.PostForm("username"), c.PostForm("password")) {
			d.Log.Warn("failed admin login", zap.String("from", a.HashIP(c.ClientIP())))
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"title": "Admin Login",
				"error": "Invalid credentials",
			})
			return
		}
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(adminCookie, a.token, 3600*24, "/admin", "", d.SecureCookies, true)
		d.Log.Info("admin login", zap.String("from", a.HashIP(c.ClientIP())))
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", d.SecureCookies, true)
		d.Log.Info("admin logout", zap.String("from", a.HashIP(c.ClientIP())))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	g := r.Group("/admin")
	g.Use(a.auth())

	g.GET("/dashboard", func(c *gin.Context) {
		stats, err := d.Store.AdminStats(c.Request.Context(), d.Now())
		if err != nil {
			d.Log.Error("loading admin stats", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats":    stats,
			"sessions": d.Sessions.Len(),
		})
	})

	// JSON endpoints for HTMX refreshes and exports
	g.GET("/api/stats", func(c *gin.Context) {
		stats, err := d.Store.AdminStats(c.Request.Context(), d.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	g.GET("/export/stats", func(c *gin.Context) {
		stats, err := d.Store.AdminStats(c.Request.Context(), d.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		d.Log.Info("admin stats exported", zap.String("by", a.HashIP(c.ClientIP())))
		c.JSON(http.StatusOK, stats)
	})

	g.GET("/visitors", func(c *gin.Context) {
		visitors, err := d.Store.RecentVisitors(c.Request.Context(), 200)
		if err != nil {
			d.Log.Error("loading visitors", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{"visitors": visitors})
	})

	g.GET("/messages", func(c *gin.Context) {
		messages, err := d.Store.Messages(c.Request.Context(), 200)
		if err != nil {
			d.Log.Error("loading messages", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load messages",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-messages.html", gin.H{"messages": messages})
	})

	g.POST("/privacy/delete-visitor-data", func(c *gin.Context) {
		n, err := d.Cleanup(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Privacy cleanup failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete", "removed": n})
	})
}
