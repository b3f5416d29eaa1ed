// Package admin is the private dashboard: visitor statistics, received
// contact messages, and the privacy retention controls.
package admin

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/subtle"
	"embed"
	"encoding/hex"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/neon-portfolio/internal/config"
	"github.com/Zachkp/neon-portfolio/internal/storage"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	tokenCookie = "admin_token"
	tokenMaxAge = 24 * 60 * 60
)

// Store is the storage surface the dashboard reads. *storage.Store
// satisfies it.
type Store interface {
	Stats(ctx context.Context) (*storage.Stats, error)
	RecentMessages(ctx context.Context, limit int) ([]storage.Message, error)
	RecentVisitors(ctx context.Context, limit int) ([]storage.Visitor, error)
	PruneVisitors(ctx context.Context, before time.Time) (int64, error)
	HashIP(ip string) string
}

// Admin serves the /admin routes.
type Admin struct {
	store     Store
	creds     config.AdminConfig
	retention time.Duration
	token     string
	logger    *zap.Logger
	tmpl      *template.Template
	now       func() time.Time
}

// New prepares the admin area. A fresh session token is generated per
// process, so restarting the server logs every admin out.
func New(store Store, creds config.AdminConfig, retention time.Duration, logger *zap.Logger) (*Admin, error) {
	tmpl, err := template.New("admin").Funcs(template.FuncMap{
		"date": func(t time.Time) string { return t.Format("2006-01-02 15:04") },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse admin templates: %w", err)
	}
	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	return &Admin{
		store:     store,
		creds:     creds,
		retention: retention,
		token:     token,
		logger:    logger,
		tmpl:      tmpl,
		now:       time.Now,
	}, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate admin token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Register mounts the privacy page and the admin routes.
func (a *Admin) Register(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		a.html(c, http.StatusOK, "privacy", gin.H{"retention": a.retention})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		a.html(c, http.StatusOK, "login", nil)
	})
	r.POST("/admin/login", a.handleLogin)
	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(tokenCookie, "", -1, "/admin", "", false, true)
		a.logger.Info("admin logout", zap.String("client", a.store.HashIP(c.ClientIP())))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	g := r.Group("/admin")
	g.Use(a.requireAuth())
	g.GET("/dashboard", a.handleDashboard)
	g.GET("/api/stats", a.handleStatsJSON)
	g.GET("/export/stats", func(c *gin.Context) {
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		a.handleStatsJSON(c)
	})
	g.GET("/messages", a.handleMessages)
	g.GET("/visitors", a.handleVisitors)
	g.POST("/privacy/prune", a.handlePrune)
}

func (a *Admin) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(tokenCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (a *Admin) handleLogin(c *gin.Context) {
	user := c.PostForm("username")
	pass := c.PostForm("password")
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(a.creds.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(a.creds.Password)) == 1
	client := a.store.HashIP(c.ClientIP())

	if a.creds.Password == "" || !userOK || !passOK {
		a.logger.Warn("admin login failed", zap.String("client", client))
		a.html(c, http.StatusUnauthorized, "login", gin.H{"error": "Invalid credentials"})
		return
	}
	c.SetCookie(tokenCookie, a.token, tokenMaxAge, "/admin", "", c.Request.TLS != nil, true)
	a.logger.Info("admin login", zap.String("client", client))
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

func (a *Admin) handleDashboard(c *gin.Context) {
	stats, err := a.store.Stats(c.Request.Context())
	if err != nil {
		a.fail(c, "Failed to load statistics", err)
		return
	}
	a.html(c, http.StatusOK, "dashboard", gin.H{"stats": stats})
}

func (a *Admin) handleStatsJSON(c *gin.Context) {
	stats, err := a.store.Stats(c.Request.Context())
	if err != nil {
		a.logger.Error("admin stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (a *Admin) handleMessages(c *gin.Context) {
	msgs, err := a.store.RecentMessages(c.Request.Context(), 200)
	if err != nil {
		a.fail(c, "Failed to load messages", err)
		return
	}
	a.html(c, http.StatusOK, "messages", gin.H{"messages": msgs})
}

func (a *Admin) handleVisitors(c *gin.Context) {
	visitors, err := a.store.RecentVisitors(c.Request.Context(), 200)
	if err != nil {
		a.fail(c, "Failed to load visitors", err)
		return
	}
	a.html(c, http.StatusOK, "visitors", gin.H{"visitors": visitors})
}

func (a *Admin) handlePrune(c *gin.Context) {
	n, err := a.Prune(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "privacy cleanup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": n})
}

// Prune removes visitor rows older than the retention window.
func (a *Admin) Prune(ctx context.Context) (int64, error) {
	n, err := a.store.PruneVisitors(ctx, a.now().Add(-a.retention))
	if err != nil {
		a.logger.Error("privacy cleanup", zap.Error(err))
		return 0, err
	}
	if n > 0 {
		a.logger.Info("privacy cleanup", zap.Int64("removed", n), zap.Duration("retention", a.retention))
	}
	return n, nil
}

// RunRetention prunes once immediately and then every interval until ctx is
// done.
func (a *Admin) RunRetention(ctx context.Context, interval time.Duration) {
	_, _ = a.Prune(ctx)
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			_, _ = a.Prune(ctx)
		}
	}
}

func (a *Admin) fail(c *gin.Context, msg string, err error) {
	a.logger.Error(msg, zap.Error(err))
	a.html(c, http.StatusInternalServerError, "error", gin.H{"error": msg})
}

func (a *Admin) html(c *gin.Context, status int, name string, data any) {
	var buf bytes.Buffer
	if err := a.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		a.logger.Error("admin render", zap.String("template", name), zap.Error(err))
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
