// Package site is the browser-facing HTTP surface: the single page, its
// lazily-loaded section fragments, preference toggles, the contact form, and
// the generated backdrops.
package site

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/neon-portfolio/internal/contact"
	"github.com/Zachkp/neon-portfolio/internal/content"
	"github.com/Zachkp/neon-portfolio/internal/prefs"
	"github.com/Zachkp/neon-portfolio/internal/storage"
)

// ErrSectionNotFound is returned for section ids that are not on the page.
var ErrSectionNotFound = errors.New("section not found")

// VisitRecorder stores page views. *storage.Store satisfies it.
type VisitRecorder interface {
	RecordVisit(ctx context.Context, v storage.Visit) error
}

// Options tune how pages are rendered.
type Options struct {
	// StaticMode renders every section inline and makes the contact form
	// simulate its delay in the browser, for output with no server.
	StaticMode bool
	// ContactDelay is the simulated delay used in static mode.
	ContactDelay time.Duration
	SiteURL      string
	// ImagesDir is served at /images when it exists.
	ImagesDir string
}

// Server renders the portfolio.
type Server struct {
	content *content.Store
	contact *contact.Service
	visits  VisitRecorder
	logger  *zap.Logger
	opts    Options
	tmpl    *template.Template
	now     func() time.Time

	tracking sync.WaitGroup
}

// New parses the embedded templates. visits may be nil to disable tracking.
func New(store *content.Store, svc *contact.Service, visits VisitRecorder, logger *zap.Logger, opts Options) (*Server, error) {
	tmpl, err := template.New("site").Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Server{
		content: store,
		contact: svc,
		visits:  visits,
		logger:  logger,
		opts:    opts,
		tmpl:    tmpl,
		now:     time.Now,
	}, nil
}

// Register mounts every public route on r.
func (s *Server) Register(r *gin.Engine) {
	r.Use(s.trackVisits())

	r.StaticFS("/static", http.FS(Assets()))
	if s.opts.ImagesDir != "" {
		if info, err := os.Stat(s.opts.ImagesDir); err == nil && info.IsDir() {
			r.Static("/images", s.opts.ImagesDir)
		}
	}

	r.GET("/", s.handlePage)
	r.GET("/sections/:id", s.handleSection)
	r.POST("/contact", s.handleContact)
	r.POST("/prefs/theme", s.handleTheme)
	r.POST("/prefs/audio", s.handleAudio)
	r.POST("/prefs/audio/error", s.handleAudioError)
	r.GET("/backdrop/:file", s.handleBackdrop)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.NoRoute(s.handleNotFound)
}

// Engine builds a gin engine with logging, recovery, and the public routes.
func (s *Server) Engine() *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(s.logger), Recovery(s.logger))
	s.Register(r)
	return r
}

func (s *Server) preferences(c *gin.Context) prefs.Preferences {
	return prefs.FromRequest(c.Request)
}
