package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/neon-portfolio/internal/backdrop"
	"github.com/Zachkp/neon-portfolio/internal/contact"
	"github.com/Zachkp/neon-portfolio/internal/content"
	"github.com/Zachkp/neon-portfolio/internal/prefs"
)

const htmlContentType = "text/html; charset=utf-8"

func (s *Server) handlePage(c *gin.Context) {
	body, err := s.renderPage(s.preferences(c))
	if err != nil {
		s.logger.Error("page render failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "Something went wrong rendering this page.")
		return
	}
	c.Data(http.StatusOK, htmlContentType, body)
}

func (s *Server) handleSection(c *gin.Context) {
	sec, ok := content.SectionByID(c.Param("id"))
	if !ok {
		s.executeFragment(c, http.StatusNotFound, "section-missing", c.Param("id"))
		return
	}
	p := s.content.Get()
	data := s.newSectionData(p, sec, s.preferences(c))
	if raw := c.Query("tab"); raw != "" {
		tab, err := strconv.Atoi(raw)
		if err != nil {
			tab = 0
		}
		data.SkillTab = prefs.SelectTab(tab, len(p.Skills))
		data.ProjectTab = prefs.SelectTab(tab, len(data.ProjectTabs))
	}
	c.Data(http.StatusOK, htmlContentType, []byte(s.renderSection(data)))
}

func (s *Server) handleContact(c *gin.Context) {
	var form contact.Form
	bindErr := c.ShouldBind(&form)
	if bindErr == nil || form.Website != "" {
		_, bindErr = s.contact.Submit(c.Request.Context(), form)
	}

	switch {
	case bindErr == nil, errors.Is(bindErr, contact.ErrSpam):
		s.executeFragment(c, http.StatusOK, "contact-success", nil)

	case contact.FieldErrors(bindErr) != nil:
		p := s.content.Get()
		sec, _ := content.SectionByID("contact")
		data := s.newSectionData(p, sec, s.preferences(c))
		data.Contact.Errors = contact.FieldErrors(bindErr)
		data.Contact.Form = map[string]string{
			"fullName": form.Name,
			"email":    form.Email,
			"message":  form.Message,
		}
		c.Data(http.StatusOK, htmlContentType, []byte(s.renderSection(data)))

	case errors.Is(bindErr, context.Canceled):
		s.logger.Debug("contact submission abandoned by client")
		c.Status(http.StatusNoContent)

	default:
		s.logger.Error("contact submission failed", zap.Error(bindErr))
		s.executeFragment(c, http.StatusOK, "contact-error", nil)
	}
}

func (s *Server) handleTheme(c *gin.Context) {
	pr := s.preferences(c)
	if raw := c.PostForm("theme"); raw != "" {
		th, ok := prefs.ParseTheme(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown theme %q", raw)})
			return
		}
		pr.Theme = th
	} else {
		pr.Theme = pr.Theme.Next()
	}
	pr.Write(c.Writer)
	c.JSON(http.StatusOK, gin.H{
		"theme":     pr.Theme,
		"next":      pr.Theme.Next(),
		"backdrops": s.backdropURLs(pr.Theme),
	})
}

func (s *Server) handleAudio(c *gin.Context) {
	pr := s.preferences(c)
	switch c.PostForm("action") {
	case "mute":
		pr.Audio = pr.Audio.ToggleMute()
	case "play":
		pr.Audio = pr.Audio.TogglePlay()
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "action must be mute or play"})
		return
	}
	pr.Write(c.Writer)
	c.JSON(http.StatusOK, pr.Audio)
}

type audioFailure struct {
	Message string `json:"message"`
	Source  string `json:"source"`
}

// handleAudioError receives playback failures reported by the browser. They
// are only logged; the visitor never sees them.
func (s *Server) handleAudioError(c *gin.Context) {
	var report audioFailure
	_ = c.ShouldBindJSON(&report)
	s.logger.Warn("audio playback failed",
		zap.String("message", truncate(report.Message, 200)),
		zap.String("source", truncate(report.Source, 200)),
		zap.String("user_agent", c.Request.UserAgent()))
	c.Status(http.StatusNoContent)
}

func (s *Server) handleBackdrop(c *gin.Context) {
	scene, theme, err := ParseBackdropFile(c.Param("file"))
	if err != nil {
		c.String(http.StatusNotFound, err.Error())
		return
	}
	opts, err := backdropQuery(c, BackdropOptions(theme))
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	var buf bytes.Buffer
	if err := backdrop.Render(&buf, scene, opts); err != nil {
		s.logger.Error("backdrop render failed", zap.String("scene", string(scene)), zap.Error(err))
		c.String(http.StatusInternalServerError, "backdrop unavailable")
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) handleNotFound(c *gin.Context) {
	if c.Request.Method != http.MethodGet || strings.HasPrefix(c.Request.URL.Path, "/prefs/") {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	s.executeFragment(c, http.StatusNotFound, "not-found", c.Request.URL.Path)
}

func (s *Server) executeFragment(c *gin.Context, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("fragment render failed", zap.String("template", name), zap.Error(err))
		c.String(http.StatusInternalServerError, "Something went wrong.")
		return
	}
	c.Data(status, htmlContentType, buf.Bytes())
}

func (s *Server) backdropURLs(theme prefs.Theme) map[string]string {
	out := make(map[string]string, len(backdrop.Scenes))
	for _, scene := range backdrop.Scenes {
		out[string(scene)] = "/backdrop/" + BackdropFile(scene, theme)
	}
	return out
}

// BackdropOptions are the frame settings used for a theme's backdrops.
func BackdropOptions(theme prefs.Theme) backdrop.Options {
	opts := backdrop.DefaultOptions()
	opts.Palette = backdrop.PaletteFor(string(theme))
	return opts
}

// ParseBackdropFile splits "<scene>-<theme>.png".
func ParseBackdropFile(file string) (backdrop.Scene, prefs.Theme, error) {
	name, ok := strings.CutSuffix(file, ".png")
	if !ok {
		return "", "", fmt.Errorf("backdrop %q: expected .png", file)
	}
	i := strings.LastIndex(name, "-")
	if i < 0 {
		return "", "", fmt.Errorf("backdrop %q: expected <scene>-<theme>.png", file)
	}
	scene, err := backdrop.ParseScene(name[:i])
	if err != nil {
		return "", "", err
	}
	theme, ok := prefs.ParseTheme(name[i+1:])
	if !ok {
		return "", "", fmt.Errorf("backdrop %q: unknown theme %q", file, name[i+1:])
	}
	return scene, theme, nil
}

func backdropQuery(c *gin.Context, opts backdrop.Options) (backdrop.Options, error) {
	if v := c.Query("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid seed %q", v)
		}
		opts.Seed = seed
	}
	if v := c.Query("t"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid t %q", v)
		}
		opts.Time = t
	}
	ints := []struct {
		key string
		dst *int
	}{{"w", &opts.Width}, {"h", &opts.Height}, {"count", &opts.Count}}
	for _, q := range ints {
		v := c.Query(q.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("invalid %s %q", q.key, v)
		}
		*q.dst = n
	}
	return opts, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
