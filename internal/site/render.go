package site

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Zachkp/neon-portfolio/internal/backdrop"
	"github.com/Zachkp/neon-portfolio/internal/content"
	"github.com/Zachkp/neon-portfolio/internal/prefs"
)

// sectionData is handed to every section template.
type sectionData struct {
	Portfolio   *content.Portfolio
	Section     content.Section
	Prefs       prefs.Preferences
	Static      bool
	SkillTab    int
	ProjectTab  int
	ProjectTabs []projectTab
	Contact     contactState
	Year        int
}

type projectTab struct {
	Category string
	Projects []content.Project
}

// contactState carries a re-rendered form after a failed submission.
type contactState struct {
	Form    map[string]string
	Errors  map[string]string
	DelayMS int64
}

type renderedSection struct {
	Section content.Section
	HTML    template.HTML
	Lazy    bool
}

type pageData struct {
	Portfolio *content.Portfolio
	Nav       []content.Section
	Sections  []renderedSection
	Prefs     prefs.Preferences
	NextTheme prefs.Theme
	Static    bool
	SiteURL   string
	Backdrops []backdropLayer
	Year      int
}

type backdropLayer struct {
	Scene string
	URL   string
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"markdown": content.RenderMarkdown,
		"lower":    strings.ToLower,
		"add":      func(a, b int) int { return a + b },
		"initials": func(name string) string {
			var b strings.Builder
			for _, f := range strings.Fields(name) {
				r, _ := utf8.DecodeRuneInString(f)
				b.WriteString(strings.ToUpper(string(r)))
			}
			return b.String()
		},
	}
}

// BackdropFile is the file name used for a scene in a theme, both as the
// /backdrop route parameter and as the exported file.
func BackdropFile(scene backdrop.Scene, theme prefs.Theme) string {
	return fmt.Sprintf("%s-%s.png", scene, theme)
}

func (s *Server) newSectionData(p *content.Portfolio, sec content.Section, pr prefs.Preferences) sectionData {
	cats := p.ProjectCategories()
	tabs := make([]projectTab, 0, len(cats))
	for _, cat := range cats {
		tabs = append(tabs, projectTab{Category: cat, Projects: p.FilterProjects(cat)})
	}
	return sectionData{
		Portfolio:   p,
		Section:     sec,
		Prefs:       pr,
		Static:      s.opts.StaticMode,
		ProjectTabs: tabs,
		Contact:     contactState{DelayMS: s.opts.ContactDelay.Milliseconds()},
		Year:        s.now().Year(),
	}
}

// renderSection executes one section template. A failure is logged and
// replaced by the fallback fragment so one broken section never takes the
// page down with it.
func (s *Server) renderSection(data sectionData) template.HTML {
	var buf bytes.Buffer
	err := s.tmpl.ExecuteTemplate(&buf, "section-"+data.Section.ID, data)
	if err == nil {
		return template.HTML(buf.String())
	}
	s.logger.Error("section render failed", zap.String("section", data.Section.ID), zap.Error(err))
	buf.Reset()
	if err := s.tmpl.ExecuteTemplate(&buf, "section-fallback", data.Section); err != nil {
		s.logger.Error("fallback render failed", zap.String("section", data.Section.ID), zap.Error(err))
		return template.HTML(`<section class="section-fallback">This section could not be loaded.</section>`)
	}
	return template.HTML(buf.String())
}

// renderPage builds the full single page. Lazy sections are left as
// placeholders unless rendering for static output.
func (s *Server) renderPage(pr prefs.Preferences) ([]byte, error) {
	p := s.content.Get()
	data := pageData{
		Portfolio: p,
		Nav:       content.NavSections(),
		Prefs:     pr,
		NextTheme: pr.Theme.Next(),
		Static:    s.opts.StaticMode,
		SiteURL:   s.opts.SiteURL,
		Year:      s.now().Year(),
	}
	for _, scene := range backdrop.Scenes {
		data.Backdrops = append(data.Backdrops, backdropLayer{
			Scene: string(scene),
			URL:   "/backdrop/" + BackdropFile(scene, pr.Theme),
		})
	}
	for _, sec := range content.Sections {
		rs := renderedSection{Section: sec}
		if sec.Lazy && !s.opts.StaticMode {
			rs.Lazy = true
		} else {
			rs.HTML = s.renderSection(s.newSectionData(p, sec, pr))
		}
		data.Sections = append(data.Sections, rs)
	}

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "page", data); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPage renders the page for the default preferences. Export uses it.
func (s *Server) RenderPage() ([]byte, error) {
	return s.renderPage(prefs.Default())
}

// RenderSection renders a single section fragment for the default
// preferences.
func (s *Server) RenderSection(id string) ([]byte, error) {
	sec, ok := content.SectionByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSectionNotFound, id)
	}
	return []byte(s.renderSection(s.newSectionData(s.content.Get(), sec, prefs.Default()))), nil
}
