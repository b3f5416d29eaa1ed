// Package content holds the typed portfolio data rendered by the site: the
// biography, education, experience, projects, skills, and achievements.
//
// Entries have no identity beyond their position in the owning slice.
package content

import (
	"errors"
	"fmt"
	"net/mail"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure returned by Validate.
var ErrInvalid = errors.New("invalid portfolio content")

// Portfolio is everything the page displays.
type Portfolio struct {
	Profile      Profile       `yaml:"profile"`
	Education    []Education   `yaml:"education"`
	Experience   []Experience  `yaml:"experience"`
	Projects     []Project     `yaml:"projects"`
	Skills       []SkillGroup  `yaml:"skills"`
	Achievements []Achievement `yaml:"achievements"`
}

// Profile is the hero and about section data.
type Profile struct {
	Name      string       `yaml:"name"`
	Role      string       `yaml:"role"`
	Tagline   string       `yaml:"tagline"`
	Location  string       `yaml:"location"`
	Email     string       `yaml:"email"`
	Avatar    string       `yaml:"avatar"`
	ResumeURL string       `yaml:"resume_url"`
	About     string       `yaml:"about"` // markdown
	Roles     []string     `yaml:"roles"` // cycled by the hero typewriter
	Ambient   string       `yaml:"ambient_audio"`
	Socials   []SocialLink `yaml:"socials"`
}

// SocialLink is a footer/header icon link.
type SocialLink struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
	Icon  string `yaml:"icon"`
}

// Education is one degree or certification.
type Education struct {
	Degree      string   `yaml:"degree"`
	Institution string   `yaml:"institution"`
	Start       string   `yaml:"start"`
	End         string   `yaml:"end"`
	Logo        string   `yaml:"logo"`
	Highlights  []string `yaml:"highlights"`
}

// Experience is one position held.
type Experience struct {
	Title      string   `yaml:"title"`
	Company    string   `yaml:"company"`
	Start      string   `yaml:"start"`
	End        string   `yaml:"end"`
	Logo       string   `yaml:"logo"`
	Highlights []string `yaml:"highlights"`
}

// Project is a showcased project card.
type Project struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"` // markdown
	Category    string   `yaml:"category"`
	Tech        []string `yaml:"tech"`
	RepoURL     string   `yaml:"repo_url"`
	LiveURL     string   `yaml:"live_url"`
	Image       string   `yaml:"image"`
	Featured    bool     `yaml:"featured"`
}

// SkillGroup is one tab of the skills section.
type SkillGroup struct {
	Name   string  `yaml:"name"`
	Skills []Skill `yaml:"skills"`
}

// Skill is a labelled proficiency bar; Level is a percentage.
type Skill struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
}

// Achievement is an award, certification, or milestone.
type Achievement struct {
	Title       string `yaml:"title"`
	Issuer      string `yaml:"issuer"`
	Year        string `yaml:"year"`
	Description string `yaml:"description"`
}

// Load reads a YAML portfolio file. The file replaces the built-in content
// wholesale; lists it omits render as empty sections.
func Load(path string) (*Portfolio, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML portfolio content.
func Parse(data []byte) (*Portfolio, error) {
	var p Portfolio
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate reports every problem found, joined into one error that matches
// ErrInvalid.
func (p *Portfolio) Validate() error {
	var errs []error
	if strings.TrimSpace(p.Profile.Name) == "" {
		errs = append(errs, errors.New("profile.name is required"))
	}
	if p.Profile.Email != "" {
		if _, err := mail.ParseAddress(p.Profile.Email); err != nil {
			errs = append(errs, fmt.Errorf("profile.email %q is not an address", p.Profile.Email))
		}
	}
	for i, e := range p.Education {
		if e.Degree == "" || e.Institution == "" {
			errs = append(errs, fmt.Errorf("education[%d]: degree and institution are required", i))
		}
	}
	for i, e := range p.Experience {
		if e.Title == "" || e.Company == "" {
			errs = append(errs, fmt.Errorf("experience[%d]: title and company are required", i))
		}
	}
	for i, pr := range p.Projects {
		if pr.Title == "" {
			errs = append(errs, fmt.Errorf("projects[%d]: title is required", i))
		}
	}
	for i, g := range p.Skills {
		if g.Name == "" {
			errs = append(errs, fmt.Errorf("skills[%d]: name is required", i))
		}
		for j, s := range g.Skills {
			if s.Level < 0 || s.Level > 100 {
				errs = append(errs, fmt.Errorf("skills[%d].skills[%d]: level %d outside 0-100", i, j, s.Level))
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// AllCategory selects every project in FilterProjects.
const AllCategory = "All"

// ProjectCategories lists the project filter tabs: AllCategory first, then
// each distinct category in sorted order.
func (p *Portfolio) ProjectCategories() []string {
	seen := map[string]bool{}
	var cats []string
	for _, pr := range p.Projects {
		if pr.Category == "" || seen[pr.Category] {
			continue
		}
		seen[pr.Category] = true
		cats = append(cats, pr.Category)
	}
	sort.Strings(cats)
	return append([]string{AllCategory}, cats...)
}

// FilterProjects returns the projects in category, featured ones first,
// otherwise in declaration order.
func (p *Portfolio) FilterProjects(category string) []Project {
	var out []Project
	for _, pr := range p.Projects {
		if category == "" || category == AllCategory || pr.Category == category {
			out = append(out, pr)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Featured && !out[j].Featured
	})
	return out
}
