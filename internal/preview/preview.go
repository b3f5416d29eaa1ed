// Package preview renders the portfolio for a terminal, which is handy for
// checking a content file before deploying it.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/Zachkp/neon-portfolio/internal/content"
)

// Markdown flattens the portfolio into one markdown document in page order.
func Markdown(p *content.Portfolio) string {
	var b strings.Builder
	pr := p.Profile

	fmt.Fprintf(&b, "# %s\n\n", pr.Name)
	if pr.Role != "" {
		fmt.Fprintf(&b, "**%s**", pr.Role)
		if pr.Location != "" {
			fmt.Fprintf(&b, " · %s", pr.Location)
		}
		b.WriteString("\n\n")
	}
	if pr.Tagline != "" {
		fmt.Fprintf(&b, "> %s\n\n", pr.Tagline)
	}
	if pr.About != "" {
		fmt.Fprintf(&b, "## About\n\n%s\n\n", strings.TrimSpace(pr.About))
	}

	if len(p.Education) > 0 {
		b.WriteString("## Education\n\n")
		for _, e := range p.Education {
			fmt.Fprintf(&b, "### %s\n*%s · %s – %s*\n\n", e.Degree, e.Institution, e.Start, e.End)
			writeBullets(&b, e.Highlights)
		}
	}

	if len(p.Experience) > 0 {
		b.WriteString("## Experience\n\n")
		for _, e := range p.Experience {
			fmt.Fprintf(&b, "### %s\n*%s · %s – %s*\n\n", e.Title, e.Company, e.Start, e.End)
			writeBullets(&b, e.Highlights)
		}
	}

	if len(p.Projects) > 0 {
		b.WriteString("## Projects\n\n")
		for _, pj := range p.FilterProjects(content.AllCategory) {
			star := ""
			if pj.Featured {
				star = " ★"
			}
			fmt.Fprintf(&b, "### %s%s\n%s\n\n", pj.Title, star, strings.TrimSpace(pj.Description))
			if len(pj.Tech) > 0 {
				fmt.Fprintf(&b, "`%s`\n\n", strings.Join(pj.Tech, "` `"))
			}
			if pj.RepoURL != "" {
				fmt.Fprintf(&b, "Code: %s\n\n", pj.RepoURL)
			}
		}
	}

	if len(p.Skills) > 0 {
		b.WriteString("## Skills\n\n| Group | Skill | Level |\n|---|---|---|\n")
		for _, g := range p.Skills {
			for _, s := range g.Skills {
				fmt.Fprintf(&b, "| %s | %s | %s |\n", g.Name, s.Name, bar(s.Level))
			}
		}
		b.WriteString("\n")
	}

	if len(p.Achievements) > 0 {
		b.WriteString("## Achievements\n\n")
		for _, a := range p.Achievements {
			line := "**" + a.Title + "**"
			if a.Issuer != "" {
				line += " — " + a.Issuer
			}
			if a.Year != "" {
				line += " (" + a.Year + ")"
			}
			if a.Description != "" {
				line += ": " + a.Description
			}
			fmt.Fprintf(&b, "- %s\n", line)
		}
		b.WriteString("\n")
	}

	if pr.Email != "" || len(pr.Socials) > 0 {
		b.WriteString("## Contact\n\n")
		if pr.Email != "" {
			fmt.Fprintf(&b, "- Email: %s\n", pr.Email)
		}
		for _, s := range pr.Socials {
			fmt.Fprintf(&b, "- %s: %s\n", s.Label, s.URL)
		}
	}
	return b.String()
}

// Render styles the markdown for a terminal of the given width.
func Render(p *content.Portfolio, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("preview renderer: %w", err)
	}
	out, err := r.Render(Markdown(p))
	if err != nil {
		return "", fmt.Errorf("preview render: %w", err)
	}
	return out, nil
}

func writeBullets(b *strings.Builder, items []string) {
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
	if len(items) > 0 {
		b.WriteString("\n")
	}
}

func bar(level int) string {
	level = max(0, min(level, 100))
	filled := level / 10
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled) + fmt.Sprintf(" %d%%", level)
}
