package content

// Section is one anchor on the single page.
type Section struct {
	ID    string
	Label string
	// Lazy sections are fetched as fragments after first paint.
	Lazy bool
	// Nav sections appear in the header navigation.
	Nav bool
}

// Sections is the fixed top-to-bottom page order.
var Sections = []Section{
	{ID: "header", Label: "Header"},
	{ID: "hero", Label: "Home", Nav: true},
	{ID: "about", Label: "About", Nav: true},
	{ID: "education", Label: "Education", Nav: true, Lazy: true},
	{ID: "experience", Label: "Experience", Nav: true, Lazy: true},
	{ID: "projects", Label: "Projects", Nav: true, Lazy: true},
	{ID: "skills", Label: "Skills", Nav: true, Lazy: true},
	{ID: "achievements", Label: "Achievements", Nav: true, Lazy: true},
	{ID: "contact", Label: "Contact", Nav: true, Lazy: true},
	{ID: "footer", Label: "Footer"},
}

// SectionByID looks a section up by its anchor id.
func SectionByID(id string) (Section, bool) {
	for _, s := range Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// NavSections returns the sections linked from the header.
func NavSections() []Section {
	var out []Section
	for _, s := range Sections {
		if s.Nav {
			out = append(out, s)
		}
	}
	return out
}
