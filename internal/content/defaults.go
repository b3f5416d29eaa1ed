package content

// Default returns the built-in portfolio. Each call returns a fresh copy.
func Default() *Portfolio {
	return &Portfolio{
		Profile: Profile{
			Name:      "Zach Kordas-Potter",
			Role:      "Software Developer",
			Tagline:   "I build tools that are useful and fun, from the terminal to the browser.",
			Location:  "Minneapolis, MN",
			Email:     "zachkordaspotter@gmail.com",
			Avatar:    "/images/avatar.png",
			ResumeURL: "/images/resume.pdf",
			Ambient:   "/images/ambient.mp3",
			Roles:     []string{"Go Developer", "TUI Tinkerer", "Web Builder"},
			About: `I love building software that's both useful and fun, and I'm always curious about how things work behind the scenes.
Most of my projects start with a simple idea and turn into a chance to learn something new, whether it's exploring a
different language, experimenting with tools, or solving tricky problems.

When I'm not coding, you'll usually find me training **Muay Thai**, shooting pool with friends,
or chasing down a new challenge outside the screen.`,
			Socials: []SocialLink{
				{Label: "GitHub", URL: "https://github.com/Zachkp", Icon: "github"},
				{Label: "LinkedIn", URL: "https://www.linkedin.com/in/zachkp", Icon: "linkedin"},
				{Label: "Email", URL: "mailto:zachkordaspotter@gmail.com", Icon: "mail"},
			},
		},
		Education: []Education{
			{
				Degree:      "Bachelor of Computer Science",
				Institution: "Western Governors University",
				Start:       "Sept 2019",
				End:         "May 2023",
				Logo:        "/images/WGU-logo.png",
				Highlights: []string{
					"Graduated Magna Cum Laude with 3.8 GPA",
					"Relevant coursework: Data Structures, Algorithms, Web Development",
					"Senior project: Machine Learning recommendation system",
				},
			},
			{
				Degree:      "Project Management",
				Institution: "CompTIA",
				Start:       "July 2022",
				End:         "Present",
				Logo:        "/images/comptiaCert.png",
				Highlights: []string{
					"Certified in agile project management methodology",
				},
			},
		},
		Experience: []Experience{
			{
				Title:   "Presentation Expert",
				Company: "Target",
				Start:   "Aug 2023",
				End:     "Present",
				Logo:    "/images/TargetLogo.jpg",
				Highlights: []string{
					"Executed over 300 merchandising transitions on tight timelines by organizing team workflows",
					"Managed backroom inventory processes and streamlined communication between floor and logistics teams",
					"Standardized daily pricing and signage checks across departments",
				},
			},
			{
				Title:   "Manager",
				Company: "Jasons Catered Events",
				Start:   "Aug 2016",
				End:     "Present",
				Logo:    "/images/jasonsCateringLogo.png",
				Highlights: []string{
					"Coordinated customized menus so every dietary requirement was met",
					"Troubleshot AV equipment and ran digital order tracking for events",
					"Kept supply inventory and delivery between venues on schedule",
				},
			},
		},
		Projects: []Project{
			{
				Title:       "Terminal Mail",
				Description: "A terminal-based email client with fuzzy finding, built on the Charmbracelet TUI stack and `go-imap`.",
				Category:    "CLI",
				Tech:        []string{"Go", "Bubble Tea", "IMAP"},
				RepoURL:     "https://github.com/Zachkp/terminal-mail",
				Featured:    true,
			},
			{
				Title:       "Terminal Music",
				Description: "A TUI music streamer that drives `yt-dlp` and `mpv` for YouTube Music playback from the command line.",
				Category:    "CLI",
				Tech:        []string{"Go", "Bubble Tea", "mpv"},
				RepoURL:     "https://github.com/Zachkp/terminal-music",
			},
			{
				Title:       "Game Recommender",
				Description: "TF-IDF vectorization and cosine similarity recommend games from content analysis, with interactive charts and filtering by reviews and ratings.",
				Category:    "Data",
				Tech:        []string{"Python", "scikit-learn", "Plotly"},
				RepoURL:     "https://github.com/Zachkp/game-recommender",
			},
			{
				Title:       "This Portfolio",
				Description: "Server-rendered with Go and gin, sections lazy-loaded with HTMX, and backgrounds drawn procedurally on the server.",
				Category:    "Web",
				Tech:        []string{"Go", "gin", "HTMX", "Alpine.js"},
				RepoURL:     "https://github.com/Zachkp/neon-portfolio",
				LiveURL:     "https://zach.dev",
				Featured:    true,
			},
		},
		Skills: []SkillGroup{
			{Name: "Languages", Skills: []Skill{{"Go", 90}, {"Python", 75}, {"JavaScript", 70}, {"SQL", 70}}},
			{Name: "Web", Skills: []Skill{{"HTMX", 80}, {"Tailwind CSS", 75}, {"Alpine.js", 65}}},
			{Name: "Tools", Skills: []Skill{{"Git", 85}, {"Docker", 60}, {"Linux", 80}}},
		},
		Achievements: []Achievement{
			{Title: "Magna Cum Laude", Issuer: "Western Governors University", Year: "2023", Description: "Graduated with a 3.8 GPA."},
			{Title: "Project+ Certification", Issuer: "CompTIA", Year: "2022"},
		},
	}
}
