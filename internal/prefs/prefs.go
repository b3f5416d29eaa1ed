// Package prefs holds the visitor's UI toggles (theme and background audio)
// and persists them in cookies so a reload keeps the same state.
package prefs

import (
	"net/http"
	"strconv"
)

// Theme is the page colour scheme.
type Theme string

const (
	ThemeDark      Theme = "dark"
	ThemeLight     Theme = "light"
	ThemeCyberpunk Theme = "cyberpunk"

	DefaultTheme = ThemeDark
)

// Themes lists every theme in toggle order.
var Themes = []Theme{ThemeDark, ThemeLight, ThemeCyberpunk}

// ParseTheme returns the named theme, or DefaultTheme with ok=false.
func ParseTheme(s string) (Theme, bool) {
	for _, t := range Themes {
		if string(t) == s {
			return t, true
		}
	}
	return DefaultTheme, false
}

// Next is the theme the toggle switches to.
func (t Theme) Next() Theme {
	for i, th := range Themes {
		if th == t {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return DefaultTheme
}

// Audio is the background music toggle. Audio starts muted and stopped.
type Audio struct {
	Muted   bool `json:"muted"`
	Playing bool `json:"playing"`
}

// DefaultAudio is the state for a first visit.
var DefaultAudio = Audio{Muted: true, Playing: false}

// ToggleMute flips Muted. Muting also stops playback.
func (a Audio) ToggleMute() Audio {
	a.Muted = !a.Muted
	if a.Muted {
		a.Playing = false
	}
	return a
}

// TogglePlay flips Playing. Starting playback unmutes.
func (a Audio) TogglePlay() Audio {
	a.Playing = !a.Playing
	if a.Playing {
		a.Muted = false
	}
	return a
}

// Preferences is everything persisted for a visitor.
type Preferences struct {
	Theme Theme `json:"theme"`
	Audio Audio `json:"audio"`
}

// Default returns the first-visit preferences.
func Default() Preferences {
	return Preferences{Theme: DefaultTheme, Audio: DefaultAudio}
}

const (
	themeCookie   = "theme"
	mutedCookie   = "audio_muted"
	playingCookie = "audio_playing"
	cookieMaxAge  = 365 * 24 * 60 * 60
)

// FromRequest reads preferences from cookies. Missing or unparseable
// cookies fall back to the defaults one field at a time.
func FromRequest(r *http.Request) Preferences {
	p := Default()
	if c, err := r.Cookie(themeCookie); err == nil {
		p.Theme, _ = ParseTheme(c.Value)
	}
	if c, err := r.Cookie(mutedCookie); err == nil {
		if v, err := strconv.ParseBool(c.Value); err == nil {
			p.Audio.Muted = v
		}
	}
	if c, err := r.Cookie(playingCookie); err == nil {
		if v, err := strconv.ParseBool(c.Value); err == nil {
			p.Audio.Playing = v
		}
	}
	// A muted player is never playing, whatever the cookies claim.
	if p.Audio.Muted {
		p.Audio.Playing = false
	}
	return p
}

// Write stores p as cookies on w.
func (p Preferences) Write(w http.ResponseWriter) {
	set := func(name, value string) {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    value,
			Path:     "/",
			MaxAge:   cookieMaxAge,
			SameSite: http.SameSiteLaxMode,
		})
	}
	set(themeCookie, string(p.Theme))
	set(mutedCookie, strconv.FormatBool(p.Audio.Muted))
	set(playingCookie, strconv.FormatBool(p.Audio.Playing))
}

// SelectTab clamps a requested tab index into [0, count). With no tabs it
// returns 0.
func SelectTab(index, count int) int {
	if count <= 0 || index < 0 {
		return 0
	}
	if index >= count {
		return count - 1
	}
	return index
}
