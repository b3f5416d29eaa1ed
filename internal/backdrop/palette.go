package backdrop

import "github.com/gogpu/gg"

// Palette colours a scene: a vertical background gradient plus two line
// colours.
type Palette struct {
	Top, Bottom gg.RGBA
	Accent      gg.RGBA
	Glow        gg.RGBA
}

var palettes = map[string]Palette{
	"dark": {
		Top:    gg.Hex("#0b1020"),
		Bottom: gg.Hex("#111827"),
		Accent: gg.Hex("#60a5fa"),
		Glow:   gg.Hex("#a78bfa"),
	},
	"light": {
		Top:    gg.Hex("#f8fafc"),
		Bottom: gg.Hex("#e2e8f0"),
		Accent: gg.Hex("#2563eb"),
		Glow:   gg.Hex("#7c3aed"),
	},
	"cyberpunk": {
		Top:    gg.Hex("#0d0221"),
		Bottom: gg.Hex("#261447"),
		Accent: gg.Hex("#00f0ff"),
		Glow:   gg.Hex("#ff2a6d"),
	},
}

// PaletteFor returns the palette for a theme name, falling back to dark.
func PaletteFor(theme string) Palette {
	if p, ok := palettes[theme]; ok {
		return p
	}
	return palettes["dark"]
}
