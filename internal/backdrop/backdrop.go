// Package backdrop draws the decorative generative scenes that sit behind
// the page content: a drifting particle field, a wave plane, and a morphing
// polygon. Scenes are pure functions of their Options, so the same seed and
// time always produce the same image and can be cached or pre-rendered.
package backdrop

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"

	"github.com/gogpu/gg"
)

// ErrUnknownScene is returned for scene names that are not in Scenes.
var ErrUnknownScene = errors.New("unknown backdrop scene")

// Scene names a generative background.
type Scene string

const (
	SceneParticles Scene = "particles"
	SceneWaves     Scene = "waves"
	SceneMorph     Scene = "morph"
)

// Scenes lists every scene Render accepts.
var Scenes = []Scene{SceneParticles, SceneWaves, SceneMorph}

// ParseScene validates a scene name.
func ParseScene(name string) (Scene, error) {
	for _, s := range Scenes {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

const (
	minSize      = 64
	maxSize      = 2048
	maxCount     = 2000
	defaultCount = 160
	linkDistance = 90.0
)

// Options controls a single rendered frame.
type Options struct {
	Width, Height int
	Seed          uint64
	// Time is the animation clock in seconds.
	Time    float64
	Count   int
	Palette Palette
}

// DefaultOptions is a 1280x720 dark frame at t=0.
func DefaultOptions() Options {
	return Options{
		Width:   1280,
		Height:  720,
		Seed:    1,
		Count:   defaultCount,
		Palette: PaletteFor("dark"),
	}
}

func (o Options) normalized() Options {
	o.Width = clampInt(o.Width, minSize, maxSize)
	o.Height = clampInt(o.Height, minSize, maxSize)
	if o.Count <= 0 {
		o.Count = defaultCount
	}
	o.Count = min(o.Count, maxCount)
	if math.IsNaN(o.Time) || math.IsInf(o.Time, 0) {
		o.Time = 0
	}
	if o.Palette == (Palette{}) {
		o.Palette = PaletteFor("dark")
	}
	return o
}

// Render encodes one frame of scene as PNG into w.
func Render(w io.Writer, scene Scene, opts Options) error {
	opts = opts.normalized()

	dc := gg.NewContext(opts.Width, opts.Height)
	defer dc.Close()

	if err := paintBackground(dc, opts); err != nil {
		return err
	}

	var err error
	switch scene {
	case SceneParticles:
		err = drawParticles(dc, opts)
	case SceneWaves:
		err = drawWaves(dc, opts)
	case SceneMorph:
		err = drawMorph(dc, opts)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownScene, scene)
	}
	if err != nil {
		return fmt.Errorf("draw %s: %w", scene, err)
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode %s: %w", scene, err)
	}
	return nil
}

func paintBackground(dc *gg.Context, opts Options) error {
	grad := gg.NewLinearGradientBrush(0, 0, 0, float64(opts.Height)).
		AddColorStop(0, opts.Palette.Top).
		AddColorStop(1, opts.Palette.Bottom)
	dc.SetFillBrush(grad)
	dc.DrawRectangle(0, 0, float64(opts.Width), float64(opts.Height))
	return dc.Fill()
}

// Particle is one point of the particle field at a given time.
type Particle struct {
	X, Y   float64
	Radius float64
}

// Points returns the particle positions for a frame. Base positions come
// from the seed; each particle then drifts on its own sine/cosine orbit and
// wraps around the edges.
func Points(seed uint64, count, width, height int, t float64) []Particle {
	rng := rand.New(rand.NewPCG(seed, 0x9e3779b97f4a7c15))
	w, h := float64(width), float64(height)
	out := make([]Particle, count)
	for i := range out {
		x := rng.Float64() * w
		y := rng.Float64() * h
		phase := rng.Float64() * 2 * math.Pi
		speed := 0.2 + rng.Float64()*0.6
		radius := 0.6 + rng.Float64()*2.2

		x += 24 * math.Sin(t*speed+phase)
		y += 16*math.Cos(t*speed*0.7+phase) - t*speed*8
		out[i] = Particle{X: wrap(x, w), Y: wrap(y, h), Radius: radius}
	}
	return out
}

func drawParticles(dc *gg.Context, opts Options) error {
	pts := Points(opts.Seed, opts.Count, opts.Width, opts.Height, opts.Time)
	accent := opts.Palette.Accent

	dc.SetLineWidth(0.6)
	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			d := math.Hypot(pts[i].X-pts[j].X, pts[i].Y-pts[j].Y)
			if d > linkDistance {
				continue
			}
			dc.SetRGBA(accent.R, accent.G, accent.B, 0.35*(1-d/linkDistance))
			dc.DrawLine(pts[i].X, pts[i].Y, pts[j].X, pts[j].Y)
			if err := dc.Stroke(); err != nil {
				return err
			}
		}
	}

	glow := opts.Palette.Glow
	for i, p := range pts {
		c := accent
		if i%5 == 0 {
			c = glow
		}
		dc.SetRGBA(c.R, c.G, c.B, 0.85)
		dc.DrawCircle(p.X, p.Y, p.Radius)
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	return nil
}

func drawWaves(dc *gg.Context, opts Options) error {
	const rows = 24
	w, h := float64(opts.Width), float64(opts.Height)
	rng := rand.New(rand.NewPCG(opts.Seed, 0x5851f42d4c957f2d))
	freq := 0.008 + rng.Float64()*0.01
	accent, glow := opts.Palette.Accent, opts.Palette.Glow

	dc.SetLineWidth(1.2)
	for r := 0; r < rows; r++ {
		depth := float64(r) / rows
		// Rows bunch up towards the horizon for a receding plane.
		baseY := h*0.4 + h*0.6*depth*depth
		amp := 4 + 22*depth
		c := lerpColor(glow, accent, depth)
		dc.SetRGBA(c.R, c.G, c.B, 0.15+0.6*depth)

		for x := 0.0; x <= w; x += 6 {
			y := baseY + amp*math.Sin(x*freq*(1+depth)+opts.Time*1.4+float64(r)*0.55)
			if x == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		if err := dc.Stroke(); err != nil {
			return err
		}
	}
	return nil
}

func drawMorph(dc *gg.Context, opts Options) error {
	const rings = 7
	w, h := float64(opts.Width), float64(opts.Height)
	rng := rand.New(rand.NewPCG(opts.Seed, 0xda3e39cb94b95bdb))
	sides := 3 + rng.IntN(6)
	cx, cy := w/2, h/2
	base := math.Min(w, h) * 0.32
	t := opts.Time

	dc.SetLineWidth(1.5)
	for ring := 0; ring < rings; ring++ {
		k := float64(ring) / rings
		radius := base * (1 - 0.11*float64(ring))
		rot := t*0.2*(1+k) + k*math.Pi/float64(sides)
		// Blend between the polygon and a star as the clock advances.
		spike := 0.3 * math.Sin(t*0.7+k*2) * math.Sin(t*0.23)
		verts := sides * 2
		c := lerpColor(opts.Palette.Accent, opts.Palette.Glow, k)
		dc.SetRGBA(c.R, c.G, c.B, 0.8-0.08*float64(ring))

		for v := 0; v <= verts; v++ {
			theta := rot + 2*math.Pi*float64(v)/float64(verts)
			r := radius
			if v%2 == 1 {
				r *= 1 - spike
			}
			x, y := cx+r*math.Cos(theta), cy+r*math.Sin(theta)
			if v == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
		if err := dc.Stroke(); err != nil {
			return err
		}
	}
	return nil
}

func wrap(v, limit float64) float64 {
	v = math.Mod(v, limit)
	if v < 0 {
		v += limit
	}
	return v
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func lerpColor(a, b gg.RGBA, t float64) gg.RGBA {
	return gg.RGBA{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}
