package backdrop

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallOptions() Options {
	opts := DefaultOptions()
	opts.Width, opts.Height = 128, 96
	opts.Count = 40
	return opts
}

func TestParseScene(t *testing.T) {
	for _, s := range Scenes {
		got, err := ParseScene(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseScene("tunnel")
	assert.ErrorIs(t, err, ErrUnknownScene)
}

func TestPoints_DeterministicAndInBounds(t *testing.T) {
	a := Points(42, 200, 320, 240, 3.5)
	b := Points(42, 200, 320, 240, 3.5)
	assert.Equal(t, a, b)

	for _, p := range a {
		assert.GreaterOrEqual(t, p.X, 0.0)
		assert.Less(t, p.X, 320.0)
		assert.GreaterOrEqual(t, p.Y, 0.0)
		assert.Less(t, p.Y, 240.0)
		assert.Greater(t, p.Radius, 0.0)
	}

	c := Points(43, 200, 320, 240, 3.5)
	assert.NotEqual(t, a, c)
}

func TestPoints_AnimateOverTime(t *testing.T) {
	a := Points(7, 10, 320, 240, 0)
	b := Points(7, 10, 320, 240, 1)
	moved := 0
	for i := range a {
		if math.Hypot(a[i].X-b[i].X, a[i].Y-b[i].Y) > 0.01 {
			moved++
		}
	}
	assert.Equal(t, len(a), moved)
}

func TestRender_AllScenes(t *testing.T) {
	for _, scene := range Scenes {
		t.Run(string(scene), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, scene, smallOptions()))

			img, err := png.Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, 128, img.Bounds().Dx())
			assert.Equal(t, 96, img.Bounds().Dy())
		})
	}
}

func TestRender_SameOptionsSameBytes(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, Render(&a, SceneParticles, smallOptions()))
	require.NoError(t, Render(&b, SceneParticles, smallOptions()))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestRender_UnknownScene(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, Scene("tunnel"), smallOptions())
	assert.ErrorIs(t, err, ErrUnknownScene)
	assert.Zero(t, buf.Len())
}

func TestOptionsNormalized(t *testing.T) {
	opts := Options{Width: 10, Height: 99999, Count: 1 << 20, Time: math.NaN()}.normalized()
	assert.Equal(t, minSize, opts.Width)
	assert.Equal(t, maxSize, opts.Height)
	assert.Equal(t, maxCount, opts.Count)
	assert.Zero(t, opts.Time)
	assert.Equal(t, PaletteFor("dark"), opts.Palette)
}

func TestPaletteFor(t *testing.T) {
	assert.NotEqual(t, PaletteFor("dark"), PaletteFor("cyberpunk"))
	assert.Equal(t, PaletteFor("dark"), PaletteFor("sepia"))
}
