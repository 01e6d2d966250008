package raster

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wardrobe-tryon/internal/garment"
	"wardrobe-tryon/internal/highlight"
	"wardrobe-tryon/internal/measure"
	"wardrobe-tryon/internal/scene"
)

func compose(t *testing.T, edit func(c *scene.Composer)) *scene.Scene {
	t.Helper()
	c := scene.NewComposer(scene.Options{})
	t.Cleanup(c.Close)
	if edit != nil {
		edit(c)
	}
	return c.Current()
}

func opaque(img *image.NRGBA) int {
	n := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 {
			n++
		}
	}
	return n
}

func topRow(img *image.NRGBA) int {
	for y := 0; y < img.Rect.Dy(); y++ {
		for x := 0; x < img.Rect.Dx(); x++ {
			if img.Pix[y*img.Stride+x*4+3] > 0 {
				return y
			}
		}
	}
	return -1
}

func TestRenderSceneDrawsBody(t *testing.T) {
	sc := compose(t, nil)
	img := RenderScene(sc, scene.StillFrame(0), Options{Width: 96, Height: 128})

	assert.Equal(t, image.Rect(0, 0, 96, 128), img.Bounds())
	assert.Greater(t, opaque(img), 500)

	// Corners stay transparent.
	assert.Equal(t, uint8(0), img.Pix[3])
	assert.Equal(t, uint8(0), img.Pix[len(img.Pix)-1])

	// The torso crosses the vertical center line.
	mid := img.NRGBAAt(48, 50)
	assert.Equal(t, uint8(255), mid.A)
}

func TestRenderSceneSupersampleAndBackground(t *testing.T) {
	sc := compose(t, nil)
	bg := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	img := RenderScene(sc, scene.StillFrame(0), Options{Width: 40, Height: 60, Supersample: 2, Background: bg})

	assert.Equal(t, image.Rect(0, 0, 80, 120), img.Bounds())
	assert.Equal(t, bg, img.NRGBAAt(0, 0))
}

func TestRenderNilScene(t *testing.T) {
	img := RenderScene(nil, scene.Frame{}, Options{Width: 8, Height: 8})
	assert.Equal(t, 0, opaque(img))
}

func TestTallerBodyRendersTaller(t *testing.T) {
	short := compose(t, func(c *scene.Composer) { require.NoError(t, c.SetMeasurement(measure.Height, 150)) })
	tall := compose(t, func(c *scene.Composer) { require.NoError(t, c.SetMeasurement(measure.Height, 200)) })

	opts := Options{Width: 64, Height: 128}
	a := RenderScene(short, scene.StillFrame(0), opts)
	b := RenderScene(tall, scene.StillFrame(0), opts)
	assert.Less(t, topRow(b), topRow(a))
}

func TestRotationWrapsAround(t *testing.T) {
	sc := compose(t, nil)
	opts := Options{Width: 48, Height: 64}
	a := RenderScene(sc, scene.StillFrame(405), opts)
	b := RenderScene(sc, scene.StillFrame(45), opts)
	assert.True(t, bytes.Equal(a.Pix, b.Pix))
}

func TestEmphasisTintsPixels(t *testing.T) {
	plain := compose(t, nil)
	lit := compose(t, func(c *scene.Composer) { require.NoError(t, c.SetHighlight(highlight.On(measure.Chest))) })

	opts := Options{Width: 96, Height: 128}
	a := RenderScene(plain, scene.StillFrame(0), opts)
	b := RenderScene(lit, scene.StillFrame(0), opts)

	assert.False(t, bytes.Equal(a.Pix, b.Pix))
	// Same silhouette, different color.
	assert.Equal(t, opaque(a), opaque(b))
}

func TestGarmentChangesColor(t *testing.T) {
	bare := compose(t, nil)
	dressed := compose(t, func(c *scene.Composer) {
		require.NoError(t, c.SelectGarment(garment.Item{ID: "t", Type: "sweater", Color: "#20a040"}))
	})

	opts := Options{Width: 96, Height: 128}
	a := RenderScene(bare, scene.StillFrame(0), opts).NRGBAAt(48, 50)
	b := RenderScene(dressed, scene.StillFrame(0), opts).NRGBAAt(48, 50)
	assert.NotEqual(t, a, b)
	assert.Greater(t, b.G, b.R)
}

func TestSampleTextureWrapsAroundAndClampsDown(t *testing.T) {
	tex := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}
	tex.SetNRGBA(0, 0, red)
	tex.SetNRGBA(1, 0, blue)
	tex.SetNRGBA(0, 1, blue)
	tex.SetNRGBA(1, 1, blue)

	sample := func(u, v float64) color.NRGBA {
		r, g, b, a := SampleTexture(tex, u, v)
		return color.NRGBA{R: r, G: g, B: b, A: a}
	}

	// Texel centers.
	assert.Equal(t, red, sample(0.25, 0.25))
	assert.Equal(t, blue, sample(0.75, 0.25))
	// Around the body u wraps, and the seam blends both edge columns.
	assert.Equal(t, red, sample(1.25, 0.25))
	assert.Equal(t, red, sample(-0.75, 0.25))
	assert.Equal(t, color.NRGBA{R: 128, B: 128, A: 255}, sample(0, 0.25))
	// Past the collar or hem v clamps instead of wrapping to the other edge.
	assert.Equal(t, red, sample(0.25, -0.5))
	assert.Equal(t, red, sample(0.25, 0))
	assert.Equal(t, blue, sample(0.25, 1.5))

	r, g, b, a := SampleTexture(image.NewNRGBA(image.Rect(0, 0, 0, 0)), 0.5, 0.5)
	assert.Equal(t, [4]uint8{}, [4]uint8{r, g, b, a})
}

func TestTintMovesTowardAccent(t *testing.T) {
	lc := DefaultLightConfig()
	c := color.NRGBA{R: 0, G: 0, B: 255, A: 200}
	got := lc.Tint(c)
	assert.Greater(t, got.R, c.R)
	assert.Less(t, got.B, c.B)
	assert.Equal(t, c.A, got.A)
}

func TestTriangleDepthTest(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	lc := DefaultLightConfig()
	far := Surface{Color: color.NRGBA{R: 255, A: 255}}
	near := Surface{Color: color.NRGBA{G: 255, A: 255}}

	tri := func(z float64) (Vertex, Vertex, Vertex) {
		return Vertex{X: -1, Y: -1, Z: z}, Vertex{X: 20, Y: -1, Z: z}, Vertex{X: -1, Y: 20, Z: z}
	}
	a0, a1, a2 := tri(5)
	b0, b1, b2 := tri(1)
	RasterizeTriangle(fb, a0, a1, a2, &near, &lc)
	RasterizeTriangle(fb, b0, b1, b2, &far, &lc)

	img := fb.Image()
	px := img.NRGBAAt(1, 1)
	assert.Greater(t, px.G, px.R)
}
