package batch

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/webp"

	"wardrobe-tryon/internal/config"
	"wardrobe-tryon/internal/export"
	"wardrobe-tryon/internal/garment"
	"wardrobe-tryon/internal/highlight"
	"wardrobe-tryon/internal/measure"
	"wardrobe-tryon/internal/texture"
)

const closetYAML = `
items:
  - id: tee-red
    name: Red tee
    type: t-shirt
    color: "#cc2222"
  - id: shirt-oxford
    name: Oxford
    type: shirt
    color: lightblue
  - id: jeans-raw
    name: Raw denim
    type: jeans
    color: "#1a2a4a"
    custom_texture: denim.png
`

func closet(t *testing.T) *garment.Catalog {
	t.Helper()
	c, err := garment.ParseCatalog([]byte(closetYAML))
	require.NoError(t, err)
	return c
}

func TestLooksResolvesPresetThenOverrides(t *testing.T) {
	looks, err := Looks([]config.Look{
		{Name: "Office Day", Preset: "athletic", Measurements: map[string]float64{"waist": 90}, Wear: []string{"shirt-oxford"}, Highlight: "waist"},
		{Wear: []string{"tee-red", "jeans-raw"}, Rotation: 20},
		{Name: "office day"},
	}, measure.Default(), closet(t))
	require.NoError(t, err)
	require.Len(t, looks, 3)

	office := looks[0]
	assert.Equal(t, "office-day", office.Name)
	assert.Equal(t, 90.0, office.Measurements.Value(measure.Waist))
	assert.Equal(t, 104.0, office.Measurements.Value(measure.Chest))
	assert.Equal(t, highlight.On(measure.Waist), office.Highlight)
	require.Len(t, office.Wear, 1)
	assert.Equal(t, "shirt-oxford", office.Wear[0].ID)

	assert.Equal(t, "look-2", looks[1].Name)
	assert.Equal(t, 20.0, looks[1].Rotation)
	assert.Equal(t, measure.Default(), looks[1].Measurements)
	assert.Equal(t, "office-day-2", looks[2].Name)
}

func TestLooksErrors(t *testing.T) {
	cases := []config.Look{
		{Name: "a", Preset: "giant"},
		{Name: "b", Measurements: map[string]float64{"wingspan": 180}},
		{Name: "c", Highlight: "elbow"},
		{Name: "d", Wear: []string{"ghost"}},
	}
	for _, d := range cases {
		_, err := Looks([]config.Look{d}, measure.Default(), closet(t))
		assert.Error(t, err, d.Name)
	}

	_, err := Looks([]config.Look{{Name: "e", Wear: []string{"tee-red"}}}, measure.Default(), nil)
	assert.Error(t, err)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "weekend-look-2", Slug("  Weekend Look #2 "))
	assert.Equal(t, "", Slug("!!"))
	assert.Equal(t, "soiree-a-paris", Slug("Soirée à Paris"))
}

func TestFramePath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "a", "045.webp"), framePath("out", "a", 405))
	assert.Equal(t, filepath.Join("out", "a", "270.webp"), framePath("out", "a", -90))
	assert.Equal(t, filepath.Join("out", "a", "000.webp"), framePath("out", "a", 360))
	assert.Equal(t, filepath.Join("out", "a", "359.80.webp"), framePath("out", "a", 359.8))
	assert.NotEqual(t, framePath("out", "a", 10.2), framePath("out", "a", 10.4))
	assert.Equal(t, filepath.Join("out", "a", "051.43.webp"), framePath("out", "a", 360.0/7))
}

func TestUniqueAngles(t *testing.T) {
	assert.Equal(t, []float64{0, 10.2, 10.4, 90}, uniqueAngles([]float64{0, 10.2, 360, 10.4, 90, -270, 720}))
	assert.Empty(t, uniqueAngles(nil))
}

func TestRunSkipsDuplicateAngles(t *testing.T) {
	out := t.TempDir()
	looks := []Look{{Name: "a", Measurements: measure.Default()}}
	results := Run(context.Background(), Config{OutputDir: out, Width: 8, Height: 8, Workers: 2, Angles: []float64{0, 360, 10.2, 10.4}}, looks)
	require.Len(t, results, 3)

	images := map[string]bool{}
	for _, r := range results {
		require.True(t, r.Success, r.Error)
		images[r.Image] = true
	}
	assert.Len(t, images, 3)
}

func TestRunRendersLooksAndManifest(t *testing.T) {
	out := t.TempDir()
	tex := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range tex.Pix {
		tex.Pix[i] = 200
	}
	var loaded []string
	loader := texture.LoaderFunc(func(ctx context.Context, ref string) (*image.NRGBA, error) {
		loaded = append(loaded, ref)
		return tex, nil
	})

	looks, err := Looks([]config.Look{
		{Name: "casual", Wear: []string{"tee-red", "jeans-raw"}},
		{Name: "formal", Preset: "slim", Wear: []string{"shirt-oxford"}, Highlight: "chest"},
	}, measure.Default(), closet(t))
	require.NoError(t, err)

	cfg := Config{
		OutputDir:    out,
		Width:        32,
		Height:       48,
		Supersample:  2,
		Workers:      3,
		Background:   color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Angles:       []float64{0, 90},
		Loader:       loader,
		SceneFormat:  export.MsgPack,
		ContactSheet: true,
	}
	results := Run(context.Background(), cfg, looks)
	require.Len(t, results, 4)
	assert.Equal(t, []string{"denim.png"}, loaded)

	for _, r := range results {
		require.True(t, r.Success, r.Error)
		f, err := os.Open(r.Image)
		require.NoError(t, err)
		img, err := webp.Decode(f)
		f.Close()
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 32, 48), img.Bounds())
	}
	assert.Equal(t, filepath.Join(out, "formal", "090.webp"), results[3].Image)

	sheet, err := os.Open(filepath.Join(out, "casual", "turntable.webp"))
	require.NoError(t, err)
	img, err := webp.Decode(sheet)
	sheet.Close()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 48), img.Bounds())

	data, err := os.ReadFile(filepath.Join(out, "casual", "scene.msgpack"))
	require.NoError(t, err)
	snap, err := export.Unmarshal(data, export.MsgPack)
	require.NoError(t, err)
	textured := 0
	for _, m := range snap.Meshes {
		if m.Textured {
			textured++
		}
	}
	assert.Equal(t, 3, textured)

	manifest := filepath.Join(out, "manifest.json")
	require.NoError(t, WriteManifest(manifest, results))
	raw, err := os.ReadFile(manifest)
	require.NoError(t, err)
	var entries []ManifestEntry
	require.NoError(t, json.Unmarshal(raw, &entries))
	require.Len(t, entries, 4)
	assert.Equal(t, "casual/000.webp", entries[0].Image)
	assert.Equal(t, "casual/scene.msgpack", entries[0].Scene)
	assert.Equal(t, []string{"tee-red", "jeans-raw"}, entries[0].Wear)
	assert.Empty(t, entries[0].Highlight)
	assert.Equal(t, "chest", entries[2].Highlight)
	assert.Equal(t, 86.0, entries[2].Measurements["chest"])
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	looks := []Look{{Name: "a", Measurements: measure.Default()}}
	results := Run(ctx, Config{OutputDir: t.TempDir(), Width: 8, Height: 8, Workers: 1, Angles: []float64{0, 90, 180}}, looks)
	require.Len(t, results, 3)
	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
			assert.Equal(t, context.Canceled.Error(), r.Error)
		}
	}
	assert.Positive(t, failed)
}
