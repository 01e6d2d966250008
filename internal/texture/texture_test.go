package texture

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func writeJPEG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, nil))
}

func TestLoadFilePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "denim.png")
	writePNG(t, path, color.NRGBA{R: 10, G: 20, B: 200, A: 255})

	img, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, []uint8{10, 20, 200, 255}, img.Pix[:4])
}

func TestLoadFileJPEGIsOpaque(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linen.jpg")
	writeJPEG(t, path)

	img, err := LoadFile(path)
	require.NoError(t, err)
	for i := 3; i < len(img.Pix); i += 4 {
		require.Equal(t, uint8(255), img.Pix[i])
	}
}

func TestDecodeEveryFormat(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 30, 120, 210, 255
	}

	encoders := map[string]func(*bytes.Buffer) error{
		"png":  func(b *bytes.Buffer) error { return png.Encode(b, src) },
		"jpeg": func(b *bytes.Buffer) error { return jpeg.Encode(b, src, &jpeg.Options{Quality: 100}) },
		"tga":  func(b *bytes.Buffer) error { return tga.Encode(b, src) },
		"webp": func(b *bytes.Buffer) error { return nativewebp.Encode(b, src, nil) },
	}
	for name, encode := range encoders {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, encode(&buf))

			img, err := Decode(buf.Bytes())
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 4, 2), img.Bounds())
			assert.InDelta(t, 30, int(img.Pix[0]), 6)
			assert.InDelta(t, 120, int(img.Pix[1]), 6)
			assert.InDelta(t, 210, int(img.Pix[2]), 6)
			assert.Equal(t, uint8(255), img.Pix[3])
		})
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("not an image"))
	assert.Error(t, err)
}

func TestIndexPrefersAlphaFormats(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "fabrics")
	require.NoError(t, os.MkdirAll(sub, 0755))
	writeJPEG(t, filepath.Join(dir, "Denim.jpg"))
	writePNG(t, filepath.Join(sub, "denim.png"), color.NRGBA{A: 255})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	idx := BuildIndex(dir)
	assert.Equal(t, 1, idx.Len())

	path, ok := idx.ResolvePath(`closet\DENIM.jpg`)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(sub, "denim.png"), path)

	_, ok = idx.ResolvePath("silk")
	assert.False(t, ok)
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "plaid.png"), color.NRGBA{R: 200, A: 255})

	l := &FileLoader{Root: dir, Index: BuildIndex(dir)}
	ctx := context.Background()

	for _, ref := range []string{"plaid.png", "file://" + filepath.Join(dir, "plaid.png"), "catalog/plaid.jpg"} {
		img, err := l.Load(ctx, ref)
		require.NoError(t, err, ref)
		assert.Equal(t, uint8(200), img.Pix[0], ref)
	}

	_, err := l.Load(ctx, "missing.png")
	assert.ErrorIs(t, err, ErrNotFound)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = l.Load(cancelled, "plaid.png")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCacheMemoizesResultsAndFailures(t *testing.T) {
	var calls atomic.Int32
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	c := NewCache(LoaderFunc(func(ctx context.Context, ref string) (*image.NRGBA, error) {
		calls.Add(1)
		if ref == "bad" {
			return nil, ErrNotFound
		}
		return img, nil
	}))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := c.Load(ctx, "good")
		require.NoError(t, err)
		assert.Same(t, img, got)

		_, err = c.Load(ctx, "bad")
		assert.ErrorIs(t, err, ErrNotFound)
	}
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 2, c.Len())
}

func TestCacheDoesNotRememberCancellation(t *testing.T) {
	c := NewCache(LoaderFunc(func(ctx context.Context, ref string) (*image.NRGBA, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return image.NewNRGBA(image.Rect(0, 0, 1, 1)), nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Load(ctx, "a")
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, c.Len())

	_, err = c.Load(context.Background(), "a")
	assert.NoError(t, err)
}
