package texture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/webp"
)

// ErrNotFound is returned when a texture reference resolves to nothing.
var ErrNotFound = errors.New("texture: not found")

// Loader resolves an opaque texture reference to a decoded image.
// Implementations must be safe for concurrent use.
type Loader interface {
	Load(ctx context.Context, ref string) (*image.NRGBA, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, ref string) (*image.NRGBA, error)

func (f LoaderFunc) Load(ctx context.Context, ref string) (*image.NRGBA, error) {
	return f(ctx, ref)
}

// FileLoader loads textures from the local filesystem. References may be
// absolute paths, "file://" URLs, paths relative to Root, or bare names
// looked up in Index.
type FileLoader struct {
	Root  string
	Index *Index
}

// Load reads and decodes the referenced file.
func (l *FileLoader) Load(ctx context.Context, ref string) (*image.NRGBA, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := l.resolve(ref)
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

func (l *FileLoader) resolve(ref string) (string, error) {
	p := strings.TrimPrefix(ref, "file://")
	if p == "" {
		return "", fmt.Errorf("%w: empty reference", ErrNotFound)
	}
	if !filepath.IsAbs(p) && l.Root != "" {
		p = filepath.Join(l.Root, p)
	}
	if _, err := os.Stat(p); err == nil {
		return p, nil
	}
	if l.Index != nil {
		if path, ok := l.Index.ResolvePath(ref); ok {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
}

// LoadFile reads a PNG, JPEG, TGA or WebP file and returns an NRGBA image.
func LoadFile(path string) (*image.NRGBA, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}
	img, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return img, nil
}

// Decode sniffs PNG, JPEG and WebP by their signatures and treats anything
// else as TGA, which has none. tga registers an empty magic string with the
// image package, so image.Decode cannot be used here.
func Decode(raw []byte) (*image.NRGBA, error) {
	format, decode := sniff(raw)
	img, err := decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", format, err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("texture: empty %s image", format)
	}
	return toNRGBA(img), nil
}

var (
	pngMagic  = []byte("\x89PNG\r\n\x1a\n")
	jpegMagic = []byte{0xff, 0xd8, 0xff}
)

func sniff(raw []byte) (string, func(io.Reader) (image.Image, error)) {
	switch {
	case bytes.HasPrefix(raw, pngMagic):
		return "png", png.Decode
	case bytes.HasPrefix(raw, jpegMagic):
		return "jpeg", jpeg.Decode
	case len(raw) >= 12 && string(raw[:4]) == "RIFF" && string(raw[8:12]) == "WEBP":
		return "webp", webp.Decode
	default:
		return "tga", tga.Decode
	}
}

// toNRGBA converts any image to NRGBA with its origin at (0,0).
func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	switch src.(type) {
	case *image.YCbCr, *image.Gray:
		// Opaque sources: a straight copy keeps alpha at 255.
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	default:
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				i := dst.PixOffset(x, y)
				dst.Pix[i] = c.R
				dst.Pix[i+1] = c.G
				dst.Pix[i+2] = c.B
				dst.Pix[i+3] = c.A
			}
		}
	}
	return dst
}
