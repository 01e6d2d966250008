package garment

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor resolves "#rgb", "#rrggbb" or a CSS color name to an opaque color.
func ParseColor(s string) (color.NRGBA, error) {
	str := strings.ToLower(strings.TrimSpace(s))
	if str == "" {
		return color.NRGBA{}, fmt.Errorf("garment: empty color")
	}

	if strings.HasPrefix(str, "#") {
		hex := str[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return color.NRGBA{}, fmt.Errorf("garment: bad hex color %q", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("garment: bad hex color %q: %w", s, err)
		}
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
	}

	c, ok := colornames.Map[strings.ReplaceAll(str, " ", "")]
	if !ok {
		return color.NRGBA{}, fmt.Errorf("garment: unknown color %q", s)
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}, nil
}
