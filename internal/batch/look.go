package batch

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"wardrobe-tryon/internal/config"
	"wardrobe-tryon/internal/garment"
	"wardrobe-tryon/internal/highlight"
	"wardrobe-tryon/internal/measure"
)

// Look is a fully resolved outfit ready to compose.
type Look struct {
	Name         string
	Measurements measure.Vector
	Wear         []garment.Item
	Highlight    highlight.Selector
	Rotation     float64
}

// Looks resolves configured looks against a base body and the closet.
// Each look starts from base, then applies its preset, then its explicit
// measurements. Unknown items, keys and presets are errors.
func Looks(defs []config.Look, base measure.Vector, closet *garment.Catalog) ([]Look, error) {
	out := make([]Look, 0, len(defs))
	seen := make(map[string]int)
	for i, d := range defs {
		l, err := resolve(d, base, closet)
		if err != nil {
			name := d.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i+1)
			}
			return nil, fmt.Errorf("batch: look %s: %w", name, err)
		}
		if l.Name == "" {
			l.Name = fmt.Sprintf("look-%d", i+1)
		}
		if n := seen[l.Name]; n > 0 {
			l.Name = fmt.Sprintf("%s-%d", l.Name, n+1)
		}
		seen[l.Name]++
		out = append(out, l)
	}
	return out, nil
}

func resolve(d config.Look, base measure.Vector, closet *garment.Catalog) (Look, error) {
	l := Look{Name: Slug(d.Name), Measurements: base, Rotation: d.Rotation}

	if d.Preset != "" {
		p, err := measure.ParsePreset(d.Preset)
		if err != nil {
			return l, err
		}
		if err := l.Measurements.ApplyPreset(p); err != nil {
			return l, err
		}
	}
	for name, v := range d.Measurements {
		k, err := measure.ParseKey(name)
		if err != nil {
			return l, err
		}
		if err := l.Measurements.Set(k, v); err != nil {
			return l, err
		}
	}

	sel, err := highlight.Parse(d.Highlight)
	if err != nil {
		return l, err
	}
	l.Highlight = sel

	if len(d.Wear) > 0 {
		if closet == nil {
			return l, fmt.Errorf("wears %d items but no closet is loaded", len(d.Wear))
		}
		items, err := closet.Lookup(d.Wear)
		if err != nil {
			return l, err
		}
		l.Wear = items
	}
	return l, nil
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slug turns a look name into a directory-safe token. Accents are folded
// so "Soirée" and "Soiree" land in the same directory.
func Slug(s string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(fold, s); err == nil {
		s = folded
	}
	return strings.Trim(slugRe.ReplaceAllString(strings.ToLower(s), "-"), "-")
}
