package measure

import (
	"fmt"
	"strings"
)

// Preset is a named body type that overrides all ten measurements at once.
type Preset string

const (
	Slim     Preset = "slim"
	Athletic Preset = "athletic"
	Curvy    Preset = "curvy"
)

var presets = map[Preset][NumKeys]float64{
	Slim: {
		Neck: 35, Shoulder: 42, Chest: 86, Waist: 72, Stomach: 76,
		Hips: 88, Thigh: 50, Inseam: 82, Height: 178, Weight: 62,
	},
	Athletic: {
		Neck: 40, Shoulder: 50, Chest: 104, Waist: 82, Stomach: 84,
		Hips: 98, Thigh: 60, Inseam: 81, Height: 180, Weight: 80,
	},
	Curvy: {
		Neck: 35, Shoulder: 42, Chest: 102, Waist: 80, Stomach: 90,
		Hips: 112, Thigh: 64, Inseam: 76, Height: 165, Weight: 72,
	},
}

// Presets returns the known preset names in a stable order.
func Presets() []Preset {
	return []Preset{Slim, Athletic, Curvy}
}

// ParsePreset resolves a preset name (case-insensitive).
func ParsePreset(s string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := presets[p]; !ok {
		return "", fmt.Errorf("measure: unknown preset %q", s)
	}
	return p, nil
}

// PresetValues returns the ten values of preset p.
func PresetValues(p Preset) ([NumKeys]float64, bool) {
	vals, ok := presets[p]
	return vals, ok
}

// ApplyPreset replaces every value with the preset's values. Nothing from the
// previous state survives, so applying presets in sequence never blends.
func (v *Vector) ApplyPreset(p Preset) error {
	vals, ok := presets[p]
	if !ok {
		return fmt.Errorf("measure: unknown preset %q", p)
	}
	next := Default()
	for i := range next {
		next[i].Value = next[i].Clamp(vals[i])
	}
	*v = next
	return nil
}
