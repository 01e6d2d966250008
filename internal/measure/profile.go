package measure

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is the on-disk form of a measurement vector: an optional preset
// followed by per-key overrides.
type Profile struct {
	Preset       string             `yaml:"preset,omitempty" json:"preset,omitempty"`
	Measurements map[string]float64 `yaml:"measurements,omitempty" json:"measurements,omitempty"`
}

// Vector resolves the profile: preset first, then each override clamped.
func (p Profile) Vector() (Vector, error) {
	v := Default()
	if p.Preset != "" {
		preset, err := ParsePreset(p.Preset)
		if err != nil {
			return Vector{}, err
		}
		if err := v.ApplyPreset(preset); err != nil {
			return Vector{}, err
		}
	}
	for name, value := range p.Measurements {
		k, err := ParseKey(name)
		if err != nil {
			return Vector{}, err
		}
		if err := v.Set(k, value); err != nil {
			return Vector{}, err
		}
	}
	return v, nil
}

// ParseProfile decodes a YAML (or JSON) profile document.
func ParseProfile(data []byte) (Vector, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Vector{}, fmt.Errorf("measure: parse profile: %w", err)
	}
	return p.Vector()
}

// LoadProfile reads a profile file from disk.
func LoadProfile(path string) (Vector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Vector{}, fmt.Errorf("measure: read %s: %w", path, err)
	}
	v, err := ParseProfile(data)
	if err != nil {
		return Vector{}, fmt.Errorf("%w (%s)", err, path)
	}
	return v, nil
}
