package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Look is one outfit on one body: a named combination of measurements,
// worn items, highlight and rotation.
type Look struct {
	Name         string             `json:"name" yaml:"name"`
	Preset       string             `json:"preset,omitempty" yaml:"preset,omitempty"`
	Measurements map[string]float64 `json:"measurements,omitempty" yaml:"measurements,omitempty"`
	Wear         []string           `json:"wear,omitempty" yaml:"wear,omitempty"`
	Highlight    string             `json:"highlight,omitempty" yaml:"highlight,omitempty"`
	Rotation     float64            `json:"rotation,omitempty" yaml:"rotation,omitempty"`
}

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	BaseDir    string `json:"base_dir" yaml:"base_dir"`
	Profile    string `json:"profile" yaml:"profile"`
	Catalog    string `json:"catalog" yaml:"catalog"`
	TextureDir string `json:"texture_dir" yaml:"texture_dir"`
	OutputDir  string `json:"output_dir" yaml:"output_dir"`

	// Batch
	Looks     []Look    `json:"looks" yaml:"looks"`
	Angles    []float64 `json:"angles" yaml:"angles"`
	Turntable int       `json:"turntable" yaml:"turntable"`

	// Render settings
	Width       int    `json:"width" yaml:"width"`
	Height      int    `json:"height" yaml:"height"`
	Supersample int    `json:"supersample" yaml:"supersample"`
	Workers     int    `json:"workers" yaml:"workers"`
	Background  string `json:"background" yaml:"background"`
	// SceneFormat writes a scene snapshot per look when set (json or msgpack).
	SceneFormat string `json:"scene_format" yaml:"scene_format"`
}

// Defaults applied by Resolve.
const (
	DefaultSize        = 512
	DefaultSupersample = 2
	DefaultCatalog     = "closet.yaml"
)

// Load reads a config file, YAML when the extension says so and JSON
// otherwise. Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.BaseDir == "" {
		cfg.BaseDir = filepath.Dir(path)
	}
	return cfg, nil
}

// Parse decodes config data; ext picks the syntax (".yaml"/".yml" or JSON).
func Parse(data []byte, ext string) (Config, error) {
	var cfg Config
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// Resolve fills in any empty fields with auto-detected defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.BaseDir != "" {
		c.BaseDir = flags.BaseDir
	}
	if flags.Profile != "" {
		c.Profile = flags.Profile
	}
	if flags.Catalog != "" {
		c.Catalog = flags.Catalog
	}
	if flags.TextureDir != "" {
		c.TextureDir = flags.TextureDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Size > 0 {
		c.Width, c.Height = flags.Size, flags.Size
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Turntable > 0 {
		c.Turntable = flags.Turntable
	}

	// Auto-detect base dir if still empty
	if c.BaseDir == "" {
		c.BaseDir = detectBaseDir()
	}

	// Resolve relative paths against base dir
	if c.BaseDir != "" {
		if c.Catalog == "" {
			c.Catalog = filepath.Join(c.BaseDir, DefaultCatalog)
		}
		c.Catalog = c.abs(c.Catalog)
		c.Profile = c.abs(c.Profile)
		c.TextureDir = c.abs(c.TextureDir)
		if c.OutputDir == "" {
			c.OutputDir = filepath.Join(c.BaseDir, "renders")
		}
		c.OutputDir = c.abs(c.OutputDir)
	}

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = DefaultSize
	}
	if c.Height <= 0 {
		c.Height = c.Width
	}
	if c.Supersample <= 0 {
		c.Supersample = DefaultSupersample
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

func (c *Config) abs(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// TurntableAngles returns the rotations every look is rendered at: Angles
// when given, else Turntable evenly spaced steps, else a single front view.
func (c *Config) TurntableAngles() []float64 {
	if len(c.Angles) > 0 {
		return c.Angles
	}
	if c.Turntable <= 1 {
		return []float64{0}
	}
	out := make([]float64, c.Turntable)
	for i := range out {
		out[i] = 360 * float64(i) / float64(c.Turntable)
	}
	return out
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	BaseDir     string
	Profile     string
	Catalog     string
	TextureDir  string
	OutputDir   string
	Size        int
	Supersample int
	Workers     int
	Turntable   int
}

func detectBaseDir() string {
	// Try relative to executable
	exe, _ := os.Executable()
	if exe != "" {
		dir := filepath.Dir(exe)
		for _, base := range []string{dir, filepath.Dir(dir)} {
			if _, err := os.Stat(filepath.Join(base, DefaultCatalog)); err == nil {
				return base
			}
		}
	}

	cwd, _ := os.Getwd()
	return cwd
}
