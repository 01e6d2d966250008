package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestEntry represents one rendered frame in the output manifest.
type ManifestEntry struct {
	Look         string             `json:"look"`
	Angle        float64            `json:"angle"`
	Image        string             `json:"image"`
	Scene        string             `json:"scene,omitempty"`
	Generation   uint64             `json:"generation"`
	Measurements map[string]float64 `json:"measurements"`
	Wear         []string           `json:"wear"`
	Highlight    string             `json:"highlight,omitempty"`
	Error        string             `json:"error,omitempty"`
}

// WriteManifest writes manifest.json describing results to path. Paths in
// the manifest are relative to the manifest's directory.
func WriteManifest(path string, results []Result) error {
	dir := filepath.Dir(path)
	rel := func(p string) string {
		if p == "" {
			return ""
		}
		if r, err := filepath.Rel(dir, p); err == nil {
			return filepath.ToSlash(r)
		}
		return p
	}

	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		wear := make([]string, 0, len(r.Look.Wear))
		for _, it := range r.Look.Wear {
			wear = append(wear, it.ID)
		}
		hl := ""
		if _, ok := r.Look.Highlight.Key(); ok {
			hl = r.Look.Highlight.String()
		}
		entries[i] = ManifestEntry{
			Look:         r.Look.Name,
			Angle:        r.Angle,
			Image:        rel(r.Image),
			Scene:        rel(r.Scene),
			Generation:   r.Generation,
			Measurements: r.Look.Measurements.Values(),
			Wear:         wear,
			Highlight:    hl,
			Error:        r.Error,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
