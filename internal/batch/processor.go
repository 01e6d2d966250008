package batch

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"wardrobe-tryon/internal/export"
	"wardrobe-tryon/internal/mathutil"
	"wardrobe-tryon/internal/postprocess"
	"wardrobe-tryon/internal/raster"
	"wardrobe-tryon/internal/scene"
	"wardrobe-tryon/internal/texture"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	Width       int
	Height      int
	Supersample int
	Workers     int
	Background  color.NRGBA
	// Angles are turntable rotations added to each look's own rotation.
	Angles []float64
	Loader texture.Loader
	// SceneFormat, when set, writes one scene snapshot per look.
	SceneFormat export.Format
	// ContactSheet tiles each look's turntable frames into turntable.webp.
	ContactSheet bool
	Logger       *slog.Logger
}

// Result holds the outcome of rendering one look at one angle.
type Result struct {
	Look       Look
	Angle      float64
	Image      string
	Scene      string
	Generation uint64
	Success    bool
	Error      string
}

type job struct {
	look  int
	angle int
}

// Run renders every look at every angle using a worker pool. Angles that
// wrap onto an earlier one are rendered once. Results are in look-major order. Cancelling ctx stops handing out work; frames not
// rendered by then report the cancellation.
func Run(ctx context.Context, cfg Config, looks []Look) []Result {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	angles := uniqueAngles(cfg.Angles)
	if len(angles) == 0 {
		angles = []float64{0}
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	// Scenes first: composing is cheap, and doing it once per look lets
	// texture loads settle before any worker renders.
	scenes := make([]*scene.Scene, len(looks))
	snapshots := make([]string, len(looks))
	for i, l := range looks {
		scenes[i] = Compose(l, cfg.Loader, logger)
		if cfg.SceneFormat != "" {
			path, err := writeScene(cfg, l, scenes[i])
			if err != nil {
				logger.Warn("scene snapshot failed", "look", l.Name, "error", err)
			}
			snapshots[i] = path
		}
	}

	total := len(looks) * len(angles)
	results := make([]Result, total)
	frames := make([]*image.NRGBA, total)
	for i := range results {
		li, ai := i/len(angles), i%len(angles)
		results[i] = Result{
			Look:       looks[li],
			Angle:      angles[ai],
			Scene:      snapshots[li],
			Generation: scenes[li].Generation,
			Error:      context.Canceled.Error(),
		}
	}

	var processed atomic.Int64
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if p := processed.Load(); p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					logger.Info("batch progress", "done", p, "total", total, "frames_per_sec", fmt.Sprintf("%.1f", rate))
				}
			}
		}
	}()

	// Worker pool
	jobs := make(chan job, workers*2)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				idx := j.look*len(angles) + j.angle
				img, res := renderFrame(cfg, scenes[j.look], results[idx])
				results[idx], frames[idx] = res, img
				processed.Add(1)
			}
		}()
	}

send:
	for li := range looks {
		for ai := range angles {
			if ctx.Err() != nil {
				break send
			}
			select {
			case jobs <- job{look: li, angle: ai}:
			case <-ctx.Done():
				break send
			}
		}
	}
	close(jobs)

	wg.Wait()
	close(done)

	if cfg.ContactSheet && len(angles) > 1 {
		for li, l := range looks {
			sheet := postprocess.ContactSheet(frames[li*len(angles):(li+1)*len(angles)], len(angles))
			if err := writeWebP(filepath.Join(cfg.OutputDir, l.Name, "turntable.webp"), sheet); err != nil {
				logger.Warn("contact sheet failed", "look", l.Name, "error", err)
			}
		}
	}

	logger.Info("batch finished", "frames", total, "elapsed", time.Since(start).Round(time.Millisecond))
	return results
}

// Compose builds the scene for one look and waits for its textures.
func Compose(l Look, loader texture.Loader, logger *slog.Logger) *scene.Scene {
	st := scene.State{Measurements: l.Measurements, Highlight: l.Highlight, RotationDeg: l.Rotation}
	c := scene.NewComposer(scene.Options{Logger: logger, Loader: loader, Initial: &st})
	defer c.Close()
	for _, it := range l.Wear {
		if err := c.SelectGarment(it); err != nil {
			logger.Warn("cannot wear item", "look", l.Name, "item", it.ID, "error", err)
		}
	}
	c.Wait()
	return c.Current()
}

// Render rasterizes sc at the given extra rotation and downsamples it to the
// configured size.
func Render(cfg Config, sc *scene.Scene, angle float64) *image.NRGBA {
	img := raster.RenderScene(sc, scene.StillFrame(sc.RotationDeg+angle), raster.Options{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Supersample: cfg.Supersample,
		Background:  cfg.Background,
	})
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.Width, cfg.Height)
	}
	return img
}

func renderFrame(cfg Config, sc *scene.Scene, res Result) (*image.NRGBA, Result) {
	img := Render(cfg, sc, res.Angle)
	res.Image = framePath(cfg.OutputDir, res.Look.Name, res.Angle)
	if err := writeWebP(res.Image, img); err != nil {
		res.Error = err.Error()
		return img, res
	}
	res.Success, res.Error = true, ""
	return img, res
}

// angleKey is a rotation in hundredths of a degree, wrapped into [0, 36000).
func angleKey(angle float64) int {
	return int(math.Round(mathutil.NormalizeDeg(angle)*100)) % 36000
}

// uniqueAngles drops rotations that land on the same frame as an earlier one.
func uniqueAngles(angles []float64) []float64 {
	seen := make(map[int]bool, len(angles))
	out := make([]float64, 0, len(angles))
	for _, a := range angles {
		if k := angleKey(a); !seen[k] {
			seen[k] = true
			out = append(out, a)
		}
	}
	return out
}

// framePath names a frame by its wrapped rotation: whole degrees as 045.webp,
// fractional ones with two decimals as 010.25.webp.
func framePath(dir, look string, angle float64) string {
	k := angleKey(angle)
	name := fmt.Sprintf("%03d.webp", k/100)
	if k%100 != 0 {
		name = fmt.Sprintf("%03d.%02d.webp", k/100, k%100)
	}
	return filepath.Join(dir, look, name)
}

func writeWebP(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		return fmt.Errorf("WebP encode: %w", err)
	}
	return f.Close()
}

func writeScene(cfg Config, l Look, sc *scene.Scene) (string, error) {
	path := filepath.Join(cfg.OutputDir, l.Name, "scene."+string(cfg.SceneFormat))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := export.Write(f, sc, cfg.SceneFormat); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}
