package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"wardrobe-tryon/internal/batch"
	"wardrobe-tryon/internal/config"
	"wardrobe-tryon/internal/export"
	"wardrobe-tryon/internal/garment"
	"wardrobe-tryon/internal/measure"
	"wardrobe-tryon/internal/texture"
	"wardrobe-tryon/internal/watch"
)

type options struct {
	configFile string
	preset     string
	wear       string
	highlight  string
	rotation   float64
	sheet      bool
	watch      bool
	verbose    bool
	flags      config.Flags
}

func main() {
	var o options

	// CLI flags
	flag.StringVar(&o.configFile, "config", "", "Path to a JSON or YAML config file")
	flag.StringVar(&o.flags.BaseDir, "data", "", "Base directory for relative paths (default: config dir or cwd)")
	flag.StringVar(&o.flags.Profile, "profile", "", "Measurement profile (YAML)")
	flag.StringVar(&o.flags.Catalog, "catalog", "", "Closet catalog (YAML, default: closet.yaml)")
	flag.StringVar(&o.flags.TextureDir, "textures", "", "Directory searched for custom garment textures")
	flag.StringVar(&o.flags.OutputDir, "output", "", "Output directory (default: renders)")
	flag.IntVar(&o.flags.Size, "size", 0, "Square output size in pixels (default: 512)")
	flag.IntVar(&o.flags.Supersample, "supersample", 0, "Supersampling factor (default: 2)")
	flag.IntVar(&o.flags.Workers, "workers", 0, "Number of worker goroutines (default: NumCPU)")
	flag.IntVar(&o.flags.Turntable, "turntable", 0, "Render N evenly spaced rotations per look")
	flag.StringVar(&o.preset, "preset", "", "Body type preset: slim, athletic or curvy")
	flag.StringVar(&o.wear, "wear", "", "Comma-separated item IDs to wear")
	flag.StringVar(&o.highlight, "highlight", "", "Measurement to emphasize (e.g. chest)")
	flag.Float64Var(&o.rotation, "rotation", 0, "Avatar rotation in degrees")
	flag.BoolVar(&o.sheet, "sheet", false, "Also write a turntable contact sheet per look")
	flag.BoolVar(&o.watch, "watch", false, "Re-render when the config, profile or catalog changes")
	flag.BoolVar(&o.verbose, "v", false, "Debug logging")
	sceneOut := flag.String("scene-out", "", "Write a scene snapshot per look: json or msgpack")

	flag.Parse()

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := loadConfig(o, *sceneOut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	failed := runOnce(ctx, o, cfg, logger)
	if !o.watch {
		if failed {
			os.Exit(1)
		}
		return
	}

	files := []string{o.configFile, cfg.Profile, cfg.Catalog}
	w, err := watch.New(watch.Config{Files: files, Logger: logger})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: watch: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Watching for changes (Ctrl+C to stop)")
	err = w.Run(ctx, func(changed []string) {
		fmt.Printf("\nChanged: %s\n", strings.Join(changed, ", "))
		next, err := loadConfig(o, *sceneOut)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		runOnce(ctx, o, next, logger)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: watch: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(o options, sceneOut string) (config.Config, error) {
	var cfg config.Config
	if o.configFile != "" {
		var err error
		cfg, err = config.Load(o.configFile)
		if err != nil {
			return cfg, err
		}
	}
	if sceneOut != "" {
		cfg.SceneFormat = sceneOut
	}

	// CLI flags override config file
	cfg.Resolve(o.flags)

	// Any look flag, or a config without looks, means a single ad-hoc look.
	if o.preset != "" || o.wear != "" || o.highlight != "" || o.rotation != 0 || len(cfg.Looks) == 0 {
		look := config.Look{Name: "tryon", Preset: o.preset, Highlight: o.highlight, Rotation: o.rotation}
		for _, id := range strings.Split(o.wear, ",") {
			if id = strings.TrimSpace(id); id != "" {
				look.Wear = append(look.Wear, id)
			}
		}
		cfg.Looks = []config.Look{look}
	}
	return cfg, nil
}

// runOnce renders every configured look and reports whether anything failed.
func runOnce(ctx context.Context, o options, cfg config.Config, logger *slog.Logger) bool {
	base := measure.Default()
	if cfg.Profile != "" {
		v, err := measure.LoadProfile(cfg.Profile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading profile: %v\n", err)
			return true
		}
		base = v
	}

	closet, err := garment.LoadCatalog(cfg.Catalog)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
			return true
		}
		logger.Warn("no closet catalog", "path", cfg.Catalog)
		closet = nil
	}

	looks, err := batch.Looks(cfg.Looks, base, closet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return true
	}

	var format export.Format
	if cfg.SceneFormat != "" {
		if format, err = export.ParseFormat(cfg.SceneFormat); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return true
		}
	}

	bg := color.NRGBA{}
	if cfg.Background != "" {
		if bg, err = garment.ParseColor(cfg.Background); err != nil {
			fmt.Fprintf(os.Stderr, "Error: background: %v\n", err)
			return true
		}
	}

	// Build texture index
	texRoot := cfg.TextureDir
	if texRoot == "" && cfg.Catalog != "" {
		texRoot = filepath.Dir(cfg.Catalog)
	}
	texIndex := texture.BuildIndex(texRoot)
	texCache := texture.NewCache(&texture.FileLoader{Root: texRoot, Index: texIndex})
	fmt.Printf("Textures: %d indexed\n", texIndex.Len())

	angles := cfg.TurntableAngles()
	items := 0
	if closet != nil {
		items = len(closet.Items)
	}

	// Print summary
	fmt.Println("Wardrobe try-on renderer → WebP")
	fmt.Printf("Looks: %d, Angles: %d, Closet items: %d, Workers: %d\n", len(looks), len(angles), items, cfg.Workers)
	fmt.Printf("Size: %dx%d (x%d supersample)\n", cfg.Width, cfg.Height, cfg.Supersample)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(ctx, batch.Config{
		OutputDir:    cfg.OutputDir,
		Width:        cfg.Width,
		Height:       cfg.Height,
		Supersample:  cfg.Supersample,
		Workers:      cfg.Workers,
		Background:   bg,
		Angles:       angles,
		Loader:       texCache,
		SceneFormat:  format,
		ContactSheet: o.sheet,
		Logger:       logger,
	}, looks)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())

	// Count results
	success := 0
	var failures []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failures = append(failures, r)
		}
	}
	fmt.Printf("Rendered: %d/%d\n", success, len(results))

	if len(failures) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failures))
		for _, e := range failures[:min(20, len(failures))] {
			fmt.Printf("  %s @ %.0f°: %s\n", e.Look.Name, e.Angle, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	err = os.MkdirAll(cfg.OutputDir, 0755)
	if err == nil {
		err = batch.WriteManifest(manifestPath, results)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	return len(failures) > 0
}
