package scene

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"wardrobe-tryon/internal/body"
	"wardrobe-tryon/internal/garment"
	"wardrobe-tryon/internal/highlight"
	"wardrobe-tryon/internal/measure"
	"wardrobe-tryon/internal/mesh"
	"wardrobe-tryon/internal/scale"
	"wardrobe-tryon/internal/texture"
)

// Options configures a Composer.
type Options struct {
	Logger *slog.Logger
	// Loader resolves custom garment textures. Without one, textured items
	// fall back to their color.
	Loader texture.Loader
	// OnRebuild is called with every new scene, outside the composer's lock.
	OnRebuild func(*Scene)
	// Animation overrides DefaultAnimation when non-zero.
	Animation Animation
	// Initial overrides DefaultState.
	Initial *State
}

// Stats counts composer activity.
type Stats struct {
	Rebuilds     uint64
	LoadsStarted uint64
	LoadsFailed  uint64
	LoadsStale   uint64
}

type texState struct {
	img *image.NRGBA
	err error
}

// Composer owns the try-on state and rebuilds the scene wholesale, and
// synchronously, whenever any input changes. Readers take the latest scene
// with Current; texture loads run in the background and trigger a follow-up
// rebuild when they land.
type Composer struct {
	mu      sync.Mutex
	state   State
	gen     uint64
	stats   Stats
	builder garment.Builder

	textures map[string]texState
	requests map[string]uint64 // texture ref → generation of the load in flight
	reqGen   uint64

	phase     atomic.Int32
	current   atomic.Pointer[Scene]
	loads     sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	loader    texture.Loader
	onRebuild func(*Scene)
	anim      Animation
	logger    *slog.Logger
}

// NewComposer creates a composer and builds the initial scene.
func NewComposer(opts Options) *Composer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	anim := opts.Animation
	if anim == (Animation{}) {
		anim = DefaultAnimation
	}
	st := DefaultState()
	if opts.Initial != nil {
		st = opts.Initial.clone()
		if err := st.Measurements.Complete(); err != nil {
			logger.Warn("initial measurements unusable, using defaults", "error", err)
			st.Measurements = measure.Default()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Composer{
		state:     st,
		builder:   garment.Builder{Logger: logger},
		textures:  make(map[string]texState),
		requests:  make(map[string]uint64),
		ctx:       ctx,
		cancel:    cancel,
		loader:    opts.Loader,
		onRebuild: opts.OnRebuild,
		anim:      anim,
		logger:    logger,
	}
	c.update(func(*State) error { return nil })
	return c
}

// Close cancels in-flight texture loads and waits for them to return.
func (c *Composer) Close() {
	c.cancel()
	c.loads.Wait()
}

// Wait blocks until every texture load started so far has settled.
func (c *Composer) Wait() {
	c.loads.Wait()
}

// Current returns the latest scene. It never returns nil.
func (c *Composer) Current() *Scene {
	return c.current.Load()
}

// Phase reports whether a rebuild is running.
func (c *Composer) Phase() Phase {
	return Phase(c.phase.Load())
}

// State returns a copy of the current inputs.
func (c *Composer) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Stats returns a snapshot of the activity counters.
func (c *Composer) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// SetMeasurements replaces the whole measurement vector. Values outside a
// measurement's bounds are clamped; non-finite values and vectors with
// unpopulated slots are rejected and leave the state untouched.
func (c *Composer) SetMeasurements(v measure.Vector) error {
	if err := v.Complete(); err != nil {
		return err
	}
	next := measure.Default()
	for i, m := range v {
		if err := next.Set(measure.Key(i), m.Value); err != nil {
			return err
		}
	}
	return c.update(func(s *State) error {
		s.Measurements = next
		return nil
	})
}

// SetMeasurement changes one measurement, clamped into its bounds.
func (c *Composer) SetMeasurement(k measure.Key, value float64) error {
	return c.update(func(s *State) error {
		return s.Measurements.Set(k, value)
	})
}

// ApplyPreset replaces all ten measurements with a body type preset.
func (c *Composer) ApplyPreset(p measure.Preset) error {
	return c.update(func(s *State) error {
		return s.Measurements.ApplyPreset(p)
	})
}

// SetRotation sets the avatar's rotation about the vertical axis, in degrees.
func (c *Composer) SetRotation(deg float64) error {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return fmt.Errorf("scene: rotation %v is not finite", deg)
	}
	return c.update(func(s *State) error {
		s.RotationDeg = deg
		return nil
	})
}

// SetHighlight changes the emphasized measurement.
func (c *Composer) SetHighlight(sel highlight.Selector) error {
	return c.update(func(s *State) error {
		s.Highlight = sel
		return nil
	})
}

// SelectGarment wears item, first taking off anything in the same category.
// Selecting an item that is already worn moves it to the end.
func (c *Composer) SelectGarment(item garment.Item) error {
	slot := item.Slot()
	return c.update(func(s *State) error {
		kept := s.Selected[:0:0]
		for _, it := range s.Selected {
			if it.Slot() != slot && it.ID != item.ID {
				kept = append(kept, it)
			}
		}
		s.Selected = append(kept, item)
		return nil
	})
}

// DeselectGarment takes off the item with the given id. It reports whether
// anything was removed.
func (c *Composer) DeselectGarment(id string) bool {
	removed := false
	c.update(func(s *State) error {
		kept := s.Selected[:0:0]
		for _, it := range s.Selected {
			if it.ID == id {
				removed = true
				continue
			}
			kept = append(kept, it)
		}
		s.Selected = kept
		return nil
	})
	return removed
}

// Frame returns the root transform for the current animation frame. The
// breathing phase depends only on elapsed time, so rebuilds never reset it.
func (c *Composer) Frame(elapsed time.Duration) Frame {
	return Frame{
		Elapsed:  elapsed,
		YOffset:  c.anim.Offset(elapsed),
		Rotation: RootRotation(c.Current().RotationDeg),
	}
}

// update applies mutate to a copy of the state and, if it succeeds, commits
// the copy and rebuilds.
func (c *Composer) update(mutate func(*State) error) error {
	c.mu.Lock()
	next := c.state.clone()
	if err := mutate(&next); err != nil {
		c.mu.Unlock()
		return err
	}
	c.state = next
	sc := c.rebuildLocked()
	c.mu.Unlock()

	if c.onRebuild != nil && sc != nil {
		c.onRebuild(sc)
	}
	return nil
}

// rebuildLocked discards the previous scene and derives a new one from the
// state. Must be called with c.mu held.
func (c *Composer) rebuildLocked() *Scene {
	c.phase.Store(int32(Rebuilding))
	defer c.phase.Store(int32(Idle))

	f, err := scale.Derive(c.state.Measurements)
	if err != nil {
		// State is validated on the way in; keep the last good scene.
		c.logger.Error("scene rebuild skipped", "error", err)
		return nil
	}

	parts := body.Build(f)
	set := highlight.Compute(c.state.Highlight, parts)
	parts = highlight.Apply(parts, set)

	garments := c.builder.BuildAll(c.state.Selected, f)
	c.resolveTexturesLocked(garments)

	c.gen++
	c.stats.Rebuilds++
	sc := &Scene{
		Generation:  c.gen,
		Factors:     f,
		Body:        parts,
		Garments:    garments,
		Emphasized:  set,
		RotationDeg: c.state.RotationDeg,
	}
	sc.Graph = BuildGraph(sc.Meshes())
	c.current.Store(sc)
	return sc
}

// resolveTexturesLocked swaps decoded textures into garment materials, starts
// loads for references not seen yet, and forgets loads no worn item needs.
func (c *Composer) resolveTexturesLocked(garments []mesh.PositionedMesh) {
	wanted := make(map[string]bool)
	for _, it := range c.state.Selected {
		if it.CustomTexture != "" {
			wanted[it.CustomTexture] = true
		}
	}

	for i := range garments {
		m := &garments[i]
		ref := m.Material.TextureRef
		if ref == "" {
			continue
		}
		ts, ok := c.textures[ref]
		if !ok && c.loader == nil {
			ts, ok = texState{err: errNoLoader}, true
			c.textures[ref] = ts
			c.logger.Warn("no texture loader, using item color", "ref", ref)
		}
		switch {
		case !ok:
			c.requestLocked(ref)
		case ts.err != nil:
			m.Material = mesh.Material{Color: c.itemColor(m.ID), TextureRef: ref}
		default:
			m.Material.Texture = ts.img
			m.Material.Placeholder = false
		}
	}

	for ref := range c.requests {
		if !wanted[ref] {
			delete(c.requests, ref)
		}
	}
}

var (
	errNoLoader = errors.New("scene: no texture loader configured")
	errNoImage  = errors.New("scene: texture loader returned no image")
)

// itemColor finds the worn item a garment mesh was built from and returns its
// solid color.
func (c *Composer) itemColor(meshID string) color.NRGBA {
	for _, it := range c.state.Selected {
		if strings.HasPrefix(meshID, garment.IDPrefix+it.ID+"/") {
			return c.builder.Color(it)
		}
	}
	return mesh.Neutral
}

// requestLocked starts a background load for ref unless one is in flight.
// Each request is tagged with a fresh generation; a result whose tag no
// longer matches was superseded and is dropped.
func (c *Composer) requestLocked(ref string) {
	if _, inFlight := c.requests[ref]; inFlight {
		return
	}
	c.reqGen++
	gen := c.reqGen
	c.requests[ref] = gen
	c.stats.LoadsStarted++

	c.loads.Add(1)
	go c.load(ref, gen)
}

func (c *Composer) load(ref string, gen uint64) {
	defer c.loads.Done()

	img, err := c.loader.Load(c.ctx, ref)
	if c.ctx.Err() != nil {
		return
	}
	if err == nil && img == nil {
		err = errNoImage
	}

	c.mu.Lock()
	if cur, ok := c.requests[ref]; !ok || cur != gen {
		c.stats.LoadsStale++
		c.mu.Unlock()
		c.logger.Debug("discarding stale texture", "ref", ref, "generation", gen)
		return
	}
	delete(c.requests, ref)
	c.textures[ref] = texState{img: img, err: err}
	if err != nil {
		c.stats.LoadsFailed++
		c.logger.Warn("texture load failed, using item color", "ref", ref, "error", err)
	}
	sc := c.rebuildLocked()
	c.mu.Unlock()

	if c.onRebuild != nil && sc != nil {
		c.onRebuild(sc)
	}
}
