package raster

import (
	"image"
	"image/color"

	"wardrobe-tryon/internal/mathutil"
	"wardrobe-tryon/internal/mesh"
	"wardrobe-tryon/internal/scene"
)

// Framed world height. The tallest allowed body, plus breathing travel, fits
// between Bottom and Top, so sizes compare across renders.
const (
	DefaultTop    = 2.15
	DefaultBottom = -0.05
)

// Options controls one render.
type Options struct {
	Width, Height int
	// Supersample renders at N× resolution; callers downsample afterwards.
	Supersample int
	Background  color.NRGBA
	Light       *LightConfig
	// Top and Bottom bound the framed world height; both zero means the defaults.
	Top, Bottom float64
}

func (o Options) withDefaults() Options {
	if o.Supersample < 1 {
		o.Supersample = 1
	}
	if o.Top == 0 && o.Bottom == 0 {
		o.Top, o.Bottom = DefaultTop, DefaultBottom
	}
	if o.Light == nil {
		lc := DefaultLightConfig()
		o.Light = &lc
	}
	return o
}

// RenderScene rasterizes every mesh of sc under the frame's root transform
// with an orthographic camera tilted slightly downward. The framing is fixed
// rather than fitted, so a taller body renders taller. The returned image is
// Width×Supersample by Height×Supersample.
func RenderScene(sc *scene.Scene, frame scene.Frame, opts Options) *image.NRGBA {
	opts = opts.withDefaults()
	ss := opts.Supersample
	rw, rh := opts.Width*ss, opts.Height*ss
	if rw <= 0 || rh <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}

	fb := NewFrameBuffer(rw, rh)
	if opts.Background.A > 0 {
		fb.Fill(opts.Background)
	}
	if sc == nil {
		return fb.Image()
	}

	// Tilt about the middle of the frame so the body stays centered.
	mid := mathutil.Vec3{0, (opts.Top + opts.Bottom) / 2, 0}
	view := mathutil.Mat4Mul(
		mathutil.FromMat3Translation(mathutil.CameraTilt, mid.Sub(mathutil.CameraTilt.MulVec3(mid))),
		frame.Root(),
	)

	margin := float64(8 * ss)
	scale := (float64(rh) - 2*margin) / (opts.Top - opts.Bottom)
	project := func(v mathutil.Vec3) (x, y, z float64) {
		return float64(rw)/2 + v[0]*scale, margin + (opts.Top-v[1])*scale, v[2] * scale
	}

	geoms := make(map[mesh.Primitive]mesh.Geometry)
	meshes := sc.Meshes()
	var verts []Vertex
	for i := range meshes {
		m := &meshes[i]
		geo, ok := geoms[m.Primitive]
		if !ok {
			geo = mesh.Tessellate(m.Primitive)
			geoms[m.Primitive] = geo
		}
		if len(geo.Tris) == 0 {
			continue
		}

		model := m.Model()
		if sc.Graph != nil && i < len(sc.Graph.World) {
			model = sc.Graph.World[i]
		}
		mvp := mathutil.Mat4Mul(view, model)

		verts = verts[:0]
		for j, v := range geo.Verts {
			x, y, z := project(mvp.MulPoint(v))
			verts = append(verts, Vertex{X: x, Y: y, Z: z, U: geo.UVs[j][0], V: geo.UVs[j][1]})
		}

		surf := Surface{Tex: m.Material.Texture, Color: m.Material.Color, Emphasized: m.Emphasized}
		for _, t := range geo.Tris {
			RasterizeTriangle(fb, verts[t[0]], verts[t[1]], verts[t[2]], &surf, opts.Light)
		}
	}

	return fb.Image()
}
