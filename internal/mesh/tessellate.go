package mesh

import (
	"math"

	"wardrobe-tryon/internal/mathutil"
)

// Tessellation resolution. Fixed so geometry is reproducible.
const (
	Segments = 20 // around the vertical axis
	Rings    = 12 // pole to pole on spheres
)

// Geometry is a triangle mesh in the primitive's local space.
type Geometry struct {
	Verts []mathutil.Vec3
	UVs   [][2]float64 // one per vertex
	Tris  [][3]int
}

// Tessellate converts a primitive into triangles.
func Tessellate(p Primitive) Geometry {
	var g Geometry
	switch p.Kind {
	case Sphere:
		g.lathe(sphereProfile(p.Radius, 0, 0))
	case Cylinder:
		h := p.Height / 2
		g.lathe([][2]float64{{0, h}, {p.RadiusTop, h}, {p.RadiusBottom, -h}, {0, -h}})
	case Capsule:
		h := p.Height / 2
		g.lathe(sphereProfile(p.Radius, h, -h))
	case Box:
		g.box(p.Width/2, p.Height/2, p.Depth/2)
	}
	return g
}

// sphereProfile returns the (radius, y) outline of a sphere split at the
// equator, the upper half lifted by top and the lower half by bottom.
func sphereProfile(r, top, bottom float64) [][2]float64 {
	out := make([][2]float64, 0, Rings+2)
	for i := 0; i <= Rings; i++ {
		phi := math.Pi * float64(i) / Rings
		rad, y := r*math.Sin(phi), r*math.Cos(phi)
		if i == 0 || i == Rings {
			rad = 0
		}
		if i <= Rings/2 {
			y += top
		} else {
			y += bottom
		}
		out = append(out, [2]float64{rad, y})
		if i == Rings/2 && top != bottom {
			out = append(out, [2]float64{r, bottom})
		}
	}
	return out
}

// lathe revolves a (radius, y) profile, ordered top to bottom, around Y.
func (g *Geometry) lathe(profile [][2]float64) {
	n := len(profile)
	base := len(g.Verts)
	for i, pt := range profile {
		v := float64(i) / float64(n-1)
		for s := 0; s <= Segments; s++ {
			theta := 2 * math.Pi * float64(s) / Segments
			g.Verts = append(g.Verts, mathutil.Vec3{pt[0] * math.Sin(theta), pt[1], pt[0] * math.Cos(theta)})
			g.UVs = append(g.UVs, [2]float64{float64(s) / Segments, v})
		}
	}
	row := Segments + 1
	for i := 0; i < n-1; i++ {
		for s := 0; s < Segments; s++ {
			a := base + i*row + s
			b := a + row
			if profile[i][0] > 0 {
				g.Tris = append(g.Tris, [3]int{a, b, a + 1})
			}
			if profile[i+1][0] > 0 {
				g.Tris = append(g.Tris, [3]int{a + 1, b, b + 1})
			}
		}
	}
}

var boxFaces = [6][4]mathutil.Vec3{
	{{1, 1, 1}, {1, -1, 1}, {1, -1, -1}, {1, 1, -1}},
	{{-1, 1, -1}, {-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}},
	{{-1, 1, -1}, {-1, 1, 1}, {1, 1, 1}, {1, 1, -1}},
	{{-1, -1, 1}, {-1, -1, -1}, {1, -1, -1}, {1, -1, 1}},
	{{-1, 1, 1}, {-1, -1, 1}, {1, -1, 1}, {1, 1, 1}},
	{{1, 1, -1}, {1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}},
}

var quadUVs = [4][2]float64{{0, 0}, {0, 1}, {1, 1}, {1, 0}}

func (g *Geometry) box(hx, hy, hz float64) {
	half := mathutil.Vec3{hx, hy, hz}
	for _, face := range boxFaces {
		base := len(g.Verts)
		for i, c := range face {
			g.Verts = append(g.Verts, c.Mul(half))
			g.UVs = append(g.UVs, quadUVs[i])
		}
		g.Tris = append(g.Tris, [3]int{base, base + 1, base + 2}, [3]int{base, base + 2, base + 3})
	}
}

// Bounds returns the axis-aligned extent of the vertices.
func (g *Geometry) Bounds() (lo, hi mathutil.Vec3) {
	if len(g.Verts) == 0 {
		return
	}
	lo, hi = g.Verts[0], g.Verts[0]
	for _, v := range g.Verts[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = math.Min(lo[k], v[k])
			hi[k] = math.Max(hi[k], v[k])
		}
	}
	return lo, hi
}
