package raster

import (
	"image"
	"image/color"
	"math"
)

// Vertex is a projected vertex: pixel X/Y, depth Z (larger is nearer) and
// texture coordinates.
type Vertex struct {
	X, Y, Z float64
	U, V    float64
}

// Surface is what a triangle is painted with. Tex wins over Color when set.
type Surface struct {
	Tex        *image.NRGBA
	Color      color.NRGBA
	Emphasized bool
}

// RasterizeTriangle rasterizes a single triangle with texture mapping, z-buffer,
// sRGB color space, lighting, and ACES tone mapping.
//
// The pixel loop does not allocate.
// All lighting is flat-shaded (per-face, not per-pixel).
func RasterizeTriangle(fb *FrameBuffer, p0, p1, p2 Vertex, s *Surface, lc *LightConfig) {
	x0, y0, z0 := p0.X, p0.Y, p0.Z
	x1, y1, z1 := p1.X, p1.Y, p1.Z
	x2, y2, z2 := p2.X, p2.Y, p2.Z

	// Face normal for flat shading
	e1x, e1y, e1z := x1-x0, y1-y0, z1-z0
	e2x, e2y, e2z := x2-x0, y2-y0, z2-z0
	nx := e1y*e2z - e1z*e2y
	ny := e1z*e2x - e1x*e2z
	nz := e1x*e2y - e1y*e2x
	nl := math.Sqrt(nx*nx + ny*ny + nz*nz)
	if nl < 1e-8 {
		return
	}
	invNL := 1.0 / nl
	// Screen Y grows downward; flip back so the key light stays above.
	shade := lc.ComputeShade([3]float64{nx * invNL, -ny * invNL, nz * invNL})

	// Bounding box
	minX := int(math.Min(math.Min(x0, x1), x2))
	maxX := int(math.Max(math.Max(x0, x1), x2)) + 1
	minY := int(math.Min(math.Min(y0, y1), y2))
	maxY := int(math.Max(math.Max(y0, y1), y2)) + 1

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	// Precompute edge deltas
	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	tex := s.Tex
	base := s.Color
	if s.Emphasized {
		base = lc.Tint(base)
	}

	exposure := lc.Exposure
	invGamma := lc.InvGamma

	// Pixel loop
	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}

			var c color.NRGBA
			if tex != nil {
				u := w0*p0.U + w1*p1.U + w2*p2.U
				v := w0*p0.V + w1*p1.V + w2*p2.V
				c.R, c.G, c.B, c.A = SampleTexture(tex, u, v)
				if s.Emphasized {
					c = lc.Tint(c)
				}
			} else {
				c = base
			}

			// Skip transparent texels
			if c.A < 8 {
				continue
			}
			fb.ZBuf[zIdx] = z

			// sRGB decode → linear (LUT), shade, tone map, encode
			tr := ACESTonemap(srgbToLinear[c.R] * shade * exposure)
			tg := ACESTonemap(srgbToLinear[c.G] * shade * exposure)
			tb := ACESTonemap(srgbToLinear[c.B] * shade * exposure)

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = clamp255(math.Pow(tr, invGamma) * 255)
			fb.Color[pxIdx+1] = clamp255(math.Pow(tg, invGamma) * 255)
			fb.Color[pxIdx+2] = clamp255(math.Pow(tb, invGamma) * 255)
			fb.Color[pxIdx+3] = 255
		}
	}
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
