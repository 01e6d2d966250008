package raster

import (
	"image"
	"math"
)

// SampleTexture bilinearly filters tex at (u, v), sampling texel centers.
// Lathed primitives run u once around their axis, so u wraps and the seam
// blends the last column into the first. v runs from collar to hem and
// clamps, so the top and bottom rows never bleed into each other.
// tex must have its origin at (0,0), as texture.Decode guarantees.
func SampleTexture(tex *image.NRGBA, u, v float64) (r, g, b, a uint8) {
	w, h := tex.Rect.Dx(), tex.Rect.Dy()
	if w == 0 || h == 0 {
		return 0, 0, 0, 0
	}

	fx := (u-math.Floor(u))*float64(w) - 0.5
	fy := math.Max(0, math.Min(1, v))*float64(h) - 0.5
	x0, y0 := int(math.Floor(fx)), int(math.Floor(fy))
	dx, dy := fx-float64(x0), fy-float64(y0)

	x1 := (x0 + 1) % w
	x0 = (x0 + w) % w
	y1 := min(y0+1, h-1)
	y0 = max(y0, 0)

	stride := tex.Stride
	pix := tex.Pix

	i00 := y0*stride + x0*4
	i10 := y0*stride + x1*4
	i01 := y1*stride + x0*4
	i11 := y1*stride + x1*4

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	var out [4]uint8
	for c := range out {
		f := float64(pix[i00+c])*w00 + float64(pix[i10+c])*w10 + float64(pix[i01+c])*w01 + float64(pix[i11+c])*w11
		out[c] = uint8(f + 0.5)
	}
	return out[0], out[1], out[2], out[3]
}
