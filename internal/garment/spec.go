package garment

import (
	"wardrobe-tryon/internal/body"
	"wardrobe-tryon/internal/mathutil"
	"wardrobe-tryon/internal/measure"
	"wardrobe-tryon/internal/mesh"
	"wardrobe-tryon/internal/scale"
)

// Spec lists the primitives one garment shape emits. Pieces reuse the body
// part template so garments scale exactly like the body they cover.
type Spec struct {
	Pieces []body.PartSpec
}

var (
	height = scale.By(measure.Height)
	chest  = scale.By(measure.Chest)
	waist  = scale.By(measure.Waist)
	hips   = scale.By(measure.Hips)
)

func cyl(top, bottom, h float64) mesh.Primitive {
	return mesh.Primitive{Kind: mesh.Cylinder, RadiusTop: top, RadiusBottom: bottom, Height: h}
}

func topTorso(top, bottom, h, y float64) body.PartSpec {
	return body.PartSpec{Name: "torso", Base: cyl(top, bottom, h),
		Radius: chest, RadiusBottom: waist, Length: height, Depth: scale.DepthOf,
		Pos: mathutil.Vec3{0, y, 0}, DepthRatio: 0.7}
}

func sleeves(top, bottom, h, y float64) []body.PartSpec {
	left := body.PartSpec{Name: "left_sleeve", Base: cyl(top, bottom, h),
		Radius: chest, RadiusBottom: chest, Length: height,
		Pos: mathutil.Vec3{-body.ArmX, y, 0}}
	right := left
	right.Name = "right_sleeve"
	right.Pos[0] = body.ArmX
	return []body.PartSpec{left, right}
}

func hipBand(top, bottom, h, y float64) body.PartSpec {
	return body.PartSpec{Name: "hip", Base: cyl(top, bottom, h),
		Radius: waist, RadiusBottom: hips, Length: height, Depth: scale.DepthOf,
		Pos: mathutil.Vec3{0, y, 0}, DepthRatio: 0.72}
}

func legs(top, bottom, h, y float64) []body.PartSpec {
	left := body.PartSpec{Name: "left_leg", Base: cyl(top, bottom, h),
		Radius: hips, RadiusBottom: hips, Length: height,
		Pos: mathutil.Vec3{-body.LegX, y, 0}}
	right := left
	right.Name = "right_leg"
	right.Pos[0] = body.LegX
	return []body.PartSpec{left, right}
}

func pieces(first body.PartSpec, rest ...[]body.PartSpec) []body.PartSpec {
	out := []body.PartSpec{first}
	for _, r := range rest {
		out = append(out, r...)
	}
	return out
}

var (
	shortSleeveTop = Spec{Pieces: pieces(topTorso(0.172, 0.150, 0.44, 1.27), sleeves(0.058, 0.052, 0.14, 1.38))}
	longSleeveTop  = Spec{Pieces: pieces(topTorso(0.172, 0.150, 0.44, 1.27), sleeves(0.056, 0.044, 0.54, 1.18))}
	jacket         = Spec{Pieces: pieces(topTorso(0.188, 0.168, 0.50, 1.23), sleeves(0.064, 0.054, 0.56, 1.17))}
	longBottoms    = Spec{Pieces: pieces(hipBand(0.146, 0.160, 0.18, 0.96), legs(0.092, 0.062, 0.84, 0.45))}
	shortBottoms   = Spec{Pieces: pieces(hipBand(0.146, 0.160, 0.18, 0.96), legs(0.095, 0.086, 0.26, 0.74))}
	skirt          = Spec{Pieces: []body.PartSpec{{Name: "skirt", Base: cyl(0.146, 0.26, 0.42),
		Radius: waist, RadiusBottom: hips, Length: height, Depth: scale.DepthOf,
		Pos: mathutil.Vec3{0, 0.84, 0}, DepthRatio: 0.8}}}
)

// Specs is the dispatch table. Types missing from it emit nothing.
var Specs = map[Type]Spec{
	TShirt:   shortSleeveTop,
	Shirt:    longSleeveTop,
	Blouse:   longSleeveTop,
	Sweater:  longSleeveTop,
	Pants:    longBottoms,
	Jeans:    longBottoms,
	Trousers: longBottoms,
	Shorts:   shortBottoms,
	Skirt:    skirt,
	Jacket:   jacket,
}
