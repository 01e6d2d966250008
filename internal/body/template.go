package body

import (
	"image/color"
	"math"

	"wardrobe-tryon/internal/mathutil"
	"wardrobe-tryon/internal/measure"
	"wardrobe-tryon/internal/mesh"
	"wardrobe-tryon/internal/scale"
)

// PartSpec is the template for one body primitive. Base dimensions describe
// the reference body; each selector scales one dimension. A nil selector
// keeps the base value.
type PartSpec struct {
	Name   string
	Region mesh.Region
	Parent string
	Base   mesh.Primitive

	Radius       scale.Selector // Radius, or RadiusTop for cylinders
	RadiusBottom scale.Selector
	Length       scale.Selector // Height
	Width        scale.Selector
	Depth        scale.Selector // Z scale of the placed mesh

	// DepthRatio flattens round primitives front to back (0 means 1).
	DepthRatio float64
	Pos        mathutil.Vec3 // reference-body position; Y is scaled by height
	Rotation   mathutil.Vec3
	Color      color.NRGBA // zero means mesh.Skin
}

var (
	height  = scale.By(measure.Height)
	chest   = scale.By(measure.Chest)
	stomach = scale.By(measure.Stomach)
	waist   = scale.By(measure.Waist)
	hips    = scale.By(measure.Hips)
	thigh   = scale.By(measure.Thigh)
	neck    = scale.By(measure.Neck)
	weight  = scale.By(measure.Weight)
	limb    = scale.Blend([]measure.Key{measure.Weight, measure.Thigh}, []float64{0.5, 0.5})

	hairColor = color.NRGBA{R: 58, G: 40, B: 30, A: 255}
	eyeColor  = color.NRGBA{R: 40, G: 40, B: 48, A: 255}
)

// ArmX and LegX are the lateral offsets of the limbs.
const (
	ArmX = 0.22
	LegX = 0.09
)

// Template is the canonical mannequin, in scene order. Y runs up from the
// soles; the reference body is 1.75 units tall.
var Template = []PartSpec{
	{Name: "head", Region: mesh.RegionHead, Parent: "neck",
		Base: mesh.Primitive{Kind: mesh.Sphere, Radius: 0.10},
		Pos:  mathutil.Vec3{0, 1.65, 0}, DepthRatio: 1.1},
	{Name: "hair", Region: mesh.RegionHair, Parent: "head",
		Base: mesh.Primitive{Kind: mesh.Sphere, Radius: 0.104},
		Pos:  mathutil.Vec3{0, 1.668, -0.012}, DepthRatio: 1.1, Color: hairColor},
	{Name: "left_eye", Region: mesh.RegionEye, Parent: "head",
		Base: mesh.Primitive{Kind: mesh.Sphere, Radius: 0.014},
		Pos:  mathutil.Vec3{-0.035, 1.665, 0.104}, Color: eyeColor},
	{Name: "right_eye", Region: mesh.RegionEye, Parent: "head",
		Base: mesh.Primitive{Kind: mesh.Sphere, Radius: 0.014},
		Pos:  mathutil.Vec3{0.035, 1.665, 0.104}, Color: eyeColor},
	{Name: "neck", Region: mesh.RegionNeck, Parent: "torso_chest",
		Base:   mesh.Primitive{Kind: mesh.Cylinder, RadiusTop: 0.05, RadiusBottom: 0.058, Height: 0.09},
		Radius: neck, RadiusBottom: neck, Length: height,
		Pos: mathutil.Vec3{0, 1.52, 0}},
	{Name: "shoulders", Region: mesh.RegionShoulder, Parent: "torso_chest",
		Base:   mesh.Primitive{Kind: mesh.Capsule, Radius: 0.055, Height: 0.30},
		Radius: weight, Length: scale.WidthOf,
		Pos: mathutil.Vec3{0, 1.45, 0}, Rotation: mathutil.Vec3{0, 0, math.Pi / 2}},
	{Name: "torso_chest", Region: mesh.RegionChest,
		Base:   mesh.Primitive{Kind: mesh.Cylinder, RadiusTop: 0.16, RadiusBottom: 0.145, Height: 0.20},
		Radius: chest, RadiusBottom: stomach, Length: height, Depth: scale.DepthOf,
		Pos: mathutil.Vec3{0, 1.38, 0}, DepthRatio: 0.65},
	{Name: "torso_stomach", Region: mesh.RegionStomach, Parent: "torso_chest",
		Base:   mesh.Primitive{Kind: mesh.Cylinder, RadiusTop: 0.145, RadiusBottom: 0.135, Height: 0.14},
		Radius: stomach, RadiusBottom: waist, Length: height, Depth: scale.DepthOf,
		Pos: mathutil.Vec3{0, 1.21, 0}, DepthRatio: 0.65},
	{Name: "torso_waist", Region: mesh.RegionWaist, Parent: "torso_stomach",
		Base:   mesh.Primitive{Kind: mesh.Cylinder, RadiusTop: 0.135, RadiusBottom: 0.152, Height: 0.12},
		Radius: waist, RadiusBottom: hips, Length: height, Depth: scale.DepthOf,
		Pos: mathutil.Vec3{0, 1.08, 0}, DepthRatio: 0.65},
	{Name: "pelvis", Region: mesh.RegionPelvis, Parent: "torso_waist",
		Base:   mesh.Primitive{Kind: mesh.Cylinder, RadiusTop: 0.152, RadiusBottom: 0.14, Height: 0.14},
		Radius: hips, RadiusBottom: hips, Length: height, Depth: scale.DepthOf,
		Pos: mathutil.Vec3{0, 0.95, 0}, DepthRatio: 0.7},

	{Name: "left_upper_arm", Region: mesh.RegionUpperArm, Parent: "shoulders",
		Base:   mesh.Primitive{Kind: mesh.Cylinder, RadiusTop: 0.045, RadiusBottom: 0.038, Height: 0.30},
		Radius: weight, RadiusBottom: weight, Length: height,
		Pos: mathutil.Vec3{-ArmX, 1.30, 0}},
	{Name: "right_upper_arm", Region: mesh.RegionUpperArm, Parent: "shoulders",
		Base:   mesh.Primitive{Kind: mesh.Cylinder, RadiusTop: 0.045, RadiusBottom: 0.038, Height: 0.30},
		Radius: weight, RadiusBottom: weight, Length: height,
		Pos: mathutil.Vec3{ArmX, 1.30, 0}},
	{Name: "left_lower_arm", Region: mesh.RegionLowerArm, Parent: "left_upper_arm",
		Base:   mesh.Primitive{Kind: mesh.Cylinder, RadiusTop: 0.037, RadiusBottom: 0.03, Height: 0.26},
		Radius: weight, RadiusBottom: weight, Length: height,
		Pos: mathutil.Vec3{-ArmX, 1.02, 0}},
	{Name: "right_lower_arm", Region: mesh.RegionLowerArm, Parent: "right_upper_arm",
		Base:   mesh.Primitive{Kind: mesh.Cylinder, RadiusTop: 0.037, RadiusBottom: 0.03, Height: 0.26},
		Radius: weight, RadiusBottom: weight, Length: height,
		Pos: mathutil.Vec3{ArmX, 1.02, 0}},
	{Name: "left_hand", Region: mesh.RegionHand, Parent: "left_lower_arm",
		Base: mesh.Primitive{Kind: mesh.Box, Width: 0.03, Height: 0.10, Depth: 0.07},
		Length: height,
		Pos:    mathutil.Vec3{-ArmX, 0.84, 0}},
	{Name: "right_hand", Region: mesh.RegionHand, Parent: "right_lower_arm",
		Base: mesh.Primitive{Kind: mesh.Box, Width: 0.03, Height: 0.10, Depth: 0.07},
		Length: height,
		Pos:    mathutil.Vec3{ArmX, 0.84, 0}},

	{Name: "left_thigh", Region: mesh.RegionThigh, Parent: "pelvis",
		Base:   mesh.Primitive{Kind: mesh.Cylinder, RadiusTop: 0.085, RadiusBottom: 0.06, Height: 0.40},
		Radius: thigh, RadiusBottom: limb, Length: height,
		Pos: mathutil.Vec3{-LegX, 0.68, 0}},
	{Name: "right_thigh", Region: mesh.RegionThigh, Parent: "pelvis",
		Base:   mesh.Primitive{Kind: mesh.Cylinder, RadiusTop: 0.085, RadiusBottom: 0.06, Height: 0.40},
		Radius: thigh, RadiusBottom: limb, Length: height,
		Pos: mathutil.Vec3{LegX, 0.68, 0}},
	{Name: "left_lower_leg", Region: mesh.RegionLowerLeg, Parent: "left_thigh",
		Base:   mesh.Primitive{Kind: mesh.Cylinder, RadiusTop: 0.058, RadiusBottom: 0.042, Height: 0.42},
		Radius: limb, RadiusBottom: weight, Length: height,
		Pos: mathutil.Vec3{-LegX, 0.27, 0}},
	{Name: "right_lower_leg", Region: mesh.RegionLowerLeg, Parent: "right_thigh",
		Base:   mesh.Primitive{Kind: mesh.Cylinder, RadiusTop: 0.058, RadiusBottom: 0.042, Height: 0.42},
		Radius: limb, RadiusBottom: weight, Length: height,
		Pos: mathutil.Vec3{LegX, 0.27, 0}},
	{Name: "left_foot", Region: mesh.RegionFoot, Parent: "left_lower_leg",
		Base:  mesh.Primitive{Kind: mesh.Box, Width: 0.09, Height: 0.06, Depth: 0.24},
		Depth: height, Length: height,
		Pos:   mathutil.Vec3{-LegX, 0.03, 0.05}},
	{Name: "right_foot", Region: mesh.RegionFoot, Parent: "right_lower_leg",
		Base:  mesh.Primitive{Kind: mesh.Box, Width: 0.09, Height: 0.06, Depth: 0.24},
		Depth: height, Length: height,
		Pos:   mathutil.Vec3{LegX, 0.03, 0.05}},
}

// PartCount is the number of parts Build always returns. It is 22, not the
// 13 of a mannequin with one mesh per limb segment and no face, because hair,
// both eyes, the shoulder bar, three torso segments, hands and feet are all
// separate parts here. Callers should use PartCount rather than a literal.
var PartCount = len(Template)
