package mesh

import (
	"image"
	"image/color"

	"wardrobe-tryon/internal/mathutil"
)

// Kind is the primitive shape of a mesh.
type Kind int

const (
	Sphere Kind = iota
	Cylinder
	Box
	Capsule
)

func (k Kind) String() string {
	switch k {
	case Sphere:
		return "sphere"
	case Cylinder:
		return "cylinder"
	case Box:
		return "box"
	case Capsule:
		return "capsule"
	default:
		return "unknown"
	}
}

// Primitive holds the dimensions of a shape centered on its local origin.
// Cylinders and capsules run along the local Y axis.
//
//	Sphere:   Radius
//	Cylinder: RadiusTop, RadiusBottom, Height
//	Capsule:  Radius, Height (length of the straight section)
//	Box:      Width, Height, Depth
type Primitive struct {
	Kind         Kind
	Radius       float64
	RadiusTop    float64
	RadiusBottom float64
	Height       float64
	Width        float64
	Depth        float64
}

// Layer separates body geometry from clothing drawn over it.
type Layer int

const (
	LayerBody Layer = iota
	LayerGarment
)

func (l Layer) String() string {
	if l == LayerGarment {
		return "garment"
	}
	return "body"
}

// Material is the surface of a mesh.
type Material struct {
	Color color.NRGBA
	// TextureRef is the opaque reference of a custom texture, if any.
	TextureRef string
	// Texture is the decoded image once TextureRef has loaded.
	Texture *image.NRGBA
	// Placeholder marks a neutral stand-in shown while a texture is pending.
	Placeholder bool
}

// Neutral is the placeholder surface color.
var Neutral = color.NRGBA{R: 190, G: 190, B: 195, A: 255}

// Skin is the default mannequin surface color.
var Skin = color.NRGBA{R: 224, G: 189, B: 160, A: 255}

// PositionedMesh is one primitive placed in the avatar's root space.
type PositionedMesh struct {
	ID     string
	Name   string
	Region Region
	Layer  Layer
	// Parent names the mesh this one hangs from in the scene graph; empty for roots.
	Parent     string
	Primitive  Primitive
	Position   mathutil.Vec3
	Rotation   mathutil.Vec3 // Euler XYZ, radians
	Scale      mathutil.Vec3
	Material   Material
	Emphasized bool
}

// Frame returns the rigid placement of the mesh: its rotation and position,
// without scale.
func (m *PositionedMesh) Frame() mathutil.Mat4 {
	return mathutil.FromMat3Translation(mathutil.Euler(m.Rotation), m.Position)
}

// Extent returns the per-axis scale, reading the zero value as unit scale.
func (m *PositionedMesh) Extent() mathutil.Vec3 {
	if m.Scale == (mathutil.Vec3{}) {
		return mathutil.One
	}
	return m.Scale
}

// Model returns the local-to-root transform.
func (m *PositionedMesh) Model() mathutil.Mat4 {
	return mathutil.TRS(m.Position, mathutil.Euler(m.Rotation), m.Extent())
}
