package body

import (
	"wardrobe-tryon/internal/mathutil"
	"wardrobe-tryon/internal/mesh"
	"wardrobe-tryon/internal/scale"
)

// IDPrefix namespaces body mesh IDs in a scene.
const IDPrefix = "body/"

// Build places every template part for the given factors. The result always
// has PartCount entries in Template order; identical factors give identical output.
func Build(f scale.Factors) []mesh.PositionedMesh {
	parts := make([]mesh.PositionedMesh, len(Template))
	for i := range Template {
		parts[i] = Template[i].Place(f)
	}
	return parts
}

// Place sizes and positions one part. Girth follows the part's selectors,
// vertical placement follows the height factor alone.
func (s *PartSpec) Place(f scale.Factors) mesh.PositionedMesh {
	prim := s.Base
	switch prim.Kind {
	case mesh.Sphere, mesh.Capsule:
		prim.Radius = s.Radius.Apply(f, prim.Radius)
		prim.Height = s.Length.Apply(f, prim.Height)
	case mesh.Cylinder:
		prim.RadiusTop = s.Radius.Apply(f, prim.RadiusTop)
		prim.RadiusBottom = s.RadiusBottom.Apply(f, prim.RadiusBottom)
		prim.Height = s.Length.Apply(f, prim.Height)
	case mesh.Box:
		prim.Width = s.Width.Apply(f, prim.Width)
		prim.Height = s.Length.Apply(f, prim.Height)
	}

	ratio := s.DepthRatio
	if ratio == 0 {
		ratio = 1
	}

	col := s.Color
	if col.A == 0 {
		col = mesh.Skin
	}

	return mesh.PositionedMesh{
		ID:        IDPrefix + s.Name,
		Name:      s.Name,
		Region:    s.Region,
		Layer:     mesh.LayerBody,
		Parent:    s.Parent,
		Primitive: prim,
		Position:  mathutil.Vec3{s.Pos[0], s.Pos[1] * f.Height(), s.Pos[2]},
		Rotation:  s.Rotation,
		Scale:     mathutil.Vec3{1, 1, s.Depth.Apply(f, ratio)},
		Material:  mesh.Material{Color: col},
	}
}

// Find returns the part named name, or nil.
func Find(parts []mesh.PositionedMesh, name string) *mesh.PositionedMesh {
	for i := range parts {
		if parts[i].Name == name {
			return &parts[i]
		}
	}
	return nil
}
