// Package export encodes built scenes for rendering surfaces that live
// outside this process.
package export

import (
	"fmt"
	"image/color"

	"wardrobe-tryon/internal/measure"
	"wardrobe-tryon/internal/mesh"
	"wardrobe-tryon/internal/scene"
)

// Snapshot is the wire form of one scene.
type Snapshot struct {
	Generation  uint64             `json:"generation" msgpack:"generation"`
	RotationDeg float64            `json:"rotation_deg" msgpack:"rotation_deg"`
	Factors     map[string]float64 `json:"factors" msgpack:"factors"`
	Depth       float64            `json:"depth_factor" msgpack:"depth_factor"`
	Width       float64            `json:"width_factor" msgpack:"width_factor"`
	Emphasized  []string           `json:"emphasized,omitempty" msgpack:"emphasized,omitempty"`
	Meshes      []Mesh             `json:"meshes" msgpack:"meshes"`
}

// Mesh is one placed primitive. World is the row-major root-space transform.
type Mesh struct {
	ID          string      `json:"id" msgpack:"id"`
	Name        string      `json:"name" msgpack:"name"`
	Layer       string      `json:"layer" msgpack:"layer"`
	Region      string      `json:"region,omitempty" msgpack:"region,omitempty"`
	Parent      string      `json:"parent,omitempty" msgpack:"parent,omitempty"`
	Primitive   Primitive   `json:"primitive" msgpack:"primitive"`
	Position    [3]float64  `json:"position" msgpack:"position"`
	Rotation    [3]float64  `json:"rotation" msgpack:"rotation"`
	Scale       [3]float64  `json:"scale" msgpack:"scale"`
	World       [16]float64 `json:"world" msgpack:"world"`
	Color       string      `json:"color" msgpack:"color"`
	TextureRef  string      `json:"texture_ref,omitempty" msgpack:"texture_ref,omitempty"`
	Textured    bool        `json:"textured,omitempty" msgpack:"textured,omitempty"`
	Placeholder bool        `json:"placeholder,omitempty" msgpack:"placeholder,omitempty"`
	Emphasized  bool        `json:"emphasized,omitempty" msgpack:"emphasized,omitempty"`
}

// Primitive carries only the dimensions that apply to its kind.
type Primitive struct {
	Kind         string  `json:"kind" msgpack:"kind"`
	Radius       float64 `json:"radius,omitempty" msgpack:"radius,omitempty"`
	RadiusTop    float64 `json:"radius_top,omitempty" msgpack:"radius_top,omitempty"`
	RadiusBottom float64 `json:"radius_bottom,omitempty" msgpack:"radius_bottom,omitempty"`
	Height       float64 `json:"height,omitempty" msgpack:"height,omitempty"`
	Width        float64 `json:"width,omitempty" msgpack:"width,omitempty"`
	Depth        float64 `json:"depth,omitempty" msgpack:"depth,omitempty"`
}

// FromScene flattens sc into a Snapshot. Meshes keep Scene.Meshes order.
func FromScene(sc *scene.Scene) Snapshot {
	s := Snapshot{
		Generation:  sc.Generation,
		RotationDeg: sc.RotationDeg,
		Factors:     make(map[string]float64, measure.NumKeys),
		Depth:       sc.Factors.Depth,
		Width:       sc.Factors.Width,
		Emphasized:  sc.Emphasized.IDs(),
	}
	for _, k := range measure.Keys() {
		s.Factors[k.String()] = sc.Factors.Of(k)
	}

	meshes := sc.Meshes()
	s.Meshes = make([]Mesh, len(meshes))
	for i := range meshes {
		m := &meshes[i]
		out := Mesh{
			ID:          m.ID,
			Name:        m.Name,
			Layer:       m.Layer.String(),
			Parent:      m.Parent,
			Primitive:   primitive(m.Primitive),
			Position:    m.Position,
			Rotation:    m.Rotation,
			Scale:       m.Scale,
			Color:       Hex(m.Material.Color),
			TextureRef:  m.Material.TextureRef,
			Textured:    m.Material.Texture != nil,
			Placeholder: m.Material.Placeholder,
			Emphasized:  m.Emphasized,
		}
		if m.Region != mesh.RegionUnknown {
			out.Region = m.Region.String()
		}
		if sc.Graph != nil && i < len(sc.Graph.World) {
			out.World = sc.Graph.World[i]
		} else {
			out.World = m.Model()
		}
		s.Meshes[i] = out
	}
	return s
}

func primitive(p mesh.Primitive) Primitive {
	out := Primitive{Kind: p.Kind.String()}
	switch p.Kind {
	case mesh.Sphere:
		out.Radius = p.Radius
	case mesh.Capsule:
		out.Radius, out.Height = p.Radius, p.Height
	case mesh.Cylinder:
		out.RadiusTop, out.RadiusBottom, out.Height = p.RadiusTop, p.RadiusBottom, p.Height
	case mesh.Box:
		out.Width, out.Height, out.Depth = p.Width, p.Height, p.Depth
	}
	return out
}

// Hex formats an opaque color as #rrggbb.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
