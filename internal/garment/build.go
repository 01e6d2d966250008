package garment

import (
	"image/color"
	"log/slog"

	"wardrobe-tryon/internal/mesh"
	"wardrobe-tryon/internal/scale"
)

// IDPrefix namespaces garment mesh IDs in a scene.
const IDPrefix = "garment/"

// Builder turns closet items into meshes. It holds no state between calls.
type Builder struct {
	Logger *slog.Logger
}

func (b Builder) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.Default()
	}
	return b.Logger
}

// Build emits the meshes for one item. Unsupported types emit nothing.
func Build(item Item, f scale.Factors) []mesh.PositionedMesh {
	return Builder{}.Build(item, f)
}

// Build emits the meshes for one item. Unsupported types are logged and emit nothing.
func (b Builder) Build(item Item, f scale.Factors) []mesh.PositionedMesh {
	kind := item.Kind()
	spec, ok := Specs[kind.Type]
	if !ok {
		b.logger().Info("unsupported garment type", "item", item.ID, "type", kind.Raw)
		return nil
	}

	mat := b.Material(item)
	out := make([]mesh.PositionedMesh, 0, len(spec.Pieces))
	for i := range spec.Pieces {
		m := spec.Pieces[i].Place(f)
		m.ID = IDPrefix + item.ID + "/" + m.Name
		m.Name = kind.Type.String() + "_" + m.Name
		m.Region = mesh.RegionUnknown
		m.Layer = mesh.LayerGarment
		m.Parent = ""
		m.Material = mat
		out = append(out, m)
	}
	return out
}

// BuildAll builds every item in order, skipping unsupported ones.
func (b Builder) BuildAll(items []Item, f scale.Factors) []mesh.PositionedMesh {
	var out []mesh.PositionedMesh
	for _, it := range items {
		out = append(out, b.Build(it, f)...)
	}
	return out
}

// Material resolves the surface of an item. A custom texture yields a
// neutral placeholder tagged with the texture reference; the decoded image is
// attached later by whoever loads it.
func (b Builder) Material(item Item) mesh.Material {
	if item.CustomTexture != "" {
		return mesh.Material{Color: mesh.Neutral, TextureRef: item.CustomTexture, Placeholder: true}
	}
	return mesh.Material{Color: b.Color(item)}
}

// Color resolves the item's color string, falling back to neutral.
func (b Builder) Color(item Item) color.NRGBA {
	if item.Color == "" {
		return mesh.Neutral
	}
	c, err := ParseColor(item.Color)
	if err != nil {
		b.logger().Warn("unresolvable garment color", "item", item.ID, "color", item.Color, "error", err)
		return mesh.Neutral
	}
	return c
}
