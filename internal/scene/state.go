package scene

import (
	"wardrobe-tryon/internal/garment"
	"wardrobe-tryon/internal/highlight"
	"wardrobe-tryon/internal/measure"
	"wardrobe-tryon/internal/mesh"
	"wardrobe-tryon/internal/scale"
)

// State is every input the scene is derived from. Only the Composer mutates it.
type State struct {
	Measurements measure.Vector
	Selected     []garment.Item
	RotationDeg  float64
	Highlight    highlight.Selector
}

// DefaultState is the reference body, undressed, facing the camera.
func DefaultState() State {
	return State{Measurements: measure.Default()}
}

func (s State) clone() State {
	s.Selected = append([]garment.Item(nil), s.Selected...)
	return s
}

// Phase is the composer's rebuild state.
type Phase int32

const (
	Idle Phase = iota
	Rebuilding
)

func (p Phase) String() string {
	if p == Rebuilding {
		return "rebuilding"
	}
	return "idle"
}

// Scene is one fully built, immutable snapshot of the avatar.
type Scene struct {
	Generation  uint64
	Factors     scale.Factors
	Body        []mesh.PositionedMesh
	Garments    []mesh.PositionedMesh
	Emphasized  highlight.Set
	RotationDeg float64
	Graph       *Graph
}

// Meshes returns body parts followed by garment meshes, the order Graph indexes them in.
func (s *Scene) Meshes() []mesh.PositionedMesh {
	out := make([]mesh.PositionedMesh, 0, len(s.Body)+len(s.Garments))
	out = append(out, s.Body...)
	return append(out, s.Garments...)
}
