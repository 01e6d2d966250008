package scene

import (
	"wardrobe-tryon/internal/mathutil"
	"wardrobe-tryon/internal/mesh"
)

// Node is one entry of the rigid scene graph. Local is the node's rotation
// and offset expressed in its parent's frame; Parent is -1 for nodes hanging
// from the root.
type Node struct {
	Name   string
	Parent int
	Local  mathutil.Mat4
}

// Graph is the hierarchy over a scene's meshes. Node i corresponds to mesh i
// of Scene.Meshes().
type Graph struct {
	Nodes []Node
	// World holds each node's root-space transform: the Local chain from the
	// root, then the mesh's own scale. Scale never propagates to children.
	World []mathutil.Mat4
}

// BuildGraph links meshes to their named parents and composes world
// transforms down the chain. Meshes arrive already placed in root space, so
// an unposed graph reproduces each mesh's Model(); Local is what a pose
// changes. Garments and parts with unknown parents hang from the root.
func BuildGraph(meshes []mesh.PositionedMesh) *Graph {
	byName := make(map[string]int, len(meshes))
	for i := range meshes {
		if meshes[i].Layer == mesh.LayerBody {
			byName[meshes[i].Name] = i
		}
	}

	g := &Graph{
		Nodes: make([]Node, len(meshes)),
		World: make([]mathutil.Mat4, len(meshes)),
	}
	for i := range meshes {
		m := &meshes[i]
		parent := -1
		local := m.Frame()
		if p, ok := byName[m.Parent]; ok && m.Layer == mesh.LayerBody && p != i {
			parent = p
			local = mathutil.Mat4Mul(meshes[p].Frame().RigidInverse(), local)
		}
		g.Nodes[i] = Node{Name: m.Name, Parent: parent, Local: local}
	}

	for i := range meshes {
		s := meshes[i].Extent()
		g.World[i] = mathutil.Mat4Mul(g.frame(i), mathutil.TRS(mathutil.Vec3{}, mathutil.Mat3Identity(), s))
	}
	return g
}

// frame composes the Local chain from the root down to node i. A chain that
// loops is cut off after len(Nodes) steps.
func (g *Graph) frame(i int) mathutil.Mat4 {
	w := g.Nodes[i].Local
	for p, steps := g.Nodes[i].Parent, 0; p >= 0 && steps < len(g.Nodes); p, steps = g.Nodes[p].Parent, steps+1 {
		w = mathutil.Mat4Mul(g.Nodes[p].Local, w)
	}
	return w
}

// Children returns the indices of nodes whose parent is i.
func (g *Graph) Children(i int) []int {
	var out []int
	for j, n := range g.Nodes {
		if n.Parent == i {
			out = append(out, j)
		}
	}
	return out
}
