package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"wardrobe-tryon/internal/garment"
	"wardrobe-tryon/internal/highlight"
	"wardrobe-tryon/internal/measure"
	"wardrobe-tryon/internal/mesh"
	"wardrobe-tryon/internal/scene"
)

func main() {
	profile := flag.String("profile", "", "Measurement profile (YAML)")
	preset := flag.String("preset", "", "Body type preset")
	catalog := flag.String("catalog", "", "Closet catalog (YAML)")
	wear := flag.String("wear", "", "Comma-separated item IDs to wear")
	hl := flag.String("highlight", "", "Measurement to emphasize")
	tree := flag.Bool("tree", false, "Print the scene graph as a tree")
	flag.Parse()

	c := scene.NewComposer(scene.Options{})
	defer c.Close()

	if *profile != "" {
		v, err := measure.LoadProfile(*profile)
		check(err)
		check(c.SetMeasurements(v))
	}
	if *preset != "" {
		p, err := measure.ParsePreset(*preset)
		check(err)
		check(c.ApplyPreset(p))
	}
	if ids := splitIDs(*wear); len(ids) > 0 {
		if *catalog == "" {
			check(errors.New("-wear needs -catalog"))
		}
		closet, err := garment.LoadCatalog(*catalog)
		check(err)
		items, err := closet.Lookup(ids)
		check(err)
		for _, it := range items {
			check(c.SelectGarment(it))
		}
	}
	sel, err := highlight.Parse(*hl)
	check(err)
	check(c.SetHighlight(sel))

	st := c.State()
	sc := c.Current()

	fmt.Println("Measurements:")
	for _, m := range st.Measurements {
		fmt.Printf("  %-9s %6.1f %-2s  [%g..%g]  factor=%.3f\n",
			m.Key, m.Value, m.Unit, m.Min, m.Max, sc.Factors.Of(m.Key))
	}
	fmt.Printf("  depth=%.3f width=%.3f\n", sc.Factors.Depth, sc.Factors.Width)

	fmt.Printf("Wearing: %d items\n", len(st.Selected))
	for _, it := range st.Selected {
		kind := it.Kind()
		fmt.Printf("  %s (%s, %s, slot=%s)\n", it.ID, it.Name, kind, it.Slot())
	}

	meshes := sc.Meshes()
	fmt.Printf("Meshes: %d (body %d, garment %d), highlight=%s\n",
		len(meshes), len(sc.Body), len(sc.Garments), sel)

	if *tree {
		for i, n := range sc.Graph.Nodes {
			if n.Parent < 0 {
				printTree(sc.Graph, meshes, i, 1)
			}
		}
		return
	}

	for i := range meshes {
		printMesh(&meshes[i], "  ")
	}
}

func check(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func splitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func printMesh(m *mesh.PositionedMesh, indent string) {
	mark := " "
	if m.Emphasized {
		mark = "*"
	}
	p := m.Primitive
	var dims string
	switch p.Kind {
	case mesh.Sphere:
		dims = fmt.Sprintf("r=%.3f", p.Radius)
	case mesh.Capsule:
		dims = fmt.Sprintf("r=%.3f h=%.3f", p.Radius, p.Height)
	case mesh.Cylinder:
		dims = fmt.Sprintf("rt=%.3f rb=%.3f h=%.3f", p.RadiusTop, p.RadiusBottom, p.Height)
	case mesh.Box:
		dims = fmt.Sprintf("w=%.3f h=%.3f d=%.3f", p.Width, p.Height, p.Depth)
	}
	tex := ""
	if m.Material.TextureRef != "" {
		tex = fmt.Sprintf(" texture=%q", m.Material.TextureRef)
	}
	fmt.Printf("%s%s %-22s %-8s %-24s pos=(%.3f, %.3f, %.3f) zscale=%.2f%s\n",
		indent, mark, m.Name, p.Kind, dims, m.Position[0], m.Position[1], m.Position[2], m.Scale[2], tex)
}

func printTree(g *scene.Graph, meshes []mesh.PositionedMesh, i, depth int) {
	printMesh(&meshes[i], strings.Repeat("  ", depth))
	for _, child := range g.Children(i) {
		printTree(g, meshes, child, depth+1)
	}
}
