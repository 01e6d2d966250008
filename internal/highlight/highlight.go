package highlight

import (
	"sort"
	"strings"

	"wardrobe-tryon/internal/measure"
	"wardrobe-tryon/internal/mesh"
)

// Selector is the measurement currently being edited, or none.
type Selector struct {
	key    measure.Key
	active bool
}

// None selects nothing.
var None = Selector{}

// On selects measurement k.
func On(k measure.Key) Selector {
	return Selector{key: k, active: true}
}

// Key returns the selected measurement and whether one is selected.
func (s Selector) Key() (measure.Key, bool) {
	return s.key, s.active
}

func (s Selector) String() string {
	if !s.active {
		return "none"
	}
	return s.key.String()
}

// Parse maps "" or "none" to None and anything else to a measurement key.
func Parse(s string) (Selector, error) {
	if name := strings.ToLower(strings.TrimSpace(s)); name == "" || name == "none" {
		return None, nil
	}
	k, err := measure.ParseKey(s)
	if err != nil {
		return None, err
	}
	return On(k), nil
}

// regionRules maps a measurement to the body regions it shapes.
var regionRules = map[measure.Key][]mesh.Region{
	measure.Chest:    {mesh.RegionChest, mesh.RegionStomach, mesh.RegionWaist},
	measure.Waist:    {mesh.RegionWaist},
	measure.Hips:     {mesh.RegionPelvis},
	measure.Shoulder: {mesh.RegionShoulder},
	measure.Stomach:  {mesh.RegionStomach},
	measure.Thigh:    {mesh.RegionThigh, mesh.RegionLowerLeg},
	measure.Neck:     {mesh.RegionNeck},
}

// nameRules is the fallback for meshes with no region, matched as
// case-insensitive substrings of the mesh name.
var nameRules = map[measure.Key][]string{
	measure.Chest:    {"chest", "torso"},
	measure.Waist:    {"waist"},
	measure.Hips:     {"hip", "pelvis"},
	measure.Shoulder: {"shoulder"},
	measure.Stomach:  {"stomach", "belly"},
	measure.Thigh:    {"thigh", "leg"},
	measure.Neck:     {"neck"},
}

// Set holds the IDs of emphasized meshes.
type Set map[string]struct{}

// Has reports whether id is emphasized.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the members in sorted order.
func (s Set) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Matches reports whether part is emphasized under sel.
func Matches(sel Selector, part *mesh.PositionedMesh) bool {
	k, ok := sel.Key()
	if !ok {
		return false
	}
	if part.Region != mesh.RegionUnknown {
		for _, r := range regionRules[k] {
			if part.Region == r {
				return true
			}
		}
		return false
	}
	name := strings.ToLower(part.Name)
	for _, sub := range nameRules[k] {
		if strings.Contains(name, sub) {
			return true
		}
	}
	return false
}

// Compute returns the IDs of parts emphasized under sel. None yields an empty set.
func Compute(sel Selector, parts []mesh.PositionedMesh) Set {
	set := Set{}
	for i := range parts {
		if Matches(sel, &parts[i]) {
			set[parts[i].ID] = struct{}{}
		}
	}
	return set
}

// Apply returns a copy of parts with emphasis cleared everywhere and then set
// on the members of set.
func Apply(parts []mesh.PositionedMesh, set Set) []mesh.PositionedMesh {
	out := make([]mesh.PositionedMesh, len(parts))
	for i, p := range parts {
		p.Emphasized = set.Has(p.ID)
		out[i] = p
	}
	return out
}
