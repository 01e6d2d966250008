package mesh

// Region is the semantic body area a mesh belongs to.
type Region int

const (
	// RegionUnknown marks meshes without a known region, e.g. parts of
	// externally loaded models. Highlighting falls back to name matching for them.
	RegionUnknown Region = iota
	RegionHead
	RegionHair
	RegionEye
	RegionNeck
	RegionShoulder
	RegionChest
	RegionStomach
	RegionWaist
	RegionPelvis
	RegionUpperArm
	RegionLowerArm
	RegionHand
	RegionThigh
	RegionLowerLeg
	RegionFoot
)

var regionNames = [...]string{
	RegionUnknown:  "unknown",
	RegionHead:     "head",
	RegionHair:     "hair",
	RegionEye:      "eye",
	RegionNeck:     "neck",
	RegionShoulder: "shoulder",
	RegionChest:    "chest",
	RegionStomach:  "stomach",
	RegionWaist:    "waist",
	RegionPelvis:   "pelvis",
	RegionUpperArm: "upper_arm",
	RegionLowerArm: "lower_arm",
	RegionHand:     "hand",
	RegionThigh:    "thigh",
	RegionLowerLeg: "lower_leg",
	RegionFoot:     "foot",
}

func (r Region) String() string {
	if r < 0 || int(r) >= len(regionNames) {
		return "unknown"
	}
	return regionNames[r]
}
