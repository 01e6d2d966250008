package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wardrobe-tryon/internal/body"
	"wardrobe-tryon/internal/measure"
	"wardrobe-tryon/internal/mesh"
	"wardrobe-tryon/internal/scale"
)

func namesOf(parts []mesh.PositionedMesh, set Set) []string {
	var out []string
	for _, p := range parts {
		if set.Has(p.ID) {
			out = append(out, p.Name)
		}
	}
	return out
}

func TestChestMatchesChestAndTorso(t *testing.T) {
	parts := body.Build(scale.Unit())
	set := Compute(On(measure.Chest), parts)

	for _, p := range parts {
		want := strings.Contains(p.Name, "chest") || strings.Contains(p.Name, "torso")
		assert.Equal(t, want, set.Has(p.ID), p.Name)
	}
	assert.Equal(t, []string{"torso_chest", "torso_stomach", "torso_waist"}, namesOf(parts, set))
}

func TestNoneIsEmpty(t *testing.T) {
	parts := body.Build(scale.Unit())
	assert.Empty(t, Compute(None, parts))
}

func TestKeysWithoutRulesMatchNothing(t *testing.T) {
	parts := body.Build(scale.Unit())
	for _, k := range []measure.Key{measure.Height, measure.Weight, measure.Inseam} {
		assert.Empty(t, Compute(On(k), parts), k.String())
	}
}

func TestRegionAndNameRulesAgreeOnTemplate(t *testing.T) {
	parts := body.Build(scale.Unit())

	anonymous := make([]mesh.PositionedMesh, len(parts))
	copy(anonymous, parts)
	for i := range anonymous {
		anonymous[i].Region = mesh.RegionUnknown
	}

	for _, k := range measure.Keys() {
		assert.Equal(t, Compute(On(k), parts), Compute(On(k), anonymous), k.String())
	}
}

func TestNameFallbackIsCaseInsensitive(t *testing.T) {
	parts := []mesh.PositionedMesh{
		{ID: "ext/1", Name: "Mixamo_LeftUpLeg"},
		{ID: "ext/2", Name: "BELLY_mesh"},
		{ID: "ext/3", Name: "Hips"},
		{ID: "ext/4", Name: "Head"},
	}
	assert.Equal(t, []string{"ext/1"}, Compute(On(measure.Thigh), parts).IDs())
	assert.Equal(t, []string{"ext/2"}, Compute(On(measure.Stomach), parts).IDs())
	assert.Equal(t, []string{"ext/3"}, Compute(On(measure.Hips), parts).IDs())
}

func TestApplyClearsPreviousEmphasis(t *testing.T) {
	parts := body.Build(scale.Unit())

	first := Apply(parts, Compute(On(measure.Chest), parts))
	second := Apply(first, Compute(On(measure.Neck), first))

	for _, p := range second {
		assert.Equal(t, p.Name == "neck", p.Emphasized, p.Name)
	}

	cleared := Apply(second, Compute(None, second))
	for _, p := range cleared {
		assert.False(t, p.Emphasized, p.Name)
	}
	// input untouched
	assert.True(t, first[6].Emphasized)
}

func TestParse(t *testing.T) {
	sel, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, None, sel)

	sel, err = Parse("none")
	require.NoError(t, err)
	assert.Equal(t, "none", sel.String())

	sel, err = Parse("Hips")
	require.NoError(t, err)
	k, ok := sel.Key()
	assert.True(t, ok)
	assert.Equal(t, measure.Hips, k)

	_, err = Parse("elbow")
	assert.ErrorIs(t, err, measure.ErrUnknownKey)
}
