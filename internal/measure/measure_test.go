package measure

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsFullyPopulated(t *testing.T) {
	v := Default()
	for i, m := range v {
		assert.Equal(t, Key(i), m.Key)
		assert.NotEmpty(t, m.Unit, m.Key.String())
		assert.NotEmpty(t, m.Category, m.Key.String())
		assert.GreaterOrEqual(t, m.Value, m.Min)
		assert.LessOrEqual(t, m.Value, m.Max)
	}
	assert.NoError(t, v.Validate())
	assert.Equal(t, Kilograms, v[Weight].Unit)
}

func TestParseKey(t *testing.T) {
	for _, k := range Keys() {
		got, err := ParseKey(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	got, err := ParseKey("  CHEST ")
	require.NoError(t, err)
	assert.Equal(t, Chest, got)

	_, err = ParseKey("wingspan")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestSetClamps(t *testing.T) {
	v := Default()
	require.NoError(t, v.Set(Height, 500))
	assert.Equal(t, 210.0, v.Value(Height))

	require.NoError(t, v.Set(Height, 10))
	assert.Equal(t, 140.0, v.Value(Height))

	require.NoError(t, v.Set(Chest, 100))
	assert.Equal(t, 100.0, v.Value(Chest))
}

func TestSetRejectsNonFinite(t *testing.T) {
	v := Default()
	assert.ErrorIs(t, v.Set(Waist, math.NaN()), ErrInvalidValue)
	assert.ErrorIs(t, v.Set(Waist, math.Inf(1)), ErrInvalidValue)
	assert.Equal(t, 85.0, v.Value(Waist))
}

func TestValidate(t *testing.T) {
	v := Default()
	v[Hips].Value = 300
	assert.ErrorIs(t, v.Validate(), ErrOutOfRange)

	v = Default()
	v[Neck].Value = math.NaN()
	assert.ErrorIs(t, v.Validate(), ErrInvalidValue)
}

func TestComplete(t *testing.T) {
	assert.NoError(t, Default().Complete())
	assert.ErrorIs(t, Vector{}.Complete(), ErrInvalidValue)

	v := Default()
	v[Waist].Key = Hips
	assert.ErrorIs(t, v.Complete(), ErrUnknownKey)

	v = Default()
	v[Thigh].Min, v[Thigh].Max = 80, 40
	assert.ErrorIs(t, v.Complete(), ErrInvalidValue)
}

func TestByCategory(t *testing.T) {
	v := Default()
	total := len(v.ByCategory(Upper)) + len(v.ByCategory(Lower)) + len(v.ByCategory(General))
	assert.Equal(t, NumKeys, total)

	general := v.ByCategory(General)
	require.Len(t, general, 2)
	assert.Equal(t, Height, general[0].Key)
	assert.Equal(t, Weight, general[1].Key)
}

func TestPresetsOverwriteEverything(t *testing.T) {
	v := Default()
	require.NoError(t, v.ApplyPreset(Slim))
	require.NoError(t, v.ApplyPreset(Athletic))

	want, ok := PresetValues(Athletic)
	require.True(t, ok)
	for _, k := range Keys() {
		assert.Equal(t, want[k], v.Value(k), k.String())
	}
}

func TestPresetsAreInBounds(t *testing.T) {
	for _, p := range Presets() {
		v := Default()
		require.NoError(t, v.ApplyPreset(p))
		want, _ := PresetValues(p)
		for _, k := range Keys() {
			assert.Equal(t, want[k], v.Value(k), "%s/%s", p, k)
		}
		assert.NoError(t, v.Validate())
	}
}

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset("Curvy")
	require.NoError(t, err)
	assert.Equal(t, Curvy, p)

	_, err = ParsePreset("bulky")
	assert.Error(t, err)

	v := Default()
	assert.Error(t, v.ApplyPreset("bulky"))
	assert.Equal(t, Default(), v)
}

func TestParseProfile(t *testing.T) {
	doc := []byte(`
preset: athletic
measurements:
  chest: 110
  height: 999
`)
	v, err := ParseProfile(doc)
	require.NoError(t, err)
	assert.Equal(t, 110.0, v.Value(Chest))
	assert.Equal(t, 210.0, v.Value(Height))
	assert.Equal(t, 80.0, v.Value(Weight))
}

func TestParseProfileErrors(t *testing.T) {
	_, err := ParseProfile([]byte("measurements:\n  wingspan: 12\n"))
	assert.ErrorIs(t, err, ErrUnknownKey)

	_, err = ParseProfile([]byte("preset: bulky\n"))
	assert.Error(t, err)

	_, err = ParseProfile([]byte("measurements: [1, 2"))
	assert.Error(t, err)
}

func TestLoadProfileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "me.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"measurements": {"waist": 90}}`), 0644))

	v, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, 90.0, v.Value(Waist))

	_, err = LoadProfile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
