package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConfig = `
catalog: closet/items.yaml
texture_dir: fabrics
width: 300
height: 400
turntable: 4
looks:
  - name: office
    preset: slim
    wear: [shirt-oxford, trousers-grey]
    highlight: waist
  - name: weekend
    measurements:
      chest: 104
      height: 182
    wear: [tee-red, jeans-raw]
    rotation: 30
`

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tryon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlConfig), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.BaseDir)
	require.Len(t, cfg.Looks, 2)
	assert.Equal(t, "slim", cfg.Looks[0].Preset)
	assert.Equal(t, []string{"shirt-oxford", "trousers-grey"}, cfg.Looks[0].Wear)
	assert.Equal(t, 104.0, cfg.Looks[1].Measurements["chest"])
	assert.Equal(t, 30.0, cfg.Looks[1].Rotation)

	cfg.Resolve(Flags{})
	assert.Equal(t, filepath.Join(dir, "closet", "items.yaml"), cfg.Catalog)
	assert.Equal(t, filepath.Join(dir, "fabrics"), cfg.TextureDir)
	assert.Equal(t, filepath.Join(dir, "renders"), cfg.OutputDir)
	assert.Equal(t, 300, cfg.Width)
	assert.Equal(t, 400, cfg.Height)
	assert.Equal(t, []float64{0, 90, 180, 270}, cfg.TurntableAngles())
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tryon.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"workers": 3, "angles": [15, 45], "scene_format": "msgpack"}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.Resolve(Flags{})
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, []float64{15, 45}, cfg.TurntableAngles())
	assert.Equal(t, "msgpack", cfg.SceneFormat)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestResolveDefaults(t *testing.T) {
	cfg := Config{BaseDir: "/srv/tryon"}
	cfg.Resolve(Flags{})

	assert.Equal(t, DefaultSize, cfg.Width)
	assert.Equal(t, DefaultSize, cfg.Height)
	assert.Equal(t, DefaultSupersample, cfg.Supersample)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Empty(t, cfg.SceneFormat)
	assert.Equal(t, filepath.Join("/srv/tryon", DefaultCatalog), cfg.Catalog)
	assert.Equal(t, []float64{0}, cfg.TurntableAngles())
	assert.Empty(t, cfg.Profile)
}

func TestFlagsOverrideFile(t *testing.T) {
	cfg := Config{BaseDir: "/srv/tryon", Width: 300, Height: 400, Workers: 2, OutputDir: "out"}
	cfg.Resolve(Flags{Size: 128, Workers: 8, OutputDir: "/tmp/renders", Profile: "me.yaml", Turntable: 8})

	assert.Equal(t, 128, cfg.Width)
	assert.Equal(t, 128, cfg.Height)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "/tmp/renders", cfg.OutputDir)
	assert.Equal(t, filepath.Join("/srv/tryon", "me.yaml"), cfg.Profile)
	assert.Len(t, cfg.TurntableAngles(), 8)
	assert.Equal(t, 45.0, cfg.TurntableAngles()[1])
}
