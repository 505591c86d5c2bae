package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtm0/ccammeta/internal/config"
	"github.com/rtm0/ccammeta/internal/metadata"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadYAMLLayersOnDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "globals.yaml", `
tracking_id: true
attributes:
  driving_model: EC-Earth3
  realization: 1
  scale: 0.5
  levels: [850, 500]
`)
	o, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, o.TrackingID)
	assert.False(t, o.ReplaceDefaults)

	attrs, err := o.GlobalAttrs()
	require.NoError(t, err)

	get := func(k string) any {
		v, ok := attrs.Get(k)
		require.True(t, ok, k)
		return v
	}
	assert.Equal(t, "EC-Earth3", get("driving_model"))
	assert.Equal(t, int32(1), get("realization"))
	assert.Equal(t, 0.5, get("scale"))
	assert.Equal(t, []int32{850, 500}, get("levels"))
	assert.Equal(t, "CCAM", get("source"), "defaults are kept")

	// Default keys keep their position, new ones follow sorted.
	keys := attrs.Keys()
	def := metadata.DefaultGlobal().Keys()
	assert.Equal(t, def, keys[:len(def)])
	assert.Equal(t, []string{"levels", "realization", "scale"}, keys[len(def):])
}

func TestLoadTOMLReplacesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "globals.toml", `
replace_defaults = true

[attributes]
source = "CCAM"
domain = "AUS-20i"
bounds = [1.5, 2]
`)
	o, err := config.Load(path)
	require.NoError(t, err)
	attrs, err := o.GlobalAttrs()
	require.NoError(t, err)

	assert.Equal(t, []string{"bounds", "domain", "source"}, attrs.Keys())
	b, _ := attrs.Get("bounds")
	assert.Equal(t, []float64{1.5, 2}, b)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	_, err := config.Load(writeConfig(t, "globals.json", `{}`))
	require.ErrorIs(t, err, config.ErrUnknownFormat)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = config.Load(writeConfig(t, "bad.yaml", "attributes: [unclosed"))
	require.ErrorContains(t, err, "parse config")

	o, err := config.Load(writeConfig(t, "bool.yaml", "attributes:\n  enabled: true\n"))
	require.NoError(t, err)
	_, err = o.GlobalAttrs()
	require.ErrorContains(t, err, `attribute "enabled"`)

	o, err = config.Load(writeConfig(t, "mixed.toml", "[attributes]\nmixed = [1, \"a\"]\n"))
	require.NoError(t, err)
	_, err = o.GlobalAttrs()
	require.Error(t, err)
}
