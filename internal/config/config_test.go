package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowlab/flowlab/internal/circuits"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "electric", cfg.Circuit)
	assert.Equal(t, DefaultFPS, cfg.FPS)
	assert.True(t, cfg.Measure)
	assert.Equal(t, 50.0, cfg.Params.Voltage)
	assert.Equal(t, 50.0, cfg.Params.SlideWidth)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flowlab.yaml")

	cfg := DefaultConfig()
	cfg.Circuit = "water"
	cfg.Count = 20
	cfg.Params.HeightDifference = 85
	cfg.Params.PipeWidth = 30

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "water", loaded.Circuit)
	assert.Equal(t, 20, loaded.Count)
	assert.Equal(t, 85.0, loaded.Params.HeightDifference)
	assert.Equal(t, 30.0, loaded.Params.PipeWidth)
	// Untouched sliders round-trip at their defaults.
	assert.Equal(t, 50.0, loaded.Params.Voltage)
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	partial := "circuit: playground\nparams:\n  slide_height: 75\n"
	require.NoError(t, os.WriteFile(path, []byte(partial), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "playground", cfg.Circuit)
	assert.Equal(t, 75.0, cfg.Params.SlideHeight)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, DefaultFPS, cfg.FPS)
	assert.Equal(t, 50.0, cfg.Params.SlideWidth)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestCircuitParams(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params.Voltage = 80

	params := cfg.CircuitParams("electric")
	require.NotNil(t, params)
	assert.Equal(t, 80.0, params["voltage"])
	assert.Equal(t, 50.0, params["wireWidth"])

	assert.Nil(t, cfg.CircuitParams("steam"))
}

func TestApply(t *testing.T) {
	c, err := circuits.New("water")
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Circuit = "water"
	cfg.Params.HeightDifference = 95
	cfg.Params.PipeWidth = 20

	require.NoError(t, cfg.Apply(c))
	got := c.GetParams()
	assert.Equal(t, 95.0, got["heightDifference"])
	assert.Equal(t, 20.0, got["pipeWidth"])
}

func TestApplyOutOfBounds(t *testing.T) {
	c, err := circuits.New("electric")
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Params.Voltage = 500
	assert.Error(t, cfg.Apply(c))
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("electric", "surge")
	require.NotNil(t, cfg)
	assert.Equal(t, 90.0, cfg.Params.Voltage)
	assert.Equal(t, 80.0, cfg.Params.WireWidth)

	assert.Nil(t, GetPreset("electric", "tsunami"))
	assert.Nil(t, GetPreset("steam", "surge"))
}

func TestPresetsAreValid(t *testing.T) {
	// Every preset must apply cleanly to its own circuit.
	for circuitName, presets := range Presets {
		for presetName, cfg := range presets {
			c, err := circuits.New(circuitName)
			require.NoError(t, err)
			assert.NoErrorf(t, cfg.Apply(c), "%s/%s", circuitName, presetName)
			assert.Equal(t, circuitName, cfg.Circuit)
		}
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets("water")
	assert.ElementsMatch(t, []string{"gentle", "torrent", "narrow_pipe"}, names)
	assert.Nil(t, ListPresets("steam"))
}
