package config

import (
	"os"
	"path/filepath"
	"testing"

	"MS-Sequence-Tags/tag_generator/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 70.0, cfg.LocalWindowWidth)
	assert.Equal(t, 35.0, cfg.LocalWindowStep)
	assert.Equal(t, 2, cfg.LocalMinPeaks)
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero depth", func(c *Config) { c.Depth = 0 }, "Depth"},
		{"negative depth", func(c *Config) { c.Depth = -2 }, "Depth"},
		{"zero max edges", func(c *Config) { c.MaxEdgesPerNode = 0 }, "MaxEdgesPerNode"},
		{"bad unit", func(c *Config) { c.Tolerance.Unit = "mmu" }, "Unit"},
		{"negative tolerance", func(c *Config) { c.Tolerance.Value = -0.1 }, "Value"},
		{"zero density", func(c *Config) { c.GlobalSelectionDensity = 0 }, "GlobalSelectionDensity"},
		{"step wider than window", func(c *Config) { c.LocalWindowStep = 80 }, "LocalWindowStep"},
		{"negative max results", func(c *Config) { c.MaxTagResults = -1 }, "MaxTagResults"},
		{"zero workers", func(c *Config) { c.Workers = 0 }, "Workers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidArgument)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestTolerance_Window(t *testing.T) {
	da := Tolerance{Value: 0.02, Unit: UnitDa}
	assert.Equal(t, 0.02, da.Window(1000))

	ppm := Tolerance{Value: 10, Unit: UnitPPM}
	assert.InDelta(t, 0.01, ppm.Window(1000), 1e-12)
	assert.InDelta(t, 0.005, ppm.Window(500), 1e-12)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tags.yaml")
	content := `
depth: 4
max_tag_results: 10
tolerance:
  value: 15
  unit: ppm
score:
  error_penalty: 2.5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Depth)
	assert.Equal(t, 10, cfg.MaxTagResults)
	assert.Equal(t, Tolerance{Value: 15, Unit: UnitPPM}, cfg.Tolerance)
	assert.Equal(t, 2.5, cfg.Score.ErrorPenalty)
	// untouched fields keep their defaults
	assert.Equal(t, DefaultMaxEdgesPerNode, cfg.MaxEdgesPerNode)
	assert.Equal(t, DefaultEdgeBonus, cfg.Score.EdgeBonus)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("depth: 0\n"), 0o644))
	_, err = Load(invalid)
	assert.ErrorIs(t, err, common.ErrInvalidArgument)

	_, err = Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}
