package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kass/location-history/pkg/history"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, history.DefaultPadding, c.Padding)
	assert.Equal(t, "kml", c.Render.Format)
	assert.True(t, c.Render.SkipMissingAltitude)

	level, err := c.Level()
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, level)
}

func TestLoadWithoutFile(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
padding:
  fraction: 0.1
  south_correction: 1
render:
  format: gpx
  title: Europe 2022
  width: 5980
  out_dir: maps
  skip_missing_altitude: false
`)

	c, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, history.Padding{Fraction: 0.1, SouthCorrection: 1}, c.Padding)
	assert.Equal(t, "gpx", c.Render.Format)
	assert.Equal(t, "Europe 2022", c.Render.Title)
	assert.Equal(t, 5980, c.Render.Width)
	assert.Equal(t, "maps", c.Render.OutDir)
	assert.Equal(t, "your_map", c.Render.Prefix)
	assert.False(t, c.Render.SkipMissingAltitude)

	opts := c.RenderOptions()
	assert.Equal(t, "Europe 2022", opts.Title)
	assert.Equal(t, 5980, opts.Width)
	assert.False(t, opts.SkipMissingAltitude)
}

func TestLoadEmptyFile(t *testing.T) {
	c, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "render: [not, a, map]"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "unknown_key: 1"))
	assert.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LHV_FORMAT", "gpx")
	t.Setenv("LHV_WIDTH", "2000")
	t.Setenv("LHV_OUT_DIR", "/tmp/maps")

	c, err := Load(writeConfig(t, "render:\n  format: kml\n  width: 100\n"))
	require.NoError(t, err)
	assert.Equal(t, "gpx", c.Render.Format)
	assert.Equal(t, 2000, c.Render.Width)
	assert.Equal(t, "/tmp/maps", c.Render.OutDir)
}

func TestLoadEnvInvalidWidth(t *testing.T) {
	t.Setenv("LHV_WIDTH", "wide")
	_, err := Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"negative padding", func(c *Config) { c.Padding.Fraction = -1 }},
		{"negative south correction", func(c *Config) { c.Padding.SouthCorrection = -1 }},
		{"zero width", func(c *Config) { c.Render.Width = 0 }},
		{"unknown format", func(c *Config) { c.Render.Format = "png" }},
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
