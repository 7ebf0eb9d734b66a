package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kass/location-history/pkg/history"
	"github.com/kass/location-history/pkg/render"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config represents the structure of the configuration file.
type Config struct {
	LogLevel string          `yaml:"log_level"` // zerolog level name
	Padding  history.Padding `yaml:"padding"`   // Map padding around the outermost records
	Render   Render          `yaml:"render"`
}

// Render holds the map output settings
type Render struct {
	Format              string `yaml:"format"`                // kml or gpx
	Title               string `yaml:"title"`                 // Document title
	Width               int    `yaml:"width"`                 // Target map width in pixels
	OutDir              string `yaml:"out_dir"`               // Directory for generated maps
	Prefix              string `yaml:"prefix"`                // File name prefix, the unix time is appended
	SkipMissingAltitude bool   `yaml:"skip_missing_altitude"` // Only plot records that carry an altitude
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		LogLevel: zerolog.LevelInfoValue,
		Padding:  history.DefaultPadding,
		Render: Render{
			Format:              "kml",
			Title:               render.DefaultTitle,
			Width:               render.DefaultWidth,
			OutDir:              ".",
			Prefix:              render.DefaultPrefix,
			SkipMissingAltitude: true,
		},
	}
}

// Load returns the defaults overlaid with the YAML file at filename (if any)
// and then with LHV_* environment variables.
func Load(filename string) (*Config, error) {
	config := Default()

	if filename != "" {
		if err := readYamlFile(filename, config); err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", filename, err)
		}
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

func readYamlFile(filePath string, v any) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.LogLevel = getEnv("LHV_LOG_LEVEL", c.LogLevel)
	c.Render.Format = getEnv("LHV_FORMAT", c.Render.Format)
	c.Render.Title = getEnv("LHV_TITLE", c.Render.Title)
	c.Render.OutDir = getEnv("LHV_OUT_DIR", c.Render.OutDir)
	c.Render.Prefix = getEnv("LHV_PREFIX", c.Render.Prefix)

	if v := os.Getenv("LHV_WIDTH"); v != "" {
		width, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid LHV_WIDTH %q: %w", v, err)
		}
		c.Render.Width = width
	}
	return nil
}

// Validate checks the values that the pipeline relies on
func (c *Config) Validate() error {
	if err := c.Padding.Validate(); err != nil {
		return err
	}
	if c.Render.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d", c.Render.Width)
	}
	if _, err := render.ForFormat(c.Render.Format); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel
func (c *Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// RenderOptions returns the per-render options
func (c *Config) RenderOptions() render.Options {
	return render.Options{
		Title:               c.Render.Title,
		Width:               c.Render.Width,
		SkipMissingAltitude: c.Render.SkipMissingAltitude,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
