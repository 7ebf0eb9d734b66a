package render

import (
	"fmt"
	"os"
	"time"

	"github.com/kass/location-history/pkg/models"
	"github.com/rs/zerolog"
)

// FileWriter renders maps into timestamped files
type FileWriter struct {
	renderer Renderer
	dir      string
	prefix   string
	logger   zerolog.Logger

	now func() time.Time
}

// NewFileWriter creates a FileWriter that stores documents in dir
func NewFileWriter(renderer Renderer, dir, prefix string, logger zerolog.Logger) *FileWriter {
	if dir == "" {
		dir = "."
	}
	return &FileWriter{
		renderer: renderer,
		dir:      dir,
		prefix:   prefix,
		logger:   logger,
		now:      time.Now,
	}
}

// Write renders records into a new file and returns its path
func (fw *FileWriter) Write(box models.BoundingBox, records []models.LocationRecord, opts Options) (string, error) {
	if err := os.MkdirAll(fw.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := OutputPath(fw.dir, fw.prefix, fw.renderer.Extension(), fw.now())
	fw.logger.Debug().
		Str("path", path).
		Int("records", len(records)).
		Bool("skip_missing_altitude", opts.SkipMissingAltitude).
		Msg("Plotting the points")

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if err := fw.renderer.Render(file, box, records, opts); err != nil {
		file.Close()
		os.Remove(path)
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	fw.logger.Info().Str("path", path).Msg("Map saved")
	return path, nil
}
