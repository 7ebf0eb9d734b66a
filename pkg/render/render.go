// Package render hands a filtered history and its map boundaries to an
// external map tool as a KML or GPX document.
package render

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kass/location-history/pkg/models"
)

const (
	// DefaultTitle is used when no title is given
	DefaultTitle = "Location History"
	// DefaultPrefix is prepended to the output file name
	DefaultPrefix = "your_map"
	// DefaultWidth is the target map width in pixels
	DefaultWidth = 1000
	// AspectRatio is height divided by width of the target map
	AspectRatio = 0.69
)

// Options tune a single render
type Options struct {
	Title string
	Width int
	// SkipMissingAltitude drops records exported without an altitude.
	// The boundaries are computed before this filter applies.
	SkipMissingAltitude bool
}

// Height returns the target map height for Width
func (o Options) Height() int {
	return int(float64(o.Width) * AspectRatio)
}

func (o Options) title() string {
	if o.Title == "" {
		return DefaultTitle
	}
	return o.Title
}

// Renderer draws records inside box onto w
type Renderer interface {
	Render(w io.Writer, box models.BoundingBox, records []models.LocationRecord, opts Options) error
	// Extension is the file extension of the produced document, without dot
	Extension() string
}

var renderers = map[string]func() Renderer{
	"kml": func() Renderer { return KMLRenderer{} },
	"gpx": func() Renderer { return GPXRenderer{Creator: "lhv"} },
}

// Formats lists the supported output formats
func Formats() []string {
	formats := make([]string, 0, len(renderers))
	for f := range renderers {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}

// ForFormat returns the renderer registered for format
func ForFormat(format string) (Renderer, error) {
	newRenderer, ok := renderers[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (supported: %s)", format, strings.Join(Formats(), ", "))
	}
	return newRenderer(), nil
}

// OutputName returns the file name for a map rendered at now
func OutputName(prefix, ext string, now time.Time) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return fmt.Sprintf("%s%d.%s", prefix, now.Unix(), ext)
}

// OutputPath joins dir and the generated file name
func OutputPath(dir, prefix, ext string, now time.Time) string {
	return filepath.Join(dir, OutputName(prefix, ext, now))
}

// plottable returns the records that end up on the map
func plottable(records []models.LocationRecord, opts Options) []models.LocationRecord {
	if !opts.SkipMissingAltitude {
		return records
	}
	out := make([]models.LocationRecord, 0, len(records))
	for _, r := range records {
		if r.HasAltitude() {
			out = append(out, r)
		}
	}
	return out
}

func describe(box models.BoundingBox, points int, opts Options) string {
	return fmt.Sprintf("%d points, lat [%.6f, %.6f], lon [%.6f, %.6f], map size %dx%d",
		points, box.MinLat(), box.MaxLat(), box.MinLon(), box.MaxLon(), opts.Width, opts.Height())
}
