package render

import (
	"fmt"
	"io"
	"time"

	"github.com/kass/location-history/pkg/models"
	"github.com/tkrajina/gpxgo/gpx"
)

// GPXRenderer writes a GPX 1.1 track
type GPXRenderer struct {
	Creator string
}

func (GPXRenderer) Extension() string { return "gpx" }

// Render writes the GPX document to w
func (g GPXRenderer) Render(w io.Writer, box models.BoundingBox, records []models.LocationRecord, opts Options) error {
	points := plottable(records, opts)

	segment := gpx.GPXTrackSegment{Points: make([]gpx.GPXPoint, 0, len(points))}
	for _, r := range points {
		pt := gpx.GPXPoint{
			Point: gpx.Point{
				Latitude:  r.Lat(),
				Longitude: r.Lon(),
			},
			Timestamp: time.UnixMilli(r.Timestamp).UTC(),
		}
		if r.Altitude != nil {
			pt.Elevation.SetValue(float64(*r.Altitude))
		}
		segment.Points = append(segment.Points, pt)
	}

	doc := &gpx.GPX{
		Version:     "1.1",
		Creator:     g.Creator,
		Name:        opts.title(),
		Description: describe(box, len(points), opts),
		Routes:      []gpx.GPXRoute{boundaryRoute(box)},
		Tracks: []gpx.GPXTrack{{
			Name:     opts.title(),
			Segments: []gpx.GPXTrackSegment{segment},
		}},
	}

	data, err := doc.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return fmt.Errorf("failed to encode GPX: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write GPX: %w", err)
	}
	return nil
}

// boundaryRoute outlines the map box as a closed route
func boundaryRoute(box models.BoundingBox) gpx.GPXRoute {
	corners := []models.Location{
		{Lat: box.MinLat(), Lon: box.MinLon()},
		{Lat: box.MinLat(), Lon: box.MaxLon()},
		{Lat: box.MaxLat(), Lon: box.MaxLon()},
		{Lat: box.MaxLat(), Lon: box.MinLon()},
		{Lat: box.MinLat(), Lon: box.MinLon()},
	}
	route := gpx.GPXRoute{Name: "Map Boundary", Points: make([]gpx.GPXPoint, len(corners))}
	for i, c := range corners {
		route.Points[i] = gpx.GPXPoint{Point: gpx.Point{Latitude: c.Lat, Longitude: c.Lon}}
	}
	return route
}
