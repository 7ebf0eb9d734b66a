package render

import (
	"fmt"
	"io"

	"github.com/kass/location-history/pkg/models"
	"github.com/twpayne/go-kml/v3"
)

// KMLRenderer writes a KML document with the track and the map region
type KMLRenderer struct{}

func (KMLRenderer) Extension() string { return "kml" }

// Render writes the KML document to w
func (KMLRenderer) Render(w io.Writer, box models.BoundingBox, records []models.LocationRecord, opts Options) error {
	points := plottable(records, opts)

	docElements := []kml.Element{
		kml.Name(opts.title()),
		kml.Description(describe(box, len(points), opts)),
		kml.Region(
			kml.LatLonAltBox(
				kml.North(box.MaxLat()),
				kml.South(box.MinLat()),
				kml.East(box.MaxLon()),
				kml.West(box.MinLon()),
			),
		),
		boundaryPlacemark(box),
	}

	if len(points) > 0 {
		coords := make([]kml.Coordinate, len(points))
		for i, r := range points {
			coords[i] = kml.Coordinate{Lon: r.Lon(), Lat: r.Lat()}
			if r.Altitude != nil {
				coords[i].Alt = float64(*r.Altitude)
			}
		}

		var geometry kml.Element
		if len(coords) == 1 {
			geometry = kml.Point(kml.Coordinates(coords...))
		} else {
			geometry = kml.LineString(kml.Coordinates(coords...))
		}
		docElements = append(docElements, kml.Placemark(
			kml.Name("Track"),
			geometry,
		))
	}

	doc := kml.KML(kml.Document(docElements...))
	if err := doc.WriteIndent(w, "", "  "); err != nil {
		return fmt.Errorf("failed to write KML: %w", err)
	}
	return nil
}

func boundaryPlacemark(box models.BoundingBox) kml.Element {
	corners := []kml.Coordinate{
		{Lon: box.MinLon(), Lat: box.MinLat()},
		{Lon: box.MaxLon(), Lat: box.MinLat()},
		{Lon: box.MaxLon(), Lat: box.MaxLat()},
		{Lon: box.MinLon(), Lat: box.MaxLat()},
		{Lon: box.MinLon(), Lat: box.MinLat()},
	}
	return kml.Placemark(
		kml.Name("Map Boundary"),
		kml.Polygon(
			kml.OuterBoundaryIs(
				kml.LinearRing(
					kml.Coordinates(corners...),
				),
			),
		),
	)
}
