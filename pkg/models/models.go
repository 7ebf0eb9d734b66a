package models

// E7 is the scale factor of fixed-point export coordinates.
const E7 = 1e7

// Location represents a geographic location with latitude and longitude
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// LocationRecord is a single entry of a location history export.
// Timestamp is always normalised to milliseconds since the epoch.
type LocationRecord struct {
	LatitudeE7  int32  `json:"latitudeE7"`
	LongitudeE7 int32  `json:"longitudeE7"`
	Timestamp   int64  `json:"timestamp"`
	Altitude    *int32 `json:"altitude,omitempty"`
}

// Lat returns the latitude in degrees
func (r LocationRecord) Lat() float64 {
	return float64(r.LatitudeE7) / E7
}

// Lon returns the longitude in degrees
func (r LocationRecord) Lon() float64 {
	return float64(r.LongitudeE7) / E7
}

// HasAltitude reports whether the export carried an altitude for the record
func (r LocationRecord) HasAltitude() bool {
	return r.Altitude != nil
}

// Location returns the record position in degrees
func (r LocationRecord) Location() Location {
	return Location{Lat: r.Lat(), Lon: r.Lon()}
}

// BoundingBox represents a rectangular area defined by two corners
type BoundingBox struct {
	BottomLeft Location `json:"bottomLeft"`
	TopRight   Location `json:"topRight"`
}

func (b BoundingBox) MinLat() float64 { return b.BottomLeft.Lat }
func (b BoundingBox) MaxLat() float64 { return b.TopRight.Lat }
func (b BoundingBox) MinLon() float64 { return b.BottomLeft.Lon }
func (b BoundingBox) MaxLon() float64 { return b.TopRight.Lon }

// Contains reports whether loc lies inside the box, edges included
func (b BoundingBox) Contains(loc Location) bool {
	return loc.Lat >= b.BottomLeft.Lat && loc.Lat <= b.TopRight.Lat &&
		loc.Lon >= b.BottomLeft.Lon && loc.Lon <= b.TopRight.Lon
}

// DateRange selects records by timestamp (epoch milliseconds).
// A nil bound falls back to the matching extreme of the history.
type DateRange struct {
	Start *int64
	End   *int64
}
