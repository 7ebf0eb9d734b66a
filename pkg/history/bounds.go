package history

import (
	"fmt"
	"math"

	"github.com/kass/location-history/pkg/models"
)

// Padding controls how far the map extends beyond the outermost records
type Padding struct {
	// Fraction of each axis span added on every side
	Fraction float64 `yaml:"fraction" json:"fraction"`
	// SouthCorrection multiplies the latitude padding on the southern edge
	SouthCorrection float64 `yaml:"south_correction" json:"southCorrection"`
}

// DefaultPadding is 5% per side with the southern edge widened 1.9 times
var DefaultPadding = Padding{Fraction: 0.05, SouthCorrection: 1.9}

// NoPadding leaves the box as found
var NoPadding = Padding{}

// Validate rejects padding that could invert the box
func (p Padding) Validate() error {
	if p.Fraction < 0 || math.IsNaN(p.Fraction) || math.IsInf(p.Fraction, 0) {
		return fmt.Errorf("padding fraction must be a finite value >= 0, got %v", p.Fraction)
	}
	if p.SouthCorrection < 0 || math.IsNaN(p.SouthCorrection) || math.IsInf(p.SouthCorrection, 0) {
		return fmt.Errorf("south correction must be a finite value >= 0, got %v", p.SouthCorrection)
	}
	return nil
}

// Boundaries returns the smallest box containing every record
func Boundaries(records []models.LocationRecord) (models.BoundingBox, error) {
	if len(records) == 0 {
		return models.BoundingBox{}, ErrEmptyResultSet
	}

	minLat, maxLat := records[0].LatitudeE7, records[0].LatitudeE7
	minLon, maxLon := records[0].LongitudeE7, records[0].LongitudeE7
	for _, r := range records[1:] {
		minLat = min(minLat, r.LatitudeE7)
		maxLat = max(maxLat, r.LatitudeE7)
		minLon = min(minLon, r.LongitudeE7)
		maxLon = max(maxLon, r.LongitudeE7)
	}

	return models.BoundingBox{
		BottomLeft: models.Location{Lat: float64(minLat) / models.E7, Lon: float64(minLon) / models.E7},
		TopRight:   models.Location{Lat: float64(maxLat) / models.E7, Lon: float64(maxLon) / models.E7},
	}, nil
}

// Pad expands box by p
func Pad(box models.BoundingBox, p Padding) models.BoundingBox {
	addLat := math.Abs(box.MaxLat()-box.MinLat()) * p.Fraction
	addLon := math.Abs(box.MaxLon()-box.MinLon()) * p.Fraction

	box.BottomLeft.Lat -= addLat * p.SouthCorrection
	box.TopRight.Lat += addLat
	box.BottomLeft.Lon -= addLon
	box.TopRight.Lon += addLon
	return box
}

// CalculateMapBoundaries returns the padded box around records
func CalculateMapBoundaries(records []models.LocationRecord, p Padding) (models.BoundingBox, error) {
	if err := p.Validate(); err != nil {
		return models.BoundingBox{}, err
	}

	box, err := Boundaries(records)
	if err != nil {
		return models.BoundingBox{}, err
	}

	return Pad(box, p), nil
}
