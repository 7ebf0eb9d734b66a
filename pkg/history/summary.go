package history

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/kass/location-history/pkg/models"
)

const (
	earthRadius = 6371.0 // km

	// ReportDateLayout matches the day format printed for the oldest/newest records.
	ReportDateLayout = "Mon, 02 Jan 2006"
)

// Summary describes a location history
type Summary struct {
	Count        int     `json:"count"`
	Oldest       int64   `json:"oldest"`
	Newest       int64   `json:"newest"`
	WithAltitude int     `json:"withAltitude"`
	DistanceKm   float64 `json:"distanceKm"`
}

// Summarize counts records and finds the oldest and newest timestamps
func Summarize(records []models.LocationRecord) (Summary, error) {
	if len(records) == 0 {
		return Summary{}, ErrEmptyResultSet
	}

	s := Summary{
		Count:  len(records),
		Oldest: records[0].Timestamp,
		Newest: records[0].Timestamp,
	}
	for i, r := range records {
		if r.Timestamp < s.Oldest {
			s.Oldest = r.Timestamp
		}
		if r.Timestamp > s.Newest {
			s.Newest = r.Timestamp
		}
		if r.HasAltitude() {
			s.WithAltitude++
		}
		if i > 0 {
			prev := records[i-1]
			s.DistanceKm += Distance(prev.Lat(), prev.Lon(), r.Lat(), r.Lon())
		}
	}

	return s, nil
}

// OldestTime returns the oldest timestamp in UTC
func (s Summary) OldestTime() time.Time {
	return time.UnixMilli(s.Oldest).UTC()
}

// NewestTime returns the newest timestamp in UTC
func (s Summary) NewestTime() time.Time {
	return time.UnixMilli(s.Newest).UTC()
}

// Report renders the summary as human-readable text
func (s Summary) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Done! you provided a file with %d data points.\n", s.Count)
	fmt.Fprintf(&b, "oldest timestamp: %s, newest: %s.",
		s.OldestTime().Format(ReportDateLayout), s.NewestTime().Format(ReportDateLayout))
	return b.String()
}

// Distance calculates the Haversine distance between two points in kilometers
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	dLat := lat2Rad - lat1Rad
	dLon := (lon2 - lon1) * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadius * c
}
