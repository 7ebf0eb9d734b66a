package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/kass/location-history/pkg/models"
)

// DateLayout is the format accepted for --from/--to
const DateLayout = "2006-01-02"

// FilterByDate returns the records with start <= timestamp <= end, in their original order.
// Unset bounds fall back to the oldest and newest timestamps of s.
// The input slice is never modified.
func FilterByDate(records []models.LocationRecord, rng models.DateRange, s Summary) []models.LocationRecord {
	start, end := s.Oldest, s.Newest
	if rng.Start != nil {
		start = *rng.Start
	}
	if rng.End != nil {
		end = *rng.End
	}

	filtered := make([]models.LocationRecord, 0, len(records))
	for _, r := range records {
		if r.Timestamp >= start && r.Timestamp <= end {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// ParseDate converts a YYYY-MM-DD date to the first millisecond of that day (UTC)
func ParseDate(s string) (int64, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a %s date", ErrInvalidDate, s, "YYYY-MM-DD")
	}
	return t.UnixMilli(), nil
}

// ParseEndDate converts a YYYY-MM-DD date to the last millisecond of that day (UTC)
func ParseEndDate(s string) (int64, error) {
	start, err := ParseDate(s)
	if err != nil {
		return 0, err
	}
	return start + (24*time.Hour).Milliseconds() - 1, nil
}

// NewDateRange builds a range from optional --from/--to arguments.
// Empty strings leave the bound unset.
func NewDateRange(from, to string) (models.DateRange, error) {
	var rng models.DateRange

	if from != "" {
		start, err := ParseDate(from)
		if err != nil {
			return rng, err
		}
		rng.Start = &start
	}
	if to != "" {
		end, err := ParseEndDate(to)
		if err != nil {
			return rng, err
		}
		rng.End = &end
	}

	if rng.Start != nil && rng.End != nil && *rng.Start > *rng.End {
		return models.DateRange{}, fmt.Errorf("%w: start %s is after end %s", ErrInvalidDate, from, to)
	}
	return rng, nil
}
