// Package history loads location history exports and derives the summary,
// date selection and map boundaries used to plot them.
package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kass/location-history/pkg/models"
)

// isoLayouts are tried in order for string timestamps that are not plain milliseconds.
// Exports written after early 2022 use RFC 3339; the zone-less form shows up in hand edits.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// exportFile is the top level of an export. Locations is a pointer so a
// missing key can be told apart from an empty list.
type exportFile struct {
	Locations *[]rawRecord `json:"locations"`
}

type rawRecord struct {
	LatitudeE7  *int32          `json:"latitudeE7"`
	LongitudeE7 *int32          `json:"longitudeE7"`
	Timestamp   json.RawMessage `json:"timestamp"`
	TimestampMs json.RawMessage `json:"timestampMs"`
	Altitude    *int32          `json:"altitude"`
}

// Load reads the export at path and returns its records in file order
func Load(path string) ([]models.LocationRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Reason: "failed to open file", Err: err}
	}
	defer file.Close()

	records, err := Parse(file)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}

	return records, nil
}

// Parse decodes an export from r.
func Parse(r io.Reader) ([]models.LocationRecord, error) {
	var doc exportFile
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, parseError("failed to decode JSON", err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, parseError("failed to decode JSON", err)
	}
	if doc.Locations == nil {
		return nil, parseError(`missing "locations" key`, nil)
	}

	raw := *doc.Locations
	records := make([]models.LocationRecord, 0, len(raw))
	for i, rr := range raw {
		rec, err := rr.toRecord()
		if err != nil {
			return nil, parseError(fmt.Sprintf("record %d", i), err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func (rr rawRecord) toRecord() (models.LocationRecord, error) {
	if rr.LatitudeE7 == nil || rr.LongitudeE7 == nil {
		return models.LocationRecord{}, errors.New("missing latitudeE7/longitudeE7")
	}

	// "timestamp" replaced "timestampMs" around January 2022
	field, raw := "timestamp", rr.Timestamp
	if isNull(raw) {
		field, raw = "timestampMs", rr.TimestampMs
	}
	if isNull(raw) {
		return models.LocationRecord{}, errors.New("missing timestamp")
	}

	ts, err := ParseTimestamp(raw)
	if err != nil {
		return models.LocationRecord{}, fmt.Errorf("invalid %s: %w", field, err)
	}

	return models.LocationRecord{
		LatitudeE7:  *rr.LatitudeE7,
		LongitudeE7: *rr.LongitudeE7,
		Timestamp:   ts,
		Altitude:    rr.Altitude,
	}, nil
}

// ParseTimestamp normalises a raw JSON timestamp to epoch milliseconds.
// Numbers and digit-only strings are milliseconds; other strings are ISO-8601.
func ParseTimestamp(raw json.RawMessage) (int64, error) {
	raw = bytes.TrimSpace(raw)
	if isNull(raw) {
		return 0, errors.New("empty timestamp")
	}

	if raw[0] != '"' {
		return parseMillis(string(raw))
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty timestamp")
	}
	if isDigits(s) {
		return parseMillis(s)
	}

	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UnixMilli(), nil
		}
	}
	return 0, fmt.Errorf("unrecognised timestamp %q", s)
}

func parseMillis(s string) (int64, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ms, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unrecognised timestamp %q", s)
	}
	if math.IsNaN(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("timestamp %q out of range", s)
	}
	return int64(f), nil
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func isDigits(s string) bool {
	start := 0
	if s[0] == '-' {
		start = 1
	}
	if start == len(s) {
		return false
	}
	for _, c := range s[start:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
