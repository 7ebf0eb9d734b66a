package history

import (
	"testing"

	"github.com/kass/location-history/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v int64) *int64 { return &v }

func timestamps(records []models.LocationRecord) []int64 {
	out := make([]int64, len(records))
	for i, r := range records {
		out[i] = r.Timestamp
	}
	return out
}

func TestFilterByDate(t *testing.T) {
	records := []models.LocationRecord{
		record(1, 1, 100),
		record(2, 2, 200),
		record(3, 3, 300),
	}
	s, err := Summarize(records)
	require.NoError(t, err)

	testCases := []struct {
		name     string
		rng      models.DateRange
		expected []int64
	}{
		{"inner range", models.DateRange{Start: ptr(150), End: ptr(250)}, []int64{200}},
		{"inclusive bounds", models.DateRange{Start: ptr(100), End: ptr(300)}, []int64{100, 200, 300}},
		{"start only", models.DateRange{Start: ptr(200)}, []int64{200, 300}},
		{"end only", models.DateRange{End: ptr(200)}, []int64{100, 200}},
		{"unset", models.DateRange{}, []int64{100, 200, 300}},
		{"outside", models.DateRange{Start: ptr(400), End: ptr(500)}, []int64{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			filtered := FilterByDate(records, tc.rng, s)
			assert.Equal(t, tc.expected, timestamps(filtered))
		})
	}
}

func TestFilterByDateFullSpanKeepsOrder(t *testing.T) {
	records := []models.LocationRecord{
		record(5, 5, 300),
		record(1, 1, 100),
		record(1, 1, 100),
		record(9, 9, 200),
	}
	s, err := Summarize(records)
	require.NoError(t, err)

	filtered := FilterByDate(records, models.DateRange{Start: ptr(s.Oldest), End: ptr(s.Newest)}, s)
	assert.Equal(t, records, filtered)
}

func TestFilterByDateIdempotent(t *testing.T) {
	records := []models.LocationRecord{
		record(1, 1, 50),
		record(2, 2, 150),
		record(3, 3, 250),
		record(4, 4, 350),
	}
	s, err := Summarize(records)
	require.NoError(t, err)
	rng := models.DateRange{Start: ptr(100), End: ptr(300)}

	once := FilterByDate(records, rng, s)
	twice := FilterByDate(once, rng, s)
	assert.Equal(t, once, twice)
}

func TestFilterByDateDoesNotMutate(t *testing.T) {
	records := []models.LocationRecord{record(1, 1, 100), record(2, 2, 200)}
	original := append([]models.LocationRecord(nil), records...)
	s, err := Summarize(records)
	require.NoError(t, err)

	filtered := FilterByDate(records, models.DateRange{Start: ptr(150)}, s)
	require.Len(t, filtered, 1)
	filtered[0].Timestamp = 999

	assert.Equal(t, original, records)
}

func TestParseDate(t *testing.T) {
	start, err := ParseDate("2022-01-01")
	require.NoError(t, err)
	assert.Equal(t, int64(1640995200000), start)

	end, err := ParseEndDate("2022-01-01")
	require.NoError(t, err)
	assert.Equal(t, int64(1641081599999), end)

	for _, bad := range []string{"", "2022-13-01", "01.01.2022", "2022-01-01T00:00:00Z"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
		assert.ErrorIs(t, err, ErrInvalidInputFile, bad)
	}
}

func TestDateErrorMessage(t *testing.T) {
	_, err := ParseDate("01.01.2022")
	require.Error(t, err)
	assert.EqualError(t, err, `invalid date: "01.01.2022" is not a YYYY-MM-DD date`)
	assert.NotContains(t, err.Error(), ErrInvalidInputFile.Error())

	_, err = NewDateRange("2022-02-01", "2022-01-01")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), ErrInvalidInputFile.Error())
}

func TestNewDateRange(t *testing.T) {
	rng, err := NewDateRange("", "")
	require.NoError(t, err)
	assert.Nil(t, rng.Start)
	assert.Nil(t, rng.End)

	rng, err = NewDateRange("2022-01-01", "2022-01-01")
	require.NoError(t, err)
	require.NotNil(t, rng.Start)
	require.NotNil(t, rng.End)
	assert.Equal(t, int64(1640995200000), *rng.Start)
	assert.Equal(t, int64(1641081599999), *rng.End)

	rng, err = NewDateRange("", "2022-01-02")
	require.NoError(t, err)
	assert.Nil(t, rng.Start)
	require.NotNil(t, rng.End)

	_, err = NewDateRange("2022-02-01", "2022-01-01")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = NewDateRange("tomorrow", "")
	assert.ErrorIs(t, err, ErrInvalidInputFile)
}
