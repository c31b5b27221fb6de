package pgsource

import (
	"database/sql"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/facility-heatmap/internal/domain/facility"
)

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch target := d.(type) {
		case *string:
			*target = r.values[i].(string)
		case *sql.NullFloat64:
			*target = r.values[i].(sql.NullFloat64)
		case *sql.NullTime:
			*target = r.values[i].(sql.NullTime)
		}
	}
	return nil
}

func valid(v float64) sql.NullFloat64 { return sql.NullFloat64{Float64: v, Valid: true} }

func TestScanReadingMapsNullsToNaN(t *testing.T) {
	row := fakeRow{values: []any{" 5_engine ", valid(12), sql.NullFloat64{}, valid(500), valid(math.Inf(1)), valid(55)}}
	reading, invalid, err := scanReading(row)
	require.NoError(t, err)
	require.Equal(t, "5_engine", reading.ZoneID)
	require.Equal(t, 12.0, reading.PM25)
	require.True(t, math.IsNaN(reading.PM10))
	require.True(t, math.IsNaN(reading.TA))
	require.Equal(t, 55.0, reading.RH)
	require.Equal(t, 2, invalid)
}

func TestScanDaily(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	row := fakeRow{values: []any{"7_inspect", " 3", sql.NullTime{Time: day, Valid: true}, valid(10), valid(20), valid(600), valid(21), valid(45)}}
	out, invalid, err := scanDaily(row)
	require.NoError(t, err)
	require.Zero(t, invalid)
	require.Equal(t, "3", out.StationNo)
	require.True(t, out.DateValid)
	require.Equal(t, day, out.Date)
	require.Equal(t, 600.0, out.Value(facility.MetricCO2))

	undated := fakeRow{values: []any{"7_inspect", "3", sql.NullTime{}, valid(1), valid(1), valid(1), valid(1), valid(1)}}
	out, _, err = scanDaily(undated)
	require.NoError(t, err)
	require.False(t, out.DateValid)

	_, _, err = scanDaily(fakeRow{err: errors.New("bad row")})
	require.Error(t, err)
}
