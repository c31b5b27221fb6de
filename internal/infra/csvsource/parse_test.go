package csvsource

import (
	"context"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/facility-heatmap/internal/domain/facility"
	"github.com/yanqian/facility-heatmap/internal/infra/blob"
)

const readingsCSV = "\ufeffzone_id,pm2_5,ta,rh,co2,pm10\n" +
	"5_engine,12.5,21,40,650,30\n" +
	"5_engine,,22,60,abc,31\n" +
	"7_inspect,3,19.5,NaN,700\n"

const dailyCSV = "zone_id,station_no,datetime,pm2_5,rh\n" +
	"7_inspect, 3 ,2024-03-01,10.5,44\n" +
	"7_inspect,3,03/02/2024,11,45\n" +
	"1_trim_1,1,2024-03-01,,50\n"

func TestParseReadings(t *testing.T) {
	set, err := ParseReadings(strings.NewReader(readingsCSV))
	require.NoError(t, err)
	require.Len(t, set.Rows, 3)

	first := set.Rows[0]
	require.Equal(t, facility.SensorReading{ZoneID: "5_engine", PM25: 12.5, TA: 21, RH: 40, CO2: 650, PM10: 30}, first)

	second := set.Rows[1]
	require.True(t, math.IsNaN(second.PM25))
	require.True(t, math.IsNaN(second.CO2))
	require.Equal(t, 60.0, second.RH)

	third := set.Rows[2]
	require.True(t, math.IsNaN(third.RH))
	require.True(t, math.IsNaN(third.PM10))

	// empty pm2_5, "abc" co2, NaN rh and the missing trailing pm10 cell
	require.Equal(t, 4, set.InvalidValues)
}

func TestParseReadingsRequiresZoneColumn(t *testing.T) {
	_, err := ParseReadings(strings.NewReader("pm2_5,rh\n1,2\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "zone_id")

	_, err = ParseReadings(strings.NewReader(""))
	require.Error(t, err)
}

func TestParseDaily(t *testing.T) {
	set, err := ParseDaily(strings.NewReader(dailyCSV))
	require.NoError(t, err)
	require.Len(t, set.Rows, 3)

	first := set.Rows[0]
	require.Equal(t, "3", first.StationNo)
	require.True(t, first.DateValid)
	require.Equal(t, "2024-03-01", first.Date.Format(facility.DateLayout))
	require.Equal(t, 10.5, first.Value(facility.MetricPM25))
	require.True(t, math.IsNaN(first.Value(facility.MetricCO2)))

	require.False(t, set.Rows[1].DateValid)
	require.True(t, math.IsNaN(set.Rows[2].Value(facility.MetricPM25)))
	require.Equal(t, 1, set.InvalidValues)
}

func TestParseDailyRequiresStationColumns(t *testing.T) {
	_, err := ParseDaily(strings.NewReader("zone_id,datetime\n1_trim_1,2024-01-01\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "station_no")
}

func TestSourceReadsThroughOpener(t *testing.T) {
	store := blob.NewMemoryStore()
	store.Put("readings.csv", []byte(readingsCSV))
	store.Put("daily.csv", []byte(dailyCSV))
	src := NewSource(store, "readings.csv", "daily.csv", slog.New(slog.NewTextHandler(io.Discard, nil)))

	readings, err := src.Readings(context.Background())
	require.NoError(t, err)
	require.Len(t, readings.Rows, 3)

	daily, err := src.DailyAverages(context.Background())
	require.NoError(t, err)
	require.Len(t, daily.Rows, 3)

	missing := NewSource(store, "nope.csv", "daily.csv", slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err = missing.Readings(context.Background())
	require.Error(t, err)
}
