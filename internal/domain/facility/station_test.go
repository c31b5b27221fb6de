package facility

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStationKeyZoneWithUnderscore(t *testing.T) {
	key, err := ParseStationKey("7_inspect_3")
	require.NoError(t, err)
	require.Equal(t, StationKey{ZoneID: "7_inspect", StationNo: "3"}, key)
	require.Equal(t, "7_inspect_3", key.String())
	require.Equal(t, "7 INSPECT - Station 3", key.Title())
}

func TestParseStationKeyMultipleUnderscores(t *testing.T) {
	key, err := ParseStationKey("1_trim_1_12")
	require.NoError(t, err)
	require.Equal(t, "1_trim_1", key.ZoneID)
	require.Equal(t, "12", key.StationNo)
	require.Equal(t, "1 TRIM_1 - Station 12", key.Title())
}

func TestParseStationKeyFailures(t *testing.T) {
	cases := []struct {
		name string
		key  string
		want error
	}{
		{name: "single segment", key: "bad", want: ErrInvalidFormat},
		{name: "empty", key: "", want: ErrInvalidFormat},
		{name: "unknown zone", key: "9_unknown_1", want: ErrUnknownZone},
		{name: "letters in station", key: "1_trim_1_a", want: ErrInvalidStationNumber},
		{name: "empty station", key: "5_engine_", want: ErrInvalidStationNumber},
		{name: "signed station", key: "5_engine_-1", want: ErrInvalidStationNumber},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseStationKey(tc.key)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParseMetric(t *testing.T) {
	m, err := ParseMetric(" RH ")
	require.NoError(t, err)
	require.Equal(t, MetricRH, m)

	_, err = ParseMetric("noise")
	require.ErrorIs(t, err, ErrUnknownMetric)
}

func TestMetricSpecFallback(t *testing.T) {
	spec := Metric("voc").Spec()
	require.Equal(t, PaletteViridis, spec.Palette)
	require.Equal(t, "voc", spec.Label)
	require.Nil(t, spec.Optimal)

	require.Equal(t, "Carbon Dioxide (ppm)", MetricCO2.Spec().Label)
	require.Equal(t, "CO2 (ppm)", MetricCO2.Spec().AxisLabel)
}

func TestOptimalRangesCoverCatalog(t *testing.T) {
	ranges := OptimalRanges()
	require.Len(t, ranges, len(Metrics()))
	require.Equal(t, Range{Min: 35, Max: 50}, ranges[MetricRH])
}

func TestZonesInFloorOrder(t *testing.T) {
	zones := Zones()
	require.Len(t, zones, 7)
	require.Equal(t, "1_trim_1", zones[0].ID)
	require.Equal(t, "7_inspect", zones[6].ID)
	g, ok := GeometryOf("3_chassis_1")
	require.True(t, ok)
	require.Equal(t, 16.5, g.Width)
	require.Equal(t, -1, ZoneRank("9_unknown"))
}
