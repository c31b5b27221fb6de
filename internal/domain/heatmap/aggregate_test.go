package heatmap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/facility-heatmap/internal/domain/facility"
)

func TestAggregateIgnoresNonFiniteValues(t *testing.T) {
	readings := []facility.SensorReading{
		rh("5_engine", 10),
		rh("5_engine", math.NaN()),
		rh("5_engine", math.Inf(1)),
	}

	aggs := Aggregate(readings, facility.MetricRH)
	require.Len(t, aggs, 1)
	require.Equal(t, "5_engine", aggs[0].Zone)
	require.Equal(t, 10.0, aggs[0].Value)
}

func TestAggregateEmptyInput(t *testing.T) {
	aggs := Aggregate(nil, facility.MetricRH)
	require.NotNil(t, aggs)
	require.Empty(t, aggs)
}

func TestAggregateDropsZonesWithoutGeometry(t *testing.T) {
	readings := []facility.SensorReading{
		rh("9_unknown", 20),
		rh("2_trim_2", 30),
		rh("", 40),
	}

	aggs := Aggregate(readings, facility.MetricRH)
	require.Len(t, aggs, 1)
	require.Equal(t, "2_trim_2", aggs[0].Zone)
	require.Equal(t, facility.Geometry{X: 27.35, Y: 6.5, Width: 9.55, Height: 4}, aggs[0].Geometry)
}

func TestAggregateAllInvalidYieldsNaN(t *testing.T) {
	aggs := Aggregate([]facility.SensorReading{rh("6_final", math.NaN())}, facility.MetricRH)
	require.Len(t, aggs, 1)
	require.True(t, math.IsNaN(aggs[0].Value))
}

func TestAggregateMeanPerZoneInFloorOrder(t *testing.T) {
	readings := []facility.SensorReading{
		{ZoneID: "7_inspect", CO2: 800},
		{ZoneID: "1_trim_1", CO2: 400},
		{ZoneID: "7_inspect", CO2: 1000},
		{ZoneID: "1_trim_1", CO2: 600},
		{ZoneID: "3_chassis_1", CO2: 450},
	}

	aggs := Aggregate(readings, facility.MetricCO2)
	require.Len(t, aggs, 3)
	require.Equal(t, []string{"1_trim_1", "3_chassis_1", "7_inspect"}, []string{aggs[0].Zone, aggs[1].Zone, aggs[2].Zone})
	require.Equal(t, []float64{500, 450, 900}, Values(aggs))
}

func TestAggregateOutputBoundedByKnownZones(t *testing.T) {
	var readings []facility.SensorReading
	for _, z := range facility.Zones() {
		readings = append(readings, rh(z.ID, 1), rh(z.ID+"_x", 2))
	}
	aggs := Aggregate(readings, facility.MetricRH)
	require.LessOrEqual(t, len(aggs), len(facility.Zones()))
	for _, agg := range aggs {
		_, ok := facility.GeometryOf(agg.Zone)
		require.True(t, ok, agg.Zone)
	}
}

func TestFilterZone(t *testing.T) {
	aggs := Aggregate([]facility.SensorReading{rh("1_trim_1", 1), rh("5_engine", 2)}, facility.MetricRH)
	filtered := FilterZone(aggs, "5_engine")
	require.Len(t, filtered, 1)
	require.Equal(t, 2.0, filtered[0].Value)
	require.Empty(t, FilterZone(aggs, "6_final"))
}

func rh(zone string, v float64) facility.SensorReading {
	nan := math.NaN()
	return facility.SensorReading{ZoneID: zone, PM25: nan, PM10: nan, CO2: nan, TA: nan, RH: v}
}

func TestAggregateMeanDoesNotOverflow(t *testing.T) {
	aggs := Aggregate([]facility.SensorReading{
		rh("5_engine", 1.7e308),
		rh("5_engine", 1.7e308),
	}, facility.MetricRH)
	require.Len(t, aggs, 1)
	require.False(t, math.IsInf(aggs[0].Value, 0))
	require.InDelta(t, 1.7e308, aggs[0].Value, 1e294)
}
