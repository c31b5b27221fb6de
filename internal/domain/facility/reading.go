package facility

import (
	"math"
	"time"
)

// DateLayout is the format of the daily-average datetime column.
const DateLayout = "2006-01-02"

// SensorReading is one row of the reading set. Invalid values are NaN.
type SensorReading struct {
	ZoneID string
	PM25   float64
	PM10   float64
	CO2    float64
	TA     float64
	RH     float64
}

// Value returns the field for metric, or NaN for an unknown metric.
func (r SensorReading) Value(metric Metric) float64 {
	switch metric {
	case MetricPM25:
		return r.PM25
	case MetricPM10:
		return r.PM10
	case MetricCO2:
		return r.CO2
	case MetricTA:
		return r.TA
	case MetricRH:
		return r.RH
	default:
		return math.NaN()
	}
}

// DailyReading is one row of the daily-average set used by the time-series view.
type DailyReading struct {
	ZoneID    string
	StationNo string
	Date      time.Time
	DateValid bool
	Values    map[Metric]float64
}

// Value returns the daily value for metric, or NaN when absent.
func (r DailyReading) Value(metric Metric) float64 {
	v, ok := r.Values[metric]
	if !ok {
		return math.NaN()
	}
	return v
}

// IsFinite reports whether v can take part in aggregation.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
