package facility

import (
	"errors"
	"fmt"
	"strings"
)

// Metric identifies one of the measured environmental quantities.
type Metric string

const (
	MetricPM25 Metric = "pm2_5"
	MetricPM10 Metric = "pm10"
	MetricCO2  Metric = "co2"
	MetricTA   Metric = "ta"
	MetricRH   Metric = "rh"
)

// ErrUnknownMetric is returned when a metric key is not part of the catalog.
var ErrUnknownMetric = errors.New("unknown metric")

// Palette names a sequential color interpolation.
type Palette string

const (
	PaletteViridis Palette = "viridis"
	PalettePlasma  Palette = "plasma"
	PaletteRdYlBu  Palette = "rdylbu"
	PaletteRdYlGn  Palette = "rdylgn"
)

// Range is a closed numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// MetricSpec describes how a metric is labelled and colored.
type MetricSpec struct {
	Key       Metric  `json:"key"`
	Label     string  `json:"label"`
	AxisLabel string  `json:"axisLabel"`
	Optimal   *Range  `json:"optimal,omitempty"`
	Palette   Palette `json:"palette"`
}

var metricOrder = []Metric{MetricPM25, MetricPM10, MetricCO2, MetricTA, MetricRH}

var metricSpecs = map[Metric]MetricSpec{
	MetricPM25: {Key: MetricPM25, Label: "PM2.5 (µg/m³)", AxisLabel: "PM2.5 (µg/m³)", Optimal: &Range{Min: 0, Max: 25}, Palette: PaletteViridis},
	MetricPM10: {Key: MetricPM10, Label: "PM10 (µg/m³)", AxisLabel: "PM10 (µg/m³)", Optimal: &Range{Min: 0, Max: 50}, Palette: PaletteViridis},
	MetricCO2:  {Key: MetricCO2, Label: "Carbon Dioxide (ppm)", AxisLabel: "CO2 (ppm)", Optimal: &Range{Min: 400, Max: 1000}, Palette: PalettePlasma},
	MetricTA:   {Key: MetricTA, Label: "Temperature (°C)", AxisLabel: "Temperature (°C)", Optimal: &Range{Min: 18, Max: 27}, Palette: PaletteRdYlBu},
	MetricRH:   {Key: MetricRH, Label: "Relative Humidity (%)", AxisLabel: "Humidity (%)", Optimal: &Range{Min: 35, Max: 50}, Palette: PaletteRdYlGn},
}

// ParseMetric resolves a metric key, ignoring surrounding whitespace and case.
func ParseMetric(raw string) (Metric, error) {
	m := Metric(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := metricSpecs[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMetric, raw)
	}
	return m, nil
}

// Spec returns the catalog entry for m. Unknown metrics get a viridis spec labelled with the raw key.
func (m Metric) Spec() MetricSpec {
	if spec, ok := metricSpecs[m]; ok {
		return spec
	}
	return MetricSpec{Key: m, Label: string(m), AxisLabel: strings.ToUpper(string(m)), Palette: PaletteViridis}
}

// Metrics lists the catalog in display order.
func Metrics() []MetricSpec {
	out := make([]MetricSpec, 0, len(metricOrder))
	for _, m := range metricOrder {
		out = append(out, metricSpecs[m])
	}
	return out
}

// OptimalRanges returns the registered optimal bands keyed by metric.
func OptimalRanges() map[Metric]Range {
	out := make(map[Metric]Range, len(metricSpecs))
	for key, spec := range metricSpecs {
		if spec.Optimal != nil {
			out[key] = *spec.Optimal
		}
	}
	return out
}
