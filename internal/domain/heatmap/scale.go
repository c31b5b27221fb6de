package heatmap

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/yanqian/facility-heatmap/internal/domain/facility"
)

// ErrEmptyInput is returned when there is no finite value to build a scale from.
var ErrEmptyInput = errors.New("no finite values to scale")

const (
	// PaddingRatio is the share of the span added on each side of the legend.
	PaddingRatio = 0.1
	// MinHalfSpan widens a zero-width domain to [v-MinHalfSpan, v+MinHalfSpan].
	MinHalfSpan = 1.0
)

// LegendDomain is the numeric range mapped onto the color gradient.
type LegendDomain struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Band is the optimal range overlay. Top and Bottom are fractions of the
// legend height measured from its top, where the legend maximum sits.
type Band struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Label  string  `json:"label"`
}

// GradientStop is a legend gradient color at Offset (0 top, 1 bottom).
type GradientStop struct {
	Offset float64 `json:"offset"`
	Value  float64 `json:"value"`
	Color  Color   `json:"color"`
}

// Scale maps metric values onto a palette. The legend maximum maps to the
// palette start and the legend minimum to its end.
type Scale struct {
	Metric      facility.Metric
	Palette     facility.Palette
	Domain      LegendDomain
	OptimalBand *Band
	ramp        ramp
}

// BuildColorScale derives the legend domain from values and the optimal
// range registered for metric, then selects the metric palette.
func BuildColorScale(values []float64, metric facility.Metric, optimal map[facility.Metric]facility.Range) (Scale, error) {
	dataMin, dataMax := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if !facility.IsFinite(v) {
			continue
		}
		dataMin = math.Min(dataMin, v)
		dataMax = math.Max(dataMax, v)
	}
	if dataMin > dataMax {
		return Scale{}, fmt.Errorf("%s: %w", metric, ErrEmptyInput)
	}

	lo, hi := dataMin, dataMax
	band, hasBand := optimal[metric]
	if hasBand {
		lo = math.Min(lo, band.Min)
		hi = math.Max(hi, band.Max)
	}

	// halves keep the span finite for readings near ±MaxFloat64
	if half := hi/2 - lo/2; half > 0 {
		pad := half * 2 * PaddingRatio
		lo = clampFinite(lo - pad)
		hi = clampFinite(hi + pad)
	} else {
		lo = clampFinite(lo - MinHalfSpan)
		hi = clampFinite(hi + MinHalfSpan)
	}

	spec := metric.Spec()
	scale := Scale{
		Metric:  metric,
		Palette: spec.Palette,
		Domain:  LegendDomain{Min: lo, Max: hi},
		ramp:    rampFor(spec.Palette),
	}
	if hasBand {
		scale.OptimalBand = &Band{
			Min:    band.Min,
			Max:    band.Max,
			Top:    scale.fromTop(band.Max),
			Bottom: scale.fromTop(band.Min),
			Label:  fmt.Sprintf("Optimal: %s-%s", formatBound(band.Min), formatBound(band.Max)),
		}
	}
	return scale, nil
}

// Position returns the interpolator parameter for v, clamped to [0,1].
func (s Scale) Position(v float64) (float64, bool) {
	if math.IsNaN(v) {
		return 0, false
	}
	return clamp01(s.fromTop(v))
}

// ColorOf maps v onto the palette. NaN has no color.
func (s Scale) ColorOf(v float64) (Color, bool) {
	t, ok := s.Position(v)
	if !ok {
		return "", false
	}
	return s.ramp.at(t)
}

// Ticks returns nice legend axis values from the maximum down to the minimum.
func (s Scale) Ticks() []float64 {
	asc := niceTicks(s.Domain.Min, s.Domain.Max, defaultTickCount)
	out := make([]float64, len(asc))
	for i, v := range asc {
		out[len(asc)-1-i] = v
	}
	return out
}

// GradientStops samples the scale at each tick for the legend gradient.
func (s Scale) GradientStops() []GradientStop {
	ticks := s.Ticks()
	if len(ticks) == 0 {
		ticks = []float64{s.Domain.Max, s.Domain.Min}
	}
	stops := make([]GradientStop, 0, len(ticks))
	for i, v := range ticks {
		offset := 0.0
		if len(ticks) > 1 {
			offset = float64(i) / float64(len(ticks)-1)
		}
		color, _ := s.ColorOf(v)
		stops = append(stops, GradientStop{Offset: offset, Value: v, Color: color})
	}
	return stops
}

func (s Scale) fromTop(v float64) float64 {
	half := s.Domain.Max/2 - s.Domain.Min/2
	if half == 0 {
		return 0
	}
	return (s.Domain.Max/2 - v/2) / half
}

func clamp01(t float64) (float64, bool) {
	if math.IsNaN(t) {
		return 0, false
	}
	return math.Max(0, math.Min(1, t)), true
}

func clampFinite(v float64) float64 {
	return math.Max(-math.MaxFloat64, math.Min(math.MaxFloat64, v))
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
