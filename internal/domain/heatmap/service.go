package heatmap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yanqian/facility-heatmap/internal/domain/facility"
	apperrors "github.com/yanqian/facility-heatmap/pkg/errors"
	"github.com/yanqian/facility-heatmap/pkg/util"
)

// DefaultMetric is shown when no metric has been selected.
const DefaultMetric = facility.MetricRH

// Service builds the floor-plan heatmap model.
type Service interface {
	Overview(ctx context.Context, req Request) (Response, error)
}

// ReadingSource provides the parsed reading set.
type ReadingSource interface {
	Readings(ctx context.Context) ([]facility.SensorReading, error)
}

type service struct {
	source  ReadingSource
	optimal map[facility.Metric]facility.Range
	logger  *slog.Logger
}

// NewService wires the heatmap domain.
func NewService(source ReadingSource, logger *slog.Logger) Service {
	return &service{
		source:  source,
		optimal: facility.OptimalRanges(),
		logger:  logger.With("component", "heatmap.service"),
	}
}

func (s *service) Overview(ctx context.Context, req Request) (Response, error) {
	metric := DefaultMetric
	if strings.TrimSpace(req.Metric) != "" {
		parsed, err := facility.ParseMetric(req.Metric)
		if err != nil {
			return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "unknown metric", err)
		}
		metric = parsed
	}
	zone := strings.TrimSpace(req.Zone)
	if zone != "" && !facility.IsKnownZone(zone) {
		return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "unknown zone", fmt.Errorf("%w: %s", facility.ErrUnknownZone, zone))
	}

	readings, err := s.source.Readings(ctx)
	if err != nil {
		return Response{}, apperrors.Wrap(apperrors.CodeDatasetUnavailable, "failed to load sensor readings", err)
	}

	aggs := Aggregate(readings, metric)
	if zone != "" {
		aggs = FilterZone(aggs, zone)
	}

	scale, err := BuildColorScale(Values(aggs), metric, s.optimal)
	if err != nil {
		if errors.Is(err, ErrEmptyInput) {
			return Response{}, apperrors.Wrap(apperrors.CodeEmptyInput, "no data available for the selected metric", err)
		}
		return Response{}, err
	}
	s.logger.Debug("heatmap built", "metric", metric, "zones", len(aggs), "legend_min", scale.Domain.Min, "legend_max", scale.Domain.Max)

	return buildResponse(metric, aggs, scale), nil
}

func buildResponse(metric facility.Metric, aggs []ZoneAggregate, scale Scale) Response {
	spec := metric.Spec()
	cells := make([]ZoneCell, 0, len(aggs))
	for _, agg := range aggs {
		color, _ := scale.ColorOf(agg.Value)
		cells = append(cells, ZoneCell{
			Zone:     agg.Zone,
			Value:    util.NullFloat(agg.Value),
			Display:  displayValue(agg.Value),
			Color:    color,
			Geometry: agg.Geometry,
		})
	}
	return Response{
		Metric:   metric,
		Label:    spec.Label,
		Title:    fmt.Sprintf("Overview of Facility: %s Levels", spec.Label),
		Facility: Extent{Width: facility.FacilityWidth, Height: facility.FacilityHeight},
		Zones:    cells,
		Legend: Legend{
			Title:   spec.Label,
			Palette: scale.Palette,
			Min:     scale.Domain.Min,
			Max:     scale.Domain.Max,
			Ticks:   scale.Ticks(),
			Stops:   scale.GradientStops(),
			Optimal: scale.OptimalBand,
		},
	}
}

func displayValue(v float64) string {
	if !facility.IsFinite(v) {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", v)
}
