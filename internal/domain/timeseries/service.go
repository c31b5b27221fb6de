package timeseries

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/yanqian/facility-heatmap/internal/domain/facility"
	apperrors "github.com/yanqian/facility-heatmap/pkg/errors"
)

// DefaultMetric is charted when no metric has been selected.
const DefaultMetric = facility.MetricPM25

// Service builds station time series.
type Service interface {
	Series(ctx context.Context, req Request) (Response, error)
}

// DailySource provides the parsed daily-average set.
type DailySource interface {
	DailyAverages(ctx context.Context) ([]facility.DailyReading, error)
}

type service struct {
	source DailySource
	logger *slog.Logger
}

// NewService wires the time-series domain.
func NewService(source DailySource, logger *slog.Logger) Service {
	return &service{source: source, logger: logger.With("component", "timeseries.service")}
}

func (s *service) Series(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.Station) == "" {
		return Response{}, apperrors.Wrap(apperrors.CodeNoSelection, "Please select a station first", nil)
	}
	key, err := facility.ParseStationKey(req.Station)
	if err != nil {
		return Response{}, stationError(err)
	}

	metric := DefaultMetric
	if strings.TrimSpace(req.Metric) != "" {
		if metric, err = facility.ParseMetric(req.Metric); err != nil {
			return Response{}, apperrors.Wrap(apperrors.CodeInvalidInput, "unknown metric", err)
		}
	}

	rows, err := s.source.DailyAverages(ctx)
	if err != nil {
		return Response{}, apperrors.Wrap(apperrors.CodeDatasetUnavailable, "Error loading chart data", err)
	}

	matched := 0
	points := make([]Point, 0)
	dates := make(map[string]struct{})
	for _, row := range rows {
		if row.ZoneID != key.ZoneID || strings.TrimSpace(row.StationNo) != key.StationNo {
			continue
		}
		matched++
		v := row.Value(metric)
		if !row.DateValid || !facility.IsFinite(v) {
			continue
		}
		date := row.Date.Format(facility.DateLayout)
		if _, dup := dates[date]; dup {
			s.logger.Debug("duplicate daily row ignored", "station", key.String(), "date", date)
			continue
		}
		dates[date] = struct{}{}
		points = append(points, Point{Date: date, Value: v})
	}

	if matched == 0 {
		return Response{}, apperrors.Wrap(apperrors.CodeNoData, fmt.Sprintf("No %s data for %s", metric, key), nil)
	}
	if len(points) == 0 {
		return Response{}, apperrors.Wrap(apperrors.CodeNoData, fmt.Sprintf("No valid %s data for this station", metric), nil)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })

	spec := metric.Spec()
	return Response{
		Zone:      key.ZoneID,
		Station:   key.StationNo,
		Metric:    metric,
		Title:     fmt.Sprintf("%s<br>%s Time Series", key.Title(), strings.ToUpper(string(metric))),
		AxisLabel: spec.AxisLabel,
		Points:    points,
	}, nil
}

func stationError(err error) error {
	var keyErr *facility.StationKeyError
	if !errors.As(err, &keyErr) {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "invalid station", err)
	}
	switch {
	case errors.Is(err, facility.ErrInvalidFormat):
		return apperrors.Wrap(apperrors.CodeInvalidFormat, "Invalid station format: "+keyErr.Value, err)
	case errors.Is(err, facility.ErrUnknownZone):
		return apperrors.Wrap(apperrors.CodeUnknownZone, "Invalid zone: "+keyErr.Value, err)
	default:
		return apperrors.Wrap(apperrors.CodeInvalidStationNumber, "Invalid station number: "+keyErr.Value, err)
	}
}
