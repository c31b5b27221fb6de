package csvsource

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/yanqian/facility-heatmap/internal/domain/dataset"
)

// Opener fetches a named CSV resource.
type Opener interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// Source implements dataset.Source on top of CSV resources.
type Source struct {
	opener   Opener
	readings string
	daily    string
	logger   *slog.Logger
}

// NewSource builds a CSV source reading the two named resources from opener.
func NewSource(opener Opener, readingsName, dailyName string, logger *slog.Logger) *Source {
	return &Source{
		opener:   opener,
		readings: readingsName,
		daily:    dailyName,
		logger:   logger.With("component", "csvsource"),
	}
}

// Readings implements dataset.Source.
func (s *Source) Readings(ctx context.Context) (dataset.ReadingSet, error) {
	body, err := s.opener.Open(ctx, s.readings)
	if err != nil {
		return dataset.ReadingSet{}, fmt.Errorf("open %s: %w", s.readings, err)
	}
	defer body.Close()

	set, err := ParseReadings(body)
	if err != nil {
		return dataset.ReadingSet{}, fmt.Errorf("parse %s: %w", s.readings, err)
	}
	s.logger.Info("readings parsed", "name", s.readings, "rows", len(set.Rows), "invalid_values", set.InvalidValues)
	return set, nil
}

// DailyAverages implements dataset.Source.
func (s *Source) DailyAverages(ctx context.Context) (dataset.DailySet, error) {
	body, err := s.opener.Open(ctx, s.daily)
	if err != nil {
		return dataset.DailySet{}, fmt.Errorf("open %s: %w", s.daily, err)
	}
	defer body.Close()

	set, err := ParseDaily(body)
	if err != nil {
		return dataset.DailySet{}, fmt.Errorf("parse %s: %w", s.daily, err)
	}
	s.logger.Info("daily averages parsed", "name", s.daily, "rows", len(set.Rows), "invalid_values", set.InvalidValues)
	return set, nil
}

var _ dataset.Source = (*Source)(nil)
