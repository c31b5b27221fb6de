package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/yanqian/facility-heatmap/internal/domain/facility"
	"github.com/yanqian/facility-heatmap/pkg/metrics"
	"github.com/yanqian/facility-heatmap/pkg/util"
)

// Source loads the raw tabular data sets.
type Source interface {
	Readings(ctx context.Context) (ReadingSet, error)
	DailyAverages(ctx context.Context) (DailySet, error)
}

// ReadingSet is the parsed reading table plus parse statistics.
type ReadingSet struct {
	Rows          []facility.SensorReading
	InvalidValues int
}

// DailySet is the parsed daily-average table plus parse statistics.
type DailySet struct {
	Rows          []facility.DailyReading
	InvalidValues int
}

// Config controls snapshot caching.
type Config struct {
	// RefreshInterval reloads a snapshot once it is older than this; zero keeps it for the process lifetime.
	RefreshInterval time.Duration
}

// snapshot is guarded by its own lock; loads run outside it and are
// collapsed per data set.
type snapshot[T any] struct {
	mu       sync.RWMutex
	value    T
	loadedAt time.Time
	loaded   bool
	flight   singleflight.Group
}

func (s *snapshot[T]) read() (T, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.loadedAt, s.loaded
}

func (s *snapshot[T]) publish(value T, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
	s.loadedAt = at
	s.loaded = true
}

// Repository caches the last successfully loaded data sets. A failed reload
// keeps serving the previous snapshot; only a first load failure is returned.
type Repository struct {
	cfg    Config
	source Source
	logger *slog.Logger
	now    func() time.Time

	readings snapshot[ReadingSet]
	daily    snapshot[DailySet]
}

// NewRepository wraps source with snapshot caching.
func NewRepository(cfg Config, source Source, logger *slog.Logger) *Repository {
	return &Repository{
		cfg:    cfg,
		source: source,
		logger: logger.With("component", "dataset.repository"),
		now:    util.NowUTC,
	}
}

// Readings returns the reading set rows.
func (r *Repository) Readings(ctx context.Context) ([]facility.SensorReading, error) {
	set, err := load(ctx, r, &r.readings, "readings", r.source.Readings)
	if err != nil {
		return nil, err
	}
	return set.Rows, nil
}

// DailyAverages returns the daily-average rows.
func (r *Repository) DailyAverages(ctx context.Context) ([]facility.DailyReading, error) {
	set, err := load(ctx, r, &r.daily, "daily", r.source.DailyAverages)
	if err != nil {
		return nil, err
	}
	return set.Rows, nil
}

// Preload warms both snapshots and joins their load errors.
func (r *Repository) Preload(ctx context.Context) error {
	_, readingsErr := r.Readings(ctx)
	_, dailyErr := r.DailyAverages(ctx)
	return errors.Join(readingsErr, dailyErr)
}

// Stats reports what is currently cached. It never waits for a load in flight.
func (r *Repository) Stats() metrics.DatasetStats {
	readings, readingsAt, readingsLoaded := r.readings.read()
	daily, dailyAt, dailyLoaded := r.daily.read()
	stats := metrics.DatasetStats{
		Readings:      len(readings.Rows),
		DailyRows:     len(daily.Rows),
		InvalidValues: readings.InvalidValues + daily.InvalidValues,
	}
	if readingsLoaded {
		stats.ReadingsLoadedAt = readingsAt
	}
	if dailyLoaded {
		stats.DailyLoadedAt = dailyAt
	}
	return stats
}

func load[T any](ctx context.Context, r *Repository, snap *snapshot[T], name string, fetch func(context.Context) (T, error)) (T, error) {
	value, loadedAt, loaded := snap.read()
	if loaded && !r.stale(loadedAt) {
		return value, nil
	}

	fresh, err, _ := snap.flight.Do(name, func() (any, error) {
		// a flight that finished after our read already published
		if v, at, ok := snap.read(); ok && !r.stale(at) {
			return v, nil
		}
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		at := r.now()
		snap.publish(v, at)
		r.logger.Info("dataset loaded", "dataset", name, "loaded_at", at)
		return v, nil
	})
	if err != nil {
		if prior, priorAt, ok := snap.read(); ok {
			r.logger.Warn("dataset reload failed, serving previous snapshot", "dataset", name, "loaded_at", priorAt, "error", err)
			return prior, nil
		}
		var zero T
		return zero, fmt.Errorf("load %s dataset: %w", name, err)
	}
	return fresh.(T), nil
}

func (r *Repository) stale(loadedAt time.Time) bool {
	if r.cfg.RefreshInterval <= 0 {
		return false
	}
	return r.now().Sub(loadedAt) >= r.cfg.RefreshInterval
}
