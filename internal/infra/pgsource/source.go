// Package pgsource loads the reading and daily-average sets from Postgres.
package pgsource

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/facility-heatmap/internal/domain/dataset"
	"github.com/yanqian/facility-heatmap/internal/domain/facility"
)

const readingsQuery = `
	SELECT zone_id, pm2_5, pm10, co2, ta, rh
	FROM sensor_readings
`

const dailyQuery = `
	SELECT zone_id, station_no, datetime, pm2_5, pm10, co2, ta, rh
	FROM daily_averages
	ORDER BY datetime
`

// Source implements dataset.Source backed by pgx.
type Source struct {
	pool *pgxpool.Pool
}

// NewSource constructs the source.
func NewSource(pool *pgxpool.Pool) *Source {
	return &Source{pool: pool}
}

// Readings implements dataset.Source.
func (s *Source) Readings(ctx context.Context) (dataset.ReadingSet, error) {
	rows, err := s.pool.Query(ctx, readingsQuery)
	if err != nil {
		return dataset.ReadingSet{}, fmt.Errorf("query sensor_readings: %w", err)
	}
	defer rows.Close()

	var set dataset.ReadingSet
	for rows.Next() {
		reading, invalid, err := scanReading(rows)
		if err != nil {
			return dataset.ReadingSet{}, err
		}
		set.Rows = append(set.Rows, reading)
		set.InvalidValues += invalid
	}
	if err := rows.Err(); err != nil {
		return dataset.ReadingSet{}, err
	}
	if set.Rows == nil {
		set.Rows = []facility.SensorReading{}
	}
	return set, nil
}

// DailyAverages implements dataset.Source.
func (s *Source) DailyAverages(ctx context.Context) (dataset.DailySet, error) {
	rows, err := s.pool.Query(ctx, dailyQuery)
	if err != nil {
		return dataset.DailySet{}, fmt.Errorf("query daily_averages: %w", err)
	}
	defer rows.Close()

	var set dataset.DailySet
	for rows.Next() {
		row, invalid, err := scanDaily(rows)
		if err != nil {
			return dataset.DailySet{}, err
		}
		set.Rows = append(set.Rows, row)
		set.InvalidValues += invalid
	}
	if err := rows.Err(); err != nil {
		return dataset.DailySet{}, err
	}
	if set.Rows == nil {
		set.Rows = []facility.DailyReading{}
	}
	return set, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReading(row rowScanner) (facility.SensorReading, int, error) {
	var (
		zone   string
		values [5]sql.NullFloat64
	)
	if err := row.Scan(&zone, &values[0], &values[1], &values[2], &values[3], &values[4]); err != nil {
		return facility.SensorReading{}, 0, err
	}
	f, invalid := floats(values[:])
	return facility.SensorReading{
		ZoneID: strings.TrimSpace(zone),
		PM25:   f[0],
		PM10:   f[1],
		CO2:    f[2],
		TA:     f[3],
		RH:     f[4],
	}, invalid, nil
}

func scanDaily(row rowScanner) (facility.DailyReading, int, error) {
	var (
		zone    string
		station string
		date    sql.NullTime
		values  [5]sql.NullFloat64
	)
	if err := row.Scan(&zone, &station, &date, &values[0], &values[1], &values[2], &values[3], &values[4]); err != nil {
		return facility.DailyReading{}, 0, err
	}
	f, invalid := floats(values[:])
	out := facility.DailyReading{
		ZoneID:    strings.TrimSpace(zone),
		StationNo: strings.TrimSpace(station),
		Values: map[facility.Metric]float64{
			facility.MetricPM25: f[0],
			facility.MetricPM10: f[1],
			facility.MetricCO2:  f[2],
			facility.MetricTA:   f[3],
			facility.MetricRH:   f[4],
		},
	}
	if date.Valid {
		out.Date = date.Time.UTC()
		out.DateValid = true
	}
	return out, invalid, nil
}

// floats maps NULL and non-finite columns to NaN and counts them.
func floats(values []sql.NullFloat64) ([]float64, int) {
	out := make([]float64, len(values))
	invalid := 0
	for i, v := range values {
		if !v.Valid || !facility.IsFinite(v.Float64) {
			out[i] = math.NaN()
			invalid++
			continue
		}
		out[i] = v.Float64
	}
	return out, invalid
}

var _ dataset.Source = (*Source)(nil)
