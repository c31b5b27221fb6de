package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/facility-heatmap/internal/domain/dataset"
	"github.com/yanqian/facility-heatmap/internal/domain/facility"
)

// Column names shared by both data sets.
const (
	ColumnZoneID    = "zone_id"
	ColumnStationNo = "station_no"
	ColumnDatetime  = "datetime"
)

var metricColumns = []facility.Metric{
	facility.MetricPM25,
	facility.MetricTA,
	facility.MetricRH,
	facility.MetricCO2,
	facility.MetricPM10,
}

// ParseReadings decodes the reading set (zone_id, pm2_5, ta, rh, co2, pm10).
// Unparseable numeric cells become NaN and are counted as invalid.
func ParseReadings(r io.Reader) (dataset.ReadingSet, error) {
	rows, header, err := readAll(r)
	if err != nil {
		return dataset.ReadingSet{}, err
	}
	zoneIdx, err := header.require(ColumnZoneID)
	if err != nil {
		return dataset.ReadingSet{}, err
	}

	set := dataset.ReadingSet{Rows: make([]facility.SensorReading, 0, len(rows))}
	for _, rec := range rows {
		values := make(map[facility.Metric]float64, len(metricColumns))
		for _, m := range metricColumns {
			v, ok := header.float(rec, string(m))
			if !ok {
				set.InvalidValues++
			}
			values[m] = v
		}
		set.Rows = append(set.Rows, facility.SensorReading{
			ZoneID: field(rec, zoneIdx),
			PM25:   values[facility.MetricPM25],
			PM10:   values[facility.MetricPM10],
			CO2:    values[facility.MetricCO2],
			TA:     values[facility.MetricTA],
			RH:     values[facility.MetricRH],
		})
	}
	return set, nil
}

// ParseDaily decodes the daily-average set (zone_id, station_no, datetime, metric columns).
func ParseDaily(r io.Reader) (dataset.DailySet, error) {
	rows, header, err := readAll(r)
	if err != nil {
		return dataset.DailySet{}, err
	}
	zoneIdx, err := header.require(ColumnZoneID)
	if err != nil {
		return dataset.DailySet{}, err
	}
	stationIdx, err := header.require(ColumnStationNo)
	if err != nil {
		return dataset.DailySet{}, err
	}
	dateIdx, err := header.require(ColumnDatetime)
	if err != nil {
		return dataset.DailySet{}, err
	}

	set := dataset.DailySet{Rows: make([]facility.DailyReading, 0, len(rows))}
	for _, rec := range rows {
		row := facility.DailyReading{
			ZoneID:    field(rec, zoneIdx),
			StationNo: field(rec, stationIdx),
			Values:    make(map[facility.Metric]float64, len(metricColumns)),
		}
		if ts, err := time.Parse(facility.DateLayout, field(rec, dateIdx)); err == nil {
			row.Date = ts
			row.DateValid = true
		}
		for _, m := range metricColumns {
			if _, present := header[string(m)]; !present {
				continue
			}
			v, ok := header.float(rec, string(m))
			if !ok {
				set.InvalidValues++
			}
			row.Values[m] = v
		}
		set.Rows = append(set.Rows, row)
	}
	return set, nil
}

type columns map[string]int

func (c columns) require(name string) (int, error) {
	idx, ok := c[name]
	if !ok {
		return 0, fmt.Errorf("csv header missing column %q", name)
	}
	return idx, nil
}

func (c columns) float(rec []string, name string) (float64, bool) {
	idx, ok := c[name]
	if !ok {
		return math.NaN(), false
	}
	v, err := strconv.ParseFloat(field(rec, idx), 64)
	if err != nil || !facility.IsFinite(v) {
		return math.NaN(), false
	}
	return v, true
}

func field(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

func readAll(r io.Reader) ([][]string, columns, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	head, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, errors.New("csv is empty")
		}
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}
	header := make(columns, len(head))
	for i, name := range head {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv rows: %w", err)
	}
	return rows, header, nil
}
