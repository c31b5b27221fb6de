package heatmap

import (
	"math"
	"sort"

	"github.com/yanqian/facility-heatmap/internal/domain/facility"
)

// ZoneAggregate is the mean of a metric for one zone joined with its geometry.
// Value is NaN when the zone had no valid readings.
type ZoneAggregate struct {
	Zone  string
	Value float64
	facility.Geometry
}

type accumulator struct {
	sum   float64
	count int
	// running is the incremental mean, used when sum overflows.
	running float64
}

func (a *accumulator) add(v float64) {
	a.sum += v
	a.count++
	n := float64(a.count)
	a.running += v/n - a.running/n
}

func (a *accumulator) mean() float64 {
	if a.count == 0 {
		return math.NaN()
	}
	if mean := a.sum / float64(a.count); facility.IsFinite(mean) {
		return mean
	}
	return a.running
}

// Aggregate groups readings by zone and averages metric over finite values.
// Zones without static geometry are dropped. The result is in floor order.
func Aggregate(readings []facility.SensorReading, metric facility.Metric) []ZoneAggregate {
	if len(readings) == 0 {
		return []ZoneAggregate{}
	}

	groups := make(map[string]*accumulator)
	for _, r := range readings {
		acc, ok := groups[r.ZoneID]
		if !ok {
			acc = &accumulator{}
			groups[r.ZoneID] = acc
		}
		v := r.Value(metric)
		if !facility.IsFinite(v) {
			continue
		}
		acc.add(v)
	}

	out := make([]ZoneAggregate, 0, len(groups))
	for zone, acc := range groups {
		geometry, ok := facility.GeometryOf(zone)
		if !ok {
			continue
		}
		out = append(out, ZoneAggregate{Zone: zone, Value: acc.mean(), Geometry: geometry})
	}
	sort.Slice(out, func(i, j int) bool {
		return facility.ZoneRank(out[i].Zone) < facility.ZoneRank(out[j].Zone)
	})
	return out
}

// FilterZone keeps only the aggregate of zone.
func FilterZone(aggs []ZoneAggregate, zone string) []ZoneAggregate {
	out := make([]ZoneAggregate, 0, 1)
	for _, agg := range aggs {
		if agg.Zone == zone {
			out = append(out, agg)
		}
	}
	return out
}

// Values extracts the aggregate values in order.
func Values(aggs []ZoneAggregate) []float64 {
	out := make([]float64, len(aggs))
	for i, agg := range aggs {
		out[i] = agg.Value
	}
	return out
}
