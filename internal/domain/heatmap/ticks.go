package heatmap

import "math"

const defaultTickCount = 10

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// niceTicks returns round values in [lo, hi] spaced by 1, 2 or 5 times a
// power of ten, aiming for roughly count ticks.
func niceTicks(lo, hi float64, count int) []float64 {
	if lo == hi {
		return []float64{lo}
	}
	if !(hi > lo) || count <= 0 {
		return nil
	}

	step := tickStep(lo, hi, count)
	if step <= 0 || math.IsInf(step, 0) || math.IsNaN(step) {
		return nil
	}

	var ticks []float64
	if step < 1 {
		inv := math.Round(1 / step)
		first, last := math.Ceil(lo*inv), math.Floor(hi*inv)
		for i := first; i <= last; i++ {
			ticks = append(ticks, i/inv)
		}
		return ticks
	}
	first, last := math.Ceil(lo/step), math.Floor(hi/step)
	for i := first; i <= last; i++ {
		ticks = append(ticks, i*step)
	}
	return ticks
}

func tickStep(lo, hi float64, count int) float64 {
	raw := (hi - lo) / float64(count)
	power := math.Floor(math.Log10(raw))
	rel := raw / math.Pow(10, power)
	factor := 1.0
	switch {
	case rel >= e10:
		factor = 10
	case rel >= e5:
		factor = 5
	case rel >= e2:
		factor = 2
	}
	return factor * math.Pow(10, power)
}
