package metrics

import "time"

// DatasetStats captures the size of the cached data sets.
type DatasetStats struct {
	Readings         int       `json:"readings"`
	DailyRows        int       `json:"dailyRows"`
	InvalidValues    int       `json:"invalidValues"`
	ReadingsLoadedAt time.Time `json:"readingsLoadedAt,omitempty"`
	DailyLoadedAt    time.Time `json:"dailyLoadedAt,omitempty"`
}

// IsZero reports whether nothing has been loaded yet.
func (s DatasetStats) IsZero() bool {
	return s.Readings == 0 && s.DailyRows == 0 && s.ReadingsLoadedAt.IsZero() && s.DailyLoadedAt.IsZero()
}
