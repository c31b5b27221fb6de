package timeseries

import "github.com/yanqian/facility-heatmap/internal/domain/facility"

// Request selects the station and metric to chart.
type Request struct {
	Station string `form:"station" json:"station"`
	Metric  string `form:"metric" json:"metric"`
}

// Response is the line chart model for one station.
type Response struct {
	Zone      string          `json:"zone"`
	Station   string          `json:"station"`
	Metric    facility.Metric `json:"metric"`
	Title     string          `json:"title"`
	AxisLabel string          `json:"axisLabel"`
	Points    []Point         `json:"points"`
}

// Point is one daily average.
type Point struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}
