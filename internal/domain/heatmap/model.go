package heatmap

import (
	"github.com/yanqian/facility-heatmap/internal/domain/facility"
	"github.com/yanqian/facility-heatmap/pkg/util"
)

// Request selects the metric and an optional single zone to show.
type Request struct {
	Metric string `form:"metric" json:"metric"`
	Zone   string `form:"zone" json:"zone"`
}

// Response is the floor-plan heatmap model consumed by the renderer.
type Response struct {
	Metric   facility.Metric `json:"metric"`
	Label    string          `json:"label"`
	Title    string          `json:"title"`
	Facility Extent          `json:"facility"`
	Zones    []ZoneCell      `json:"zones"`
	Legend   Legend          `json:"legend"`
}

// Extent is the facility coordinate space in meters.
type Extent struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ZoneCell is one colored rectangle of the heatmap.
type ZoneCell struct {
	Zone    string         `json:"zone"`
	Value   util.NullFloat `json:"value"`
	Display string         `json:"display"`
	Color   Color          `json:"color,omitempty"`
	facility.Geometry
}

// Legend describes the gradient legend and its optimal band.
type Legend struct {
	Title   string           `json:"title"`
	Palette facility.Palette `json:"palette"`
	Min     float64          `json:"min"`
	Max     float64          `json:"max"`
	Ticks   []float64        `json:"ticks"`
	Stops   []GradientStop   `json:"stops"`
	Optimal *Band            `json:"optimal,omitempty"`
}
