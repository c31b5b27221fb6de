package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/facility-heatmap/internal/domain/facility"
	"github.com/yanqian/facility-heatmap/internal/domain/heatmap"
	"github.com/yanqian/facility-heatmap/internal/domain/selection"
	"github.com/yanqian/facility-heatmap/internal/domain/timeseries"
	apperrors "github.com/yanqian/facility-heatmap/pkg/errors"
	"github.com/yanqian/facility-heatmap/pkg/metrics"
)

// StatsReporter exposes dataset load statistics.
type StatsReporter interface {
	Stats() metrics.DatasetStats
}

// Handler wires the HTTP transport to domain services.
type Handler struct {
	heatmapSvc   heatmap.Service
	seriesSvc    timeseries.Service
	selectionSvc selection.Service
	stats        StatsReporter
	logger       *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(heatmapSvc heatmap.Service, seriesSvc timeseries.Service, selectionSvc selection.Service, stats StatsReporter, logger *slog.Logger) *Handler {
	return &Handler{
		heatmapSvc:   heatmapSvc,
		seriesSvc:    seriesSvc,
		selectionSvc: selectionSvc,
		stats:        stats,
		logger:       logger.With("component", "http.handler"),
	}
}

// Health reports liveness and what the dataset repository has loaded so far.
func (h *Handler) Health(c *gin.Context) {
	stats := h.stats.Stats()
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"loaded":  !stats.IsZero(),
		"dataset": stats,
	})
}

// ListMetrics returns the metric catalog.
func (h *Handler) ListMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"metrics": facility.Metrics()})
}

// ListZones returns the facility extent and zone geometry.
func (h *Handler) ListZones(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"facility": heatmap.Extent{Width: facility.FacilityWidth, Height: facility.FacilityHeight},
		"zones":    facility.Zones(),
	})
}

// Heatmap returns the floor-plan model. The metric falls back to the session selection.
func (h *Handler) Heatmap(c *gin.Context) {
	var req heatmap.Request
	if err := c.ShouldBindQuery(&req); err != nil {
		abortWithError(c, invalidInput(err))
		return
	}
	if strings.TrimSpace(req.Metric) == "" {
		req.Metric = string(h.currentSelection(c).Metric)
	}

	resp, err := h.heatmapSvc.Overview(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TimeSeries returns the line chart model. The station falls back to the session selection.
func (h *Handler) TimeSeries(c *gin.Context) {
	var req timeseries.Request
	if err := c.ShouldBindQuery(&req); err != nil {
		abortWithError(c, invalidInput(err))
		return
	}
	if strings.TrimSpace(req.Station) == "" {
		req.Station = h.currentSelection(c).ZoneStation
	}

	resp, err := h.seriesSvc.Series(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetSelection returns the session selection.
func (h *Handler) GetSelection(c *gin.Context) {
	state, err := h.selectionSvc.Get(c.Request.Context(), sessionID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// UpdateSelection changes the session selection.
func (h *Handler) UpdateSelection(c *gin.Context) {
	var req selection.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, invalidInput(err))
		return
	}
	state, err := h.selectionSvc.Update(c.Request.Context(), sessionID(c), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// currentSelection never fails the request; a broken store degrades to defaults.
func (h *Handler) currentSelection(c *gin.Context) selection.State {
	state, err := h.selectionSvc.Get(c.Request.Context(), sessionID(c))
	if err != nil {
		h.logger.Warn("selection lookup failed", "error", err)
		return selection.State{}
	}
	return state
}

func invalidInput(err error) error {
	return apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), err)
}
