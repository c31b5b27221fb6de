package selection

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/yanqian/facility-heatmap/internal/domain/facility"
	apperrors "github.com/yanqian/facility-heatmap/pkg/errors"
	"github.com/yanqian/facility-heatmap/pkg/util"
)

// DefaultMetric is the metric of a fresh session.
const DefaultMetric = facility.MetricRH

// Service reads and updates per-session selection state.
type Service interface {
	Get(ctx context.Context, sessionID string) (State, error)
	Update(ctx context.Context, sessionID string, req UpdateRequest) (State, error)
}

type service struct {
	cfg    Config
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires the selection domain.
func NewService(cfg Config, store Store, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		store:  store,
		logger: logger.With("component", "selection.service"),
		now:    util.NowUTC,
	}
}

func (s *service) Get(ctx context.Context, sessionID string) (State, error) {
	if strings.TrimSpace(sessionID) == "" {
		return State{Metric: DefaultMetric}, nil
	}
	state, ok, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return State{}, apperrors.Wrap(apperrors.CodeStoreError, "failed to read selection", err)
	}
	if !ok {
		return State{Metric: DefaultMetric}, nil
	}
	if state.Metric == "" {
		state.Metric = DefaultMetric
	}
	return state, nil
}

func (s *service) Update(ctx context.Context, sessionID string, req UpdateRequest) (State, error) {
	if strings.TrimSpace(sessionID) == "" {
		return State{}, apperrors.Wrap(apperrors.CodeInvalidInput, "session id is required", nil)
	}
	state, err := s.Get(ctx, sessionID)
	if err != nil {
		return State{}, err
	}

	if req.Metric != nil {
		metric, err := facility.ParseMetric(*req.Metric)
		if err != nil {
			return State{}, apperrors.Wrap(apperrors.CodeInvalidInput, "unknown metric", err)
		}
		state.Metric = metric
	}
	if req.ZoneStation != nil {
		station := strings.TrimSpace(*req.ZoneStation)
		if station != "" {
			key, err := facility.ParseStationKey(station)
			if err != nil {
				return State{}, apperrors.Wrap(stationCode(err), "invalid station selection", err)
			}
			station = key.String()
		}
		state.ZoneStation = station
	}

	state.UpdatedAt = s.now()
	if err := s.store.Save(ctx, sessionID, state, s.cfg.TTL); err != nil {
		return State{}, apperrors.Wrap(apperrors.CodeStoreError, "failed to save selection", err)
	}
	s.logger.Debug("selection updated", "session", sessionID, "metric", state.Metric, "station", state.ZoneStation)
	return state, nil
}

func stationCode(err error) string {
	switch {
	case errors.Is(err, facility.ErrInvalidFormat):
		return apperrors.CodeInvalidFormat
	case errors.Is(err, facility.ErrUnknownZone):
		return apperrors.CodeUnknownZone
	case errors.Is(err, facility.ErrInvalidStationNumber):
		return apperrors.CodeInvalidStationNumber
	default:
		return apperrors.CodeInvalidInput
	}
}
