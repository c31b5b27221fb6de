package selection

import (
	"context"
	"time"

	"github.com/yanqian/facility-heatmap/internal/domain/facility"
)

// State is what a browser session has currently selected.
type State struct {
	ZoneStation string          `json:"zoneStation,omitempty"`
	Metric      facility.Metric `json:"metric"`
	UpdatedAt   time.Time       `json:"updatedAt,omitempty"`
}

// UpdateRequest changes the selection. Nil fields are left untouched; an
// empty station clears it.
type UpdateRequest struct {
	ZoneStation *string `json:"zoneStation"`
	Metric      *string `json:"metric"`
}

// Store persists session state for the session lifetime.
type Store interface {
	Get(ctx context.Context, sessionID string) (State, bool, error)
	Save(ctx context.Context, sessionID string, state State, ttl time.Duration) error
}

// Config holds selection knobs.
type Config struct {
	TTL time.Duration
}
