package selectionstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/facility-heatmap/internal/domain/selection"
)

// ValkeyStore persists selections in a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "heatmap"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Get(ctx context.Context, sessionID string) (selection.State, bool, error) {
	cmd := s.client.B().Get().Key(s.sessionKey(sessionID)).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return selection.State{}, false, nil
		}
		return selection.State{}, false, err
	}
	var state selection.State
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return selection.State{}, false, err
	}
	return state, true, nil
}

func (s *ValkeyStore) Save(ctx context.Context, sessionID string, state selection.State, ttl time.Duration) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.sessionKey(sessionID)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) sessionKey(id string) string {
	return fmt.Sprintf("%s:session:%s", s.prefix, id)
}

var _ selection.Store = (*ValkeyStore)(nil)
