package selection

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/facility-heatmap/internal/domain/facility"
	apperrors "github.com/yanqian/facility-heatmap/pkg/errors"
)

func TestGetDefaultsForNewSession(t *testing.T) {
	svc := newServiceUnderTest(&stubStore{})

	state, err := svc.Get(context.Background(), "abc")
	require.NoError(t, err)
	require.Equal(t, State{Metric: DefaultMetric}, state)
}

func TestUpdatePersistsNormalizedSelection(t *testing.T) {
	store := &stubStore{}
	svc := newServiceUnderTest(store)

	station := " 7_inspect_3 "
	metric := "CO2"
	state, err := svc.Update(context.Background(), "abc", UpdateRequest{ZoneStation: &station, Metric: &metric})
	require.NoError(t, err)
	require.Equal(t, "7_inspect_3", state.ZoneStation)
	require.Equal(t, facility.MetricCO2, state.Metric)
	require.Equal(t, fixedNow(), state.UpdatedAt)
	require.Equal(t, 30*time.Minute, store.lastTTL)

	again, err := svc.Get(context.Background(), "abc")
	require.NoError(t, err)
	require.Equal(t, state, again)
}

func TestUpdatePartialKeepsOtherFields(t *testing.T) {
	store := &stubStore{states: map[string]State{"abc": {ZoneStation: "5_engine_1", Metric: facility.MetricTA}}}
	svc := newServiceUnderTest(store)

	metric := "pm10"
	state, err := svc.Update(context.Background(), "abc", UpdateRequest{Metric: &metric})
	require.NoError(t, err)
	require.Equal(t, "5_engine_1", state.ZoneStation)
	require.Equal(t, facility.MetricPM10, state.Metric)

	empty := ""
	state, err = svc.Update(context.Background(), "abc", UpdateRequest{ZoneStation: &empty})
	require.NoError(t, err)
	require.Empty(t, state.ZoneStation)
}

func TestUpdateRejectsInvalidSelections(t *testing.T) {
	svc := newServiceUnderTest(&stubStore{})

	bad := "9_unknown_1"
	_, err := svc.Update(context.Background(), "abc", UpdateRequest{ZoneStation: &bad})
	require.True(t, apperrors.IsCode(err, apperrors.CodeUnknownZone))

	badNo := "1_trim_1_x"
	_, err = svc.Update(context.Background(), "abc", UpdateRequest{ZoneStation: &badNo})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidStationNumber))

	metric := "lux"
	_, err = svc.Update(context.Background(), "abc", UpdateRequest{Metric: &metric})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.Update(context.Background(), " ", UpdateRequest{})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestStoreFailuresAreWrapped(t *testing.T) {
	svc := newServiceUnderTest(&stubStore{err: errors.New("valkey down")})

	_, err := svc.Get(context.Background(), "abc")
	require.True(t, apperrors.IsCode(err, apperrors.CodeStoreError))
}

type stubStore struct {
	states  map[string]State
	err     error
	lastTTL time.Duration
}

func (s *stubStore) Get(ctx context.Context, sessionID string) (State, bool, error) {
	if s.err != nil {
		return State{}, false, s.err
	}
	state, ok := s.states[sessionID]
	return state, ok, nil
}

func (s *stubStore) Save(ctx context.Context, sessionID string, state State, ttl time.Duration) error {
	if s.err != nil {
		return s.err
	}
	if s.states == nil {
		s.states = make(map[string]State)
	}
	s.states[sessionID] = state
	s.lastTTL = ttl
	return nil
}

func fixedNow() time.Time {
	return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

func newServiceUnderTest(store Store) *service {
	return &service{
		cfg:    Config{TTL: 30 * time.Minute},
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    fixedNow,
	}
}
