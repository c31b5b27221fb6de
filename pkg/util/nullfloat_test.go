package util

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNullFloatEncodesNaNAsNull(t *testing.T) {
	payload, err := json.Marshal(struct {
		A NullFloat `json:"a"`
		B NullFloat `json:"b"`
	}{A: NullFloat(math.NaN()), B: 12.5})
	require.NoError(t, err)
	require.JSONEq(t, `{"a":null,"b":12.5}`, string(payload))
}

func TestNullFloatValid(t *testing.T) {
	require.True(t, NullFloat(0).Valid())
	require.False(t, NullFloat(math.NaN()).Valid())
	require.False(t, NullFloat(math.Inf(-1)).Valid())

	payload, err := json.Marshal([]NullFloat{NullFloat(math.Inf(1)), -3})
	require.NoError(t, err)
	require.JSONEq(t, `[null,-3]`, string(payload))
}
