package util

import (
	"encoding/json"
	"math"
)

// NullFloat is a float64 that encodes non-finite values as JSON null.
type NullFloat float64

// MarshalJSON implements json.Marshaler.
func (f NullFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(f))
}

// Valid reports whether the value is finite.
func (f NullFloat) Valid() bool {
	v := float64(f)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
