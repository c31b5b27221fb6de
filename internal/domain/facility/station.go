package facility

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidFormat means the key has no station segment.
	ErrInvalidFormat = errors.New("invalid station format")
	// ErrUnknownZone means the zone part is not a facility zone.
	ErrUnknownZone = errors.New("invalid zone")
	// ErrInvalidStationNumber means the station segment is not a decimal number.
	ErrInvalidStationNumber = errors.New("invalid station number")
)

// StationKeyError reports which part of a station key was rejected.
type StationKeyError struct {
	Kind  error
	Value string
}

func (e *StationKeyError) Error() string {
	return e.Kind.Error() + ": " + e.Value
}

func (e *StationKeyError) Unwrap() error {
	return e.Kind
}

// StationKey identifies a sensor station, e.g. "7_inspect_3".
type StationKey struct {
	ZoneID    string `json:"zoneId"`
	StationNo string `json:"stationNo"`
}

// ParseStationKey splits key on underscores: the last segment is the station
// number and the preceding ones form the zone id.
func ParseStationKey(key string) (StationKey, error) {
	parts := strings.Split(strings.TrimSpace(key), "_")
	if len(parts) < 2 {
		return StationKey{}, &StationKeyError{Kind: ErrInvalidFormat, Value: key}
	}

	zoneID := strings.Join(parts[:len(parts)-1], "_")
	stationNo := strings.TrimSpace(parts[len(parts)-1])

	if !IsKnownZone(zoneID) {
		return StationKey{}, &StationKeyError{Kind: ErrUnknownZone, Value: zoneID}
	}
	if !isDigits(stationNo) {
		return StationKey{}, &StationKeyError{Kind: ErrInvalidStationNumber, Value: stationNo}
	}
	return StationKey{ZoneID: zoneID, StationNo: stationNo}, nil
}

func (k StationKey) String() string {
	return k.ZoneID + "_" + k.StationNo
}

// Title renders the chart heading, e.g. "7 INSPECT - Station 3".
func (k StationKey) Title() string {
	zone := strings.ToUpper(strings.Replace(k.ZoneID, "_", " ", 1))
	return fmt.Sprintf("%s - Station %s", zone, k.StationNo)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
