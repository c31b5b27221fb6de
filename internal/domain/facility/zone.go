package facility

// Facility extent in meters.
const (
	FacilityWidth  = 50.0
	FacilityHeight = 33.79
)

// Geometry is a zone rectangle in facility coordinates.
type Geometry struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

var zoneOrder = []string{
	"1_trim_1",
	"2_trim_2",
	"3_chassis_1",
	"4_chassis_2",
	"5_engine",
	"6_final",
	"7_inspect",
}

var zoneGeometry = map[string]Geometry{
	"1_trim_1":    {X: 13.45, Y: 6.5, Width: 9.55, Height: 4},
	"2_trim_2":    {X: 27.35, Y: 6.5, Width: 9.55, Height: 4},
	"3_chassis_1": {X: 20.4, Y: 12.1, Width: 16.5, Height: 4},
	"4_chassis_2": {X: 13.45, Y: 17.65, Width: 9.55, Height: 4},
	"5_engine":    {X: 13.45, Y: 23.15, Width: 9.55, Height: 4},
	"6_final":     {X: 27.35, Y: 17.65, Width: 9.55, Height: 4},
	"7_inspect":   {X: 27.35, Y: 23.15, Width: 9.55, Height: 4},
}

// ZoneInfo pairs a zone identifier with its geometry.
type ZoneInfo struct {
	ID string `json:"id"`
	Geometry
}

// GeometryOf looks up the static geometry of a zone.
func GeometryOf(zone string) (Geometry, bool) {
	g, ok := zoneGeometry[zone]
	return g, ok
}

// IsKnownZone reports whether zone is one of the facility zones.
func IsKnownZone(zone string) bool {
	_, ok := zoneGeometry[zone]
	return ok
}

// Zones returns every zone in floor order.
func Zones() []ZoneInfo {
	out := make([]ZoneInfo, 0, len(zoneOrder))
	for _, id := range zoneOrder {
		out = append(out, ZoneInfo{ID: id, Geometry: zoneGeometry[id]})
	}
	return out
}

// ZoneRank gives the floor order position of zone, or -1 if unknown.
func ZoneRank(zone string) int {
	for i, id := range zoneOrder {
		if id == zone {
			return i
		}
	}
	return -1
}
