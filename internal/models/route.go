package models

// Route sources. Direct means no road network was used (straight-line
// fallback); only road sources may carry turn-by-turn steps.
const (
	RouteSourceGraphHopper      = "graphhopper"
	RouteSourceOpenRouteService = "openrouteservice"
	RouteSourceDirect           = "direct"
)

// RoutePoint is an input waypoint for route calculation.
type RoutePoint struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name,omitempty"`
}

// RouteStep is a single turn-by-turn instruction.
type RouteStep struct {
	Instruction    string  `json:"instruction"`
	StreetName     string  `json:"street_name,omitempty"`
	DistanceMeters float64 `json:"distance"`
}

// RouteResult is the outcome of one route calculation. Points are stored in
// [lng, lat] order as received on the wire (GeoJSON convention); map
// consumers must go through LatLngPoints for the documented transposition.
// A RouteResult is never mutated in place; recalculation replaces it.
type RouteResult struct {
	Points     [][]float64 `json:"points"`
	DistanceKm float64     `json:"distance_km"`
	TimeMin    float64     `json:"time_min"`
	Source     string      `json:"source"`
	Steps      []RouteStep `json:"steps,omitempty"`
}

// IsRoad reports whether the result came from a road network.
func (r *RouteResult) IsRoad() bool {
	return r.Source == RouteSourceGraphHopper || r.Source == RouteSourceOpenRouteService
}

// LatLngPoints transposes the polyline into [lat, lng] pairs for map
// rendering. This is the only place the coordinate order flips.
func (r *RouteResult) LatLngPoints() [][2]float64 {
	out := make([][2]float64, 0, len(r.Points))
	for _, p := range r.Points {
		if len(p) < 2 {
			continue
		}
		out = append(out, [2]float64{p[1], p[0]})
	}
	return out
}

// Clone returns a deep copy of the result.
func (r *RouteResult) Clone() RouteResult {
	out := *r
	out.Points = make([][]float64, len(r.Points))
	for i, p := range r.Points {
		out.Points[i] = append([]float64(nil), p...)
	}
	if r.Steps != nil {
		out.Steps = append([]RouteStep(nil), r.Steps...)
	}
	return out
}
