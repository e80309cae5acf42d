package models

import "math"

// Trip owns an ordered list of destinations plus an optional route result.
// Destination order is itinerary order: the first element is the start of the
// route and the last is the end. Route, when set, was computed from the
// current destination list; any mutation of the list invalidates it.
type Trip struct {
	ID           string        `json:"id"`
	Destination  string        `json:"destination,omitempty"` // overall place name, free text
	Destinations []Destination `json:"destinations"`
	StartDate    string        `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate      string        `json:"end_date,omitempty"`
	Budget       float64       `json:"budget,omitempty"` // trip-level fallback, 0 = unset
	Travelers    int           `json:"travelers"`
	Route        *RouteResult  `json:"route_data,omitempty"`
}

// BudgetRange is the derived min/max spend estimate for a trip.
type BudgetRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// BudgetRange sums [floor(b*0.8), ceil(b*1.2)] over destinations with a
// positive budget. When no destination carries one, the trip-level budget is
// used as a fallback; nil means no budget is set anywhere. Pure function of
// the current state.
func (t *Trip) BudgetRange() *BudgetRange {
	var min, max float64
	found := false
	for i := range t.Destinations {
		b := t.Destinations[i].Budget
		if b == nil || *b <= 0 {
			continue
		}
		min += math.Floor(*b * 0.8)
		max += math.Ceil(*b * 1.2)
		found = true
	}
	if found {
		return &BudgetRange{Min: min, Max: max}
	}
	if t.Budget > 0 {
		return &BudgetRange{Min: math.Floor(t.Budget * 0.8), Max: math.Ceil(t.Budget * 1.2)}
	}
	return nil
}

// LocatablePoints returns the waypoints for route calculation, in itinerary
// order, skipping destinations without coordinates.
func (t *Trip) LocatablePoints() []RoutePoint {
	pts := make([]RoutePoint, 0, len(t.Destinations))
	for i := range t.Destinations {
		d := &t.Destinations[i]
		if !d.Locatable() {
			continue
		}
		pts = append(pts, RoutePoint{Lat: *d.Latitude, Lng: *d.Longitude, Name: d.Name})
	}
	return pts
}

// IndexOf returns the position of a destination by id, or -1.
func (t *Trip) IndexOf(destinationID string) int {
	for i := range t.Destinations {
		if t.Destinations[i].ID == destinationID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so snapshots handed to callers cannot alias the
// aggregate's internal state.
func (t *Trip) Clone() Trip {
	out := *t
	out.Destinations = make([]Destination, len(t.Destinations))
	copy(out.Destinations, t.Destinations)
	if t.Route != nil {
		r := t.Route.Clone()
		out.Route = &r
	}
	return out
}
