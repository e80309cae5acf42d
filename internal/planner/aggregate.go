package planner

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Soozu/client-wertigo-sub000/internal/metrics"
	"github.com/Soozu/client-wertigo-sub000/internal/models"
	"github.com/Soozu/client-wertigo-sub000/internal/spatial"
)

// RouteState tracks route freshness for a trip. The route status is always
// live; there is no terminal state.
type RouteState int

const (
	// NoRoute: fewer than 2 locatable destinations, route is nil.
	NoRoute RouteState = iota
	// Stale: the destination list changed since the last successful fetch.
	Stale
	// Fetching: a route request is in flight.
	Fetching
	// Fresh: the route matches the current destination list.
	Fresh
	// Failed: the last attempt errored. Distinct from Stale so the
	// presentation layer can offer a manual retry instead of silently
	// reattempting forever.
	Failed
)

func (s RouteState) String() string {
	switch s {
	case NoRoute:
		return "no_route"
	case Stale:
		return "stale"
	case Fetching:
		return "fetching"
	case Fresh:
		return "fresh"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// RouteCalculator is the route gateway contract the aggregate depends on.
type RouteCalculator interface {
	CalculateRoute(ctx context.Context, points []models.RoutePoint) (*models.RouteResult, error)
}

// Snapshot is the aggregate's read model.
type Snapshot struct {
	Trip       models.Trip         `json:"trip"`
	RouteState string              `json:"route_state"`
	Budget     *models.BudgetRange `json:"budget,omitempty"`
	Bounds     *spatial.Bounds     `json:"bounds,omitempty"`
}

// Aggregate owns one trip's destination list, route result and derived
// figures, and keeps them consistent under mutation. Route recomputation is
// debounced: a burst of list changes settles before a single request is
// issued for the final list. Every request carries a sequence number; a
// response is discarded when a newer request has been issued since
// (last-issued-wins), so an older route can never overwrite a newer list's.
type Aggregate struct {
	mu     sync.Mutex
	trip   models.Trip
	state  RouteState
	routes RouteCalculator
	window time.Duration
	timer  *time.Timer
	seq    uint64
	ctx    context.Context
	cancel context.CancelFunc
	closed bool
}

// New creates an aggregate around an existing trip. A trip loaded with a
// route and at least two locatable destinations starts Fresh; one without a
// route but enough points starts Stale and schedules a recompute.
func New(trip models.Trip, routes RouteCalculator, window time.Duration) *Aggregate {
	if trip.Travelers < 1 {
		trip.Travelers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	a := &Aggregate{
		trip:   trip.Clone(),
		routes: routes,
		window: window,
		ctx:    ctx,
		cancel: cancel,
	}

	if len(a.trip.LocatablePoints()) < 2 {
		a.trip.Route = nil
		a.state = NoRoute
	} else if a.trip.Route != nil {
		a.state = Fresh
	} else {
		a.state = Stale
		a.armTimerLocked()
	}
	return a
}

// AddDestination validates and appends a destination. Itinerary order is
// append order. A destination without an id gets a client-assigned one.
func (a *Aggregate) AddDestination(d models.Destination) error {
	if err := d.Validate(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	a.trip.Destinations = append(a.trip.Destinations, d)
	a.listChangedLocked()
	return nil
}

// RemoveDestination removes a destination by id.
func (a *Aggregate) RemoveDestination(destinationID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	idx := a.trip.IndexOf(destinationID)
	if idx < 0 {
		return &models.NotFoundError{Resource: "destination", ID: destinationID}
	}
	a.trip.Destinations = append(a.trip.Destinations[:idx], a.trip.Destinations[idx+1:]...)
	a.listChangedLocked()
	return nil
}

// MoveDestination reorders the itinerary, moving the destination at from to
// position to. Both indexes refer to the current list.
func (a *Aggregate) MoveDestination(from, to int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := len(a.trip.Destinations)
	if from < 0 || from >= n {
		return &models.ValidationError{Field: "from_index", Reason: "out of range"}
	}
	if to < 0 || to >= n {
		return &models.ValidationError{Field: "to_index", Reason: "out of range"}
	}
	if from == to {
		return nil
	}
	d := a.trip.Destinations[from]
	rest := append(a.trip.Destinations[:from], a.trip.Destinations[from+1:]...)
	a.trip.Destinations = append(rest[:to], append([]models.Destination{d}, rest[to:]...)...)
	a.listChangedLocked()
	return nil
}

// ClearAllDestinations empties the itinerary as repeated single removals,
// each applying the usual invalidation rule. The net effect is an empty list
// with no route.
func (a *Aggregate) ClearAllDestinations() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for len(a.trip.Destinations) > 0 {
		a.trip.Destinations = a.trip.Destinations[:len(a.trip.Destinations)-1]
		a.listChangedLocked()
	}
}

// RecalculateRoute forces a route fetch, bypassing the debounce window. Used
// for manual retry out of Failed and for explicit refresh. Fails fast when
// fewer than two locatable destinations remain.
func (a *Aggregate) RecalculateRoute() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil
	}
	points := a.trip.LocatablePoints()
	if len(points) < 2 {
		a.trip.Route = nil
		a.state = NoRoute
		return &models.InsufficientPointsError{Got: len(points)}
	}
	a.stopTimerLocked()
	a.startFetchLocked("manual")
	return nil
}

// BudgetRange returns the derived budget range of the current trip.
func (a *Aggregate) BudgetRange() *models.BudgetRange {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.trip.BudgetRange()
}

// Replace swaps the aggregate's trip for the store's authoritative echo and
// recomputes the route state from scratch.
func (a *Aggregate) Replace(trip models.Trip) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if trip.Travelers < 1 {
		trip.Travelers = 1
	}
	a.trip = trip.Clone()
	a.seq++ // any in-flight response is now for a superseded list
	a.stopTimerLocked()
	if len(a.trip.LocatablePoints()) < 2 {
		a.trip.Route = nil
		a.state = NoRoute
	} else if a.trip.Route != nil {
		a.state = Fresh
	} else {
		a.state = Stale
		a.armTimerLocked()
	}
}

// Snapshot returns a consistent copy of the read model.
func (a *Aggregate) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	snap := Snapshot{
		Trip:       a.trip.Clone(),
		RouteState: a.state.String(),
		Budget:     a.trip.BudgetRange(),
	}
	var lats, lngs []float64
	for _, p := range a.trip.LocatablePoints() {
		lats = append(lats, p.Lat)
		lngs = append(lngs, p.Lng)
	}
	snap.Bounds = spatial.BoundingBox(lats, lngs)
	return snap
}

// State returns the current route freshness state.
func (a *Aggregate) State() RouteState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Close cancels any in-flight route request and stops the debounce timer.
// The aggregate must not be used afterwards.
func (a *Aggregate) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	a.stopTimerLocked()
	a.cancel()
}

// listChangedLocked applies the route freshness rules after any mutation of
// the destination list. Bumping the sequence here supersedes any in-flight
// request, whose response will be discarded on arrival.
func (a *Aggregate) listChangedLocked() {
	a.seq++
	if len(a.trip.LocatablePoints()) < 2 {
		a.trip.Route = nil
		a.state = NoRoute
		a.stopTimerLocked()
		return
	}
	a.state = Stale
	a.armTimerLocked()
}

func (a *Aggregate) armTimerLocked() {
	if a.closed {
		return
	}
	if a.timer == nil {
		a.timer = time.AfterFunc(a.window, a.debounceFire)
		return
	}
	a.timer.Reset(a.window)
}

func (a *Aggregate) stopTimerLocked() {
	if a.timer != nil {
		a.timer.Stop()
	}
}

func (a *Aggregate) debounceFire() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed || a.state != Stale {
		return
	}
	a.startFetchLocked("debounce")
}

// startFetchLocked issues an asynchronous route calculation for the current
// locatable waypoints. The captured sequence number decides on arrival
// whether the response still owns the state.
func (a *Aggregate) startFetchLocked(trigger string) {
	a.seq++
	captured := a.seq
	a.state = Fetching
	points := a.trip.LocatablePoints()
	metrics.RouteRecomputes.WithLabelValues(trigger).Inc()

	go func() {
		result, err := a.routes.CalculateRoute(a.ctx, points)

		a.mu.Lock()
		defer a.mu.Unlock()
		if a.closed || captured != a.seq {
			// Superseded by a newer request or list change; drop it.
			return
		}
		if err != nil {
			log.Printf("route calculation failed for trip %s: %v", a.trip.ID, err)
			a.state = Failed
			return
		}
		a.trip.Route = result
		a.state = Fresh
	}()
}
