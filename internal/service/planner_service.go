package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Soozu/client-wertigo-sub000/internal/client"
	"github.com/Soozu/client-wertigo-sub000/internal/models"
	"github.com/Soozu/client-wertigo-sub000/internal/planner"
)

// Geocoder resolves free-text place names to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) ([]models.GeocodeResult, error)
}

// TripStore is the remote trip persistence contract.
type TripStore interface {
	Save(ctx context.Context, creds client.Credentials, trip *models.Trip) (*models.Trip, error)
	Load(ctx context.Context, creds client.Credentials, id string) (*models.Trip, error)
}

// TrackerStore is the remote tracker persistence contract.
type TrackerStore interface {
	Create(ctx context.Context, creds client.Credentials, req client.CreateTrackerRequest) (*models.Tracker, error)
	GetTrip(ctx context.Context, creds client.Credentials, trackerID, email string) (*models.Trip, error)
}

// CreateTripRequest seeds a new trip session.
type CreateTripRequest struct {
	Destination  string               `json:"destination"`
	StartDate    string               `json:"start_date"`
	EndDate      string               `json:"end_date"`
	Budget       float64              `json:"budget"`
	Travelers    int                  `json:"travelers"`
	Destinations []models.Destination `json:"destinations"`
}

// PlannerService owns the live trip aggregates, one per planning session,
// and orchestrates gateways and store clients around them. Each aggregate is
// owned exclusively by its session; the remote store is the only shared
// state.
type PlannerService struct {
	mu       sync.RWMutex
	sessions map[string]*planner.Aggregate

	geocoder Geocoder
	routes   planner.RouteCalculator
	trips    TripStore
	trackers TrackerStore
	window   time.Duration
}

// NewPlannerService creates the planner service.
func NewPlannerService(geocoder Geocoder, routes planner.RouteCalculator, trips TripStore, trackers TrackerStore, window time.Duration) *PlannerService {
	return &PlannerService{
		sessions: make(map[string]*planner.Aggregate),
		geocoder: geocoder,
		routes:   routes,
		trips:    trips,
		trackers: trackers,
		window:   window,
	}
}

// CreateTrip starts a new planning session, optionally seeded with
// destinations. Seeded destinations are validated and get client-assigned
// ids; the session id doubles as the trip id until the store assigns one.
func (s *PlannerService) CreateTrip(req CreateTripRequest) (planner.Snapshot, error) {
	trip := models.Trip{
		ID:          uuid.NewString(),
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      req.Budget,
		Travelers:   req.Travelers,
	}
	for _, d := range req.Destinations {
		if err := d.Validate(); err != nil {
			return planner.Snapshot{}, err
		}
		if d.ID == "" {
			d.ID = uuid.NewString()
		}
		trip.Destinations = append(trip.Destinations, d)
	}

	agg := planner.New(trip, s.routes, s.window)
	s.mu.Lock()
	s.sessions[trip.ID] = agg
	s.mu.Unlock()

	return agg.Snapshot(), nil
}

// Get returns the live aggregate for a session.
func (s *PlannerService) Get(tripID string) (*planner.Aggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	agg, ok := s.sessions[tripID]
	if !ok {
		return nil, &models.NotFoundError{Resource: "trip", ID: tripID}
	}
	return agg, nil
}

// Snapshot returns the read model for a session.
func (s *PlannerService) Snapshot(tripID string) (planner.Snapshot, error) {
	agg, err := s.Get(tripID)
	if err != nil {
		return planner.Snapshot{}, err
	}
	return agg.Snapshot(), nil
}

// AddDestination appends a destination to a trip. A destination without
// coordinates gets a best-effort geocode first; if the lookup comes back
// empty the destination is added non-locatable, which is a normal outcome.
func (s *PlannerService) AddDestination(ctx context.Context, tripID string, d models.Destination) (planner.Snapshot, error) {
	agg, err := s.Get(tripID)
	if err != nil {
		return planner.Snapshot{}, err
	}
	if err := d.Validate(); err != nil {
		return planner.Snapshot{}, err
	}

	if !d.Locatable() {
		query := d.Name
		if d.City != "" {
			query = d.Name + ", " + d.City
		}
		results, gerr := s.geocoder.Geocode(ctx, query)
		if gerr == nil && len(results) > 0 {
			lat, lng := results[0].Lat, results[0].Lng
			d.Latitude = &lat
			d.Longitude = &lng
		}
	}

	if err := agg.AddDestination(d); err != nil {
		return planner.Snapshot{}, err
	}
	return agg.Snapshot(), nil
}

// RemoveDestination removes a destination by id.
func (s *PlannerService) RemoveDestination(tripID, destinationID string) (planner.Snapshot, error) {
	agg, err := s.Get(tripID)
	if err != nil {
		return planner.Snapshot{}, err
	}
	if err := agg.RemoveDestination(destinationID); err != nil {
		return planner.Snapshot{}, err
	}
	return agg.Snapshot(), nil
}

// MoveDestination reorders the itinerary by moving the given destination to
// a new position.
func (s *PlannerService) MoveDestination(tripID, destinationID string, toIndex int) (planner.Snapshot, error) {
	agg, err := s.Get(tripID)
	if err != nil {
		return planner.Snapshot{}, err
	}
	trip := agg.Snapshot().Trip
	from := trip.IndexOf(destinationID)
	if from < 0 {
		return planner.Snapshot{}, &models.NotFoundError{Resource: "destination", ID: destinationID}
	}
	if err := agg.MoveDestination(from, toIndex); err != nil {
		return planner.Snapshot{}, err
	}
	return agg.Snapshot(), nil
}

// ClearDestinations empties the itinerary.
func (s *PlannerService) ClearDestinations(tripID string) (planner.Snapshot, error) {
	agg, err := s.Get(tripID)
	if err != nil {
		return planner.Snapshot{}, err
	}
	agg.ClearAllDestinations()
	return agg.Snapshot(), nil
}

// RecalculateRoute forces a route fetch for a session (manual retry).
func (s *PlannerService) RecalculateRoute(tripID string) (planner.Snapshot, error) {
	agg, err := s.Get(tripID)
	if err != nil {
		return planner.Snapshot{}, err
	}
	if err := agg.RecalculateRoute(); err != nil {
		return planner.Snapshot{}, err
	}
	return agg.Snapshot(), nil
}

// DeleteSession discards a live session without touching the remote store.
func (s *PlannerService) DeleteSession(tripID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	agg, ok := s.sessions[tripID]
	if !ok {
		return &models.NotFoundError{Resource: "trip", ID: tripID}
	}
	agg.Close()
	delete(s.sessions, tripID)
	return nil
}

// SaveTrip persists a session's trip to the remote store. The store's echo
// replaces the local view wholesale; when the store assigns a new id the
// session is re-keyed under it.
func (s *PlannerService) SaveTrip(ctx context.Context, creds client.Credentials, tripID string) (planner.Snapshot, error) {
	agg, err := s.Get(tripID)
	if err != nil {
		return planner.Snapshot{}, err
	}

	local := agg.Snapshot().Trip
	// Locally created sessions carry a uuid; the store mints the durable id
	// on first save. Ids loaded from the store are sent back as-is (upsert).
	if _, err := uuid.Parse(local.ID); err == nil {
		local.ID = ""
	}

	echo, err := s.trips.Save(ctx, creds, &local)
	if err != nil {
		return planner.Snapshot{}, err
	}

	agg.Replace(*echo)
	if echo.ID != tripID {
		s.mu.Lock()
		s.sessions[echo.ID] = agg
		delete(s.sessions, tripID)
		s.mu.Unlock()
	}
	return agg.Snapshot(), nil
}

// LoadTrip fetches a persisted trip and opens a session around it, keyed by
// the stored id.
func (s *PlannerService) LoadTrip(ctx context.Context, creds client.Credentials, storedID string) (planner.Snapshot, error) {
	trip, err := s.trips.Load(ctx, creds, storedID)
	if err != nil {
		return planner.Snapshot{}, err
	}
	return s.openSession(*trip), nil
}

// CreateTracker saves a tracker handle for a persisted trip.
func (s *PlannerService) CreateTracker(ctx context.Context, creds client.Credentials, req client.CreateTrackerRequest) (*models.Tracker, error) {
	return s.trackers.Create(ctx, creds, req)
}

// LoadTrackedTrip retrieves the trip behind a tracker and opens a session
// around it.
func (s *PlannerService) LoadTrackedTrip(ctx context.Context, creds client.Credentials, trackerID, email string) (planner.Snapshot, error) {
	if strings.TrimSpace(email) == "" {
		return planner.Snapshot{}, &models.ValidationError{Field: "email", Reason: "must not be empty"}
	}
	trip, err := s.trackers.GetTrip(ctx, creds, trackerID, email)
	if err != nil {
		return planner.Snapshot{}, err
	}
	return s.openSession(*trip), nil
}

func (s *PlannerService) openSession(trip models.Trip) planner.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[trip.ID]; ok {
		existing.Replace(trip)
		return existing.Snapshot()
	}
	agg := planner.New(trip, s.routes, s.window)
	s.sessions[trip.ID] = agg
	return agg.Snapshot()
}
