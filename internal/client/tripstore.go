package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Soozu/client-wertigo-sub000/internal/models"
)

const tripStoreService = "trip store"

// TripStoreClient persists trips against the remote trip store. Every call is
// a single HTTP round trip with no retry and no caching; the store's echoed
// trip is the authoritative post-mutation state and callers replace their
// local view with it wholesale.
type TripStoreClient struct {
	baseURL string
	http    *http.Client
}

// NewTripStoreClient creates a trip store client.
func NewTripStoreClient(baseURL string) *TripStoreClient {
	return &TripStoreClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Save upserts a trip. A trip without an id is created and the store assigns
// one; a trip with an id is replaced.
func (c *TripStoreClient) Save(ctx context.Context, creds Credentials, trip *models.Trip) (*models.Trip, error) {
	if trip.ID == "" {
		return c.doTrip(ctx, creds, http.MethodPost, "/trips", trip)
	}
	return c.doTrip(ctx, creds, http.MethodPut, "/trips/"+trip.ID, trip)
}

// Load fetches a trip by id. A missing id is a NotFoundError.
func (c *TripStoreClient) Load(ctx context.Context, creds Credentials, id string) (*models.Trip, error) {
	return c.doTrip(ctx, creds, http.MethodGet, "/trips/"+id, nil)
}

// Delete removes a trip from the store.
func (c *TripStoreClient) Delete(ctx context.Context, creds Credentials, id string) error {
	req, err := c.newRequest(ctx, creds, http.MethodDelete, "/trips/"+id, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &models.RemoteError{Service: tripStoreService, Err: err}
	}
	defer resp.Body.Close()
	return c.checkStatus(resp, "trip", id)
}

// AddDestination appends a destination to a stored trip and returns the
// store's view of the trip.
func (c *TripStoreClient) AddDestination(ctx context.Context, creds Credentials, tripID string, dest *models.Destination) (*models.Trip, error) {
	return c.doTrip(ctx, creds, http.MethodPost, "/trips/"+tripID+"/destinations", dest)
}

// RemoveDestination removes a destination from a stored trip.
func (c *TripStoreClient) RemoveDestination(ctx context.Context, creds Credentials, tripID, destinationID string) (*models.Trip, error) {
	return c.doTrip(ctx, creds, http.MethodDelete, "/trips/"+tripID+"/destinations/"+destinationID, nil)
}

// SaveRoute attaches a computed route result to a stored trip.
func (c *TripStoreClient) SaveRoute(ctx context.Context, creds Credentials, tripID string, route *models.RouteResult) (*models.Trip, error) {
	return c.doTrip(ctx, creds, http.MethodPost, "/trips/"+tripID+"/route", route)
}

func (c *TripStoreClient) newRequest(ctx context.Context, creds Credentials, method, path string, payload interface{}) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	creds.apply(req)
	return req, nil
}

func (c *TripStoreClient) doTrip(ctx context.Context, creds Credentials, method, path string, payload interface{}) (*models.Trip, error) {
	req, err := c.newRequest(ctx, creds, method, path, payload)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &models.RemoteError{Service: tripStoreService, Err: err}
	}
	defer resp.Body.Close()

	id := strings.TrimPrefix(path, "/trips/")
	if err := c.checkStatus(resp, "trip", id); err != nil {
		return nil, err
	}

	var trip models.Trip
	if err := json.NewDecoder(resp.Body).Decode(&trip); err != nil {
		return nil, &models.RemoteError{Service: tripStoreService, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return &trip, nil
}

// checkStatus maps the store's non-2xx responses onto the error taxonomy,
// preserving the remote message verbatim.
func (c *TripStoreClient) checkStatus(resp *http.Response, resource, id string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	if resp.StatusCode == http.StatusNotFound {
		return &models.NotFoundError{Resource: resource, ID: id}
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		msg = resp.Status
	}
	return &models.RemoteError{Service: tripStoreService, StatusCode: resp.StatusCode, Err: fmt.Errorf("%s", msg)}
}
