package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Soozu/client-wertigo-sub000/internal/models"
)

const trackerStoreService = "tracker store"

// CreateTrackerRequest is the payload for saving a trip behind a tracker.
type CreateTrackerRequest struct {
	TripID       string `json:"tripId"`
	Email        string `json:"email"`
	TravelerName string `json:"travelerName,omitempty"`
	Phone        string `json:"phone,omitempty"`
	StartDate    string `json:"startDate,omitempty"`
}

// TrackerStoreClient talks to the remote tracker store. Trackers are
// write-once from this side: created when a traveler saves a trip, then only
// read back (tracker id + email) to retrieve the trip.
type TrackerStoreClient struct {
	baseURL string
	http    *http.Client
}

// NewTrackerStoreClient creates a tracker store client.
func NewTrackerStoreClient(baseURL string) *TrackerStoreClient {
	return &TrackerStoreClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Create registers a tracker for a saved trip.
func (c *TrackerStoreClient) Create(ctx context.Context, creds Credentials, reqBody CreateTrackerRequest) (*models.Tracker, error) {
	if strings.TrimSpace(reqBody.TripID) == "" {
		return nil, &models.ValidationError{Field: "tripId", Reason: "must not be empty"}
	}
	if strings.TrimSpace(reqBody.Email) == "" {
		return nil, &models.ValidationError{Field: "email", Reason: "must not be empty"}
	}

	raw, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tracker request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/trackers", bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to build tracker request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	creds.apply(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &models.RemoteError{Service: trackerStoreService, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, remoteFailure(resp)
	}

	var tracker models.Tracker
	if err := json.NewDecoder(resp.Body).Decode(&tracker); err != nil {
		return nil, &models.RemoteError{Service: trackerStoreService, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return &tracker, nil
}

// GetTrip retrieves the trip behind a tracker, verified by email.
func (c *TrackerStoreClient) GetTrip(ctx context.Context, creds Credentials, trackerID, email string) (*models.Trip, error) {
	reqURL := fmt.Sprintf("%s/trackers/%s?%s", c.baseURL, url.PathEscape(trackerID), url.Values{"email": {email}}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build tracker request: %w", err)
	}
	creds.apply(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &models.RemoteError{Service: trackerStoreService, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &models.NotFoundError{Resource: "tracker", ID: trackerID}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, remoteFailure(resp)
	}

	var wire struct {
		Trip models.Trip `json:"trip"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, &models.RemoteError{Service: trackerStoreService, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return &wire.Trip, nil
}

func remoteFailure(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		msg = resp.Status
	}
	return &models.RemoteError{Service: trackerStoreService, StatusCode: resp.StatusCode, Err: fmt.Errorf("%s", msg)}
}
