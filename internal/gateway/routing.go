package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Soozu/client-wertigo-sub000/internal/metrics"
	"github.com/Soozu/client-wertigo-sub000/internal/models"
	"github.com/Soozu/client-wertigo-sub000/internal/spatial"
)

// directFallbackSpeedKmh is the assumed travel speed for time estimates when
// no road network is available.
const directFallbackSpeedKmh = 40.0

type routeProvider struct {
	name string
	url  string
}

// RoutingGateway requests routes from the configured providers in order and
// falls back to a straight-line route when every provider fails. The wire
// format uses [lng, lat] point order (GeoJSON convention); this gateway is
// the only place that order is produced or consumed.
type RoutingGateway struct {
	providers []routeProvider
	http      *http.Client
}

// NewRoutingGateway creates a routing gateway. Empty provider URLs are
// skipped, so a deployment may run with GraphHopper alone.
func NewRoutingGateway(graphhopperURL, orsURL string) *RoutingGateway {
	g := &RoutingGateway{http: &http.Client{Timeout: 15 * time.Second}}
	if graphhopperURL != "" {
		g.providers = append(g.providers, routeProvider{name: models.RouteSourceGraphHopper, url: strings.TrimRight(graphhopperURL, "/")})
	}
	if orsURL != "" {
		g.providers = append(g.providers, routeProvider{name: models.RouteSourceOpenRouteService, url: strings.TrimRight(orsURL, "/")})
	}
	return g
}

type routeWireRequest struct {
	Points []models.RoutePoint `json:"points"`
	TripID string              `json:"trip_id,omitempty"`
}

type routeWireResponse struct {
	Points     [][]float64 `json:"points"`
	DistanceKm float64     `json:"distance_km"`
	TimeMin    float64     `json:"time_min"`
	Source     string      `json:"source"`
	Steps      []struct {
		Instruction string  `json:"instruction"`
		StreetName  string  `json:"street_name"`
		Distance    float64 `json:"distance"`
	} `json:"steps"`
}

// CalculateRoute requests a route through the given waypoints. Fewer than two
// points is a caller error (InsufficientPointsError); the aggregate guards
// this before calling. A single attempt is made per provider, no retry loop.
func (g *RoutingGateway) CalculateRoute(ctx context.Context, points []models.RoutePoint) (*models.RouteResult, error) {
	if len(points) < 2 {
		return nil, &models.InsufficientPointsError{Got: len(points)}
	}

	for _, p := range g.providers {
		result, err := g.callProvider(ctx, p, points)
		if err != nil {
			log.Printf("route provider %s failed: %v", p.name, err)
			metrics.RouteRequests.WithLabelValues(p.name, "error").Inc()
			continue
		}
		metrics.RouteRequests.WithLabelValues(p.name, "ok").Inc()
		return result, nil
	}

	metrics.RouteRequests.WithLabelValues(models.RouteSourceDirect, "ok").Inc()
	return directRoute(points), nil
}

func (g *RoutingGateway) callProvider(ctx context.Context, p routeProvider, points []models.RoutePoint) (*models.RouteResult, error) {
	body, err := json.Marshal(routeWireRequest{Points: points})
	if err != nil {
		return nil, fmt.Errorf("failed to encode route request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url+"/route", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build route request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, &models.RemoteError{Service: p.name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &models.RemoteError{Service: p.name, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status")}
	}

	var wire routeWireResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, &models.RemoteError{Service: p.name, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if len(wire.Points) < 2 {
		return nil, &models.RemoteError{Service: p.name, Err: fmt.Errorf("response carried %d points", len(wire.Points))}
	}

	result := &models.RouteResult{
		Points:     wire.Points,
		DistanceKm: wire.DistanceKm,
		TimeMin:    wire.TimeMin,
		Source:     wire.Source,
	}
	if result.Source == "" {
		result.Source = p.name
	}
	for _, s := range wire.Steps {
		result.Steps = append(result.Steps, models.RouteStep{
			Instruction:    s.Instruction,
			StreetName:     s.StreetName,
			DistanceMeters: s.Distance,
		})
	}
	// Steps are only meaningful for road routes.
	if !result.IsRoad() {
		result.Steps = nil
	}
	return result, nil
}

// directRoute builds a straight-line fallback: one leg per consecutive
// waypoint pair, distance from great-circle geometry, time estimated at a
// flat speed. Carries no turn-by-turn steps.
func directRoute(points []models.RoutePoint) *models.RouteResult {
	poly := make([][]float64, 0, len(points))
	for _, p := range points {
		poly = append(poly, []float64{p.Lng, p.Lat})
	}

	distanceKm := spatial.PathDistanceKm(poly)
	return &models.RouteResult{
		Points:     poly,
		DistanceKm: distanceKm,
		TimeMin:    distanceKm / directFallbackSpeedKmh * 60,
		Source:     models.RouteSourceDirect,
	}
}
