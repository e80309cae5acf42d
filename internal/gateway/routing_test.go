package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Soozu/client-wertigo-sub000/internal/models"
	"github.com/Soozu/client-wertigo-sub000/internal/spatial"
)

var testPoints = []models.RoutePoint{
	{Lat: 14.5995, Lng: 120.9842, Name: "Manila"},
	{Lat: 14.6760, Lng: 121.0437, Name: "Quezon City"},
}

func TestCalculateRouteInsufficientPoints(t *testing.T) {
	g := NewRoutingGateway("http://unused", "")
	_, err := g.CalculateRoute(context.Background(), testPoints[:1])
	var ipe *models.InsufficientPointsError
	if !errors.As(err, &ipe) {
		t.Fatalf("expected InsufficientPointsError, got %v", err)
	}
	if ipe.Got != 1 {
		t.Fatalf("expected Got=1, got %d", ipe.Got)
	}
}

func TestCalculateRouteFromProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/route" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req struct {
			Points []models.RoutePoint `json:"points"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Points) != 2 {
			t.Errorf("bad request body: %v, %d points", err, len(req.Points))
		}
		w.Write([]byte(`{
			"points": [[120.9842, 14.5995], [121.0, 14.62], [121.0437, 14.676]],
			"distance_km": 12.4,
			"time_min": 25.0,
			"source": "graphhopper",
			"steps": [
				{"instruction": "Head north", "street_name": "Taft Ave", "distance": 350},
				{"instruction": "Arrive at destination", "distance": 0}
			]
		}`))
	}))
	defer srv.Close()

	g := NewRoutingGateway(srv.URL, "")
	result, err := g.CalculateRoute(context.Background(), testPoints)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Source != models.RouteSourceGraphHopper {
		t.Fatalf("expected graphhopper source, got %s", result.Source)
	}
	if len(result.Points) != 3 {
		t.Fatalf("expected 3 polyline points, got %d", len(result.Points))
	}
	// Wire order is [lng, lat]; transposition happens in LatLngPoints.
	latlng := result.LatLngPoints()
	if latlng[0][0] != 14.5995 || latlng[0][1] != 120.9842 {
		t.Fatalf("transposition wrong: %+v", latlng[0])
	}
	if len(result.Steps) != 2 || result.Steps[0].StreetName != "Taft Ave" {
		t.Fatalf("steps not decoded: %+v", result.Steps)
	}
}

func TestCalculateRouteStripsStepsFromNonRoadSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"points": [[120.9842, 14.5995], [121.0437, 14.676]],
			"distance_km": 10, "time_min": 15, "source": "direct",
			"steps": [{"instruction": "should not survive", "distance": 1}]
		}`))
	}))
	defer srv.Close()

	g := NewRoutingGateway(srv.URL, "")
	result, err := g.CalculateRoute(context.Background(), testPoints)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Steps) != 0 {
		t.Fatalf("direct routes must not carry steps, got %+v", result.Steps)
	}
}

func TestCalculateRouteFallsBackToSecondProvider(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer bad.Close()
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"points": [[120.9842, 14.5995], [121.0437, 14.676]], "distance_km": 11, "time_min": 20, "source": "openrouteservice"}`))
	}))
	defer good.Close()

	g := NewRoutingGateway(bad.URL, good.URL)
	result, err := g.CalculateRoute(context.Background(), testPoints)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Source != models.RouteSourceOpenRouteService {
		t.Fatalf("expected fallback to openrouteservice, got %s", result.Source)
	}
}

func TestCalculateRouteDirectFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g := NewRoutingGateway(srv.URL, "")
	result, err := g.CalculateRoute(context.Background(), testPoints)
	if err != nil {
		t.Fatalf("fallback must not error: %v", err)
	}
	if result.Source != models.RouteSourceDirect {
		t.Fatalf("expected direct source, got %s", result.Source)
	}
	if len(result.Steps) != 0 {
		t.Fatalf("direct fallback must carry no steps")
	}
	if len(result.Points) != 2 {
		t.Fatalf("expected one point per waypoint, got %d", len(result.Points))
	}
	wantKm := spatial.HaversineDistance(testPoints[0].Lat, testPoints[0].Lng, testPoints[1].Lat, testPoints[1].Lng) / 1000
	if math.Abs(result.DistanceKm-wantKm) > 0.01 {
		t.Fatalf("distance %v, want %v", result.DistanceKm, wantKm)
	}
	if result.TimeMin <= 0 {
		t.Fatalf("expected positive time estimate, got %v", result.TimeMin)
	}
}
