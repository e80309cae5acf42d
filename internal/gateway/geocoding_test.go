package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Soozu/client-wertigo-sub000/internal/models"
)

func TestGeocodeBlankQueryFailsFast(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	g := NewGeocodingGateway(srv.URL, nil)
	for _, q := range []string{"", "   "} {
		_, err := g.Geocode(context.Background(), q)
		var ve *models.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("query %q: expected ValidationError, got %v", q, err)
		}
	}
	if called {
		t.Fatal("blank query must be rejected before any remote call")
	}
}

func TestGeocodeMapsResultsInOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/geocode" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "Intramuros" {
			t.Errorf("unexpected query %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results": [
			{"point": {"lat": 14.5891, "lng": 120.9753}, "display_name": "Intramuros, Manila"},
			{"point": {"lat": 14.5900, "lng": 120.9800}, "display_name": "Intramuros Golf Club"}
		]}`))
	}))
	defer srv.Close()

	g := NewGeocodingGateway(srv.URL, nil)
	results, err := g.Geocode(context.Background(), "Intramuros")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].DisplayName != "Intramuros, Manila" || results[0].Lat != 14.5891 {
		t.Fatalf("remote ordering not preserved: %+v", results)
	}
}

func TestGeocodeEmptyResultsIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	g := NewGeocodingGateway(srv.URL, nil)
	results, err := g.Geocode(context.Background(), "nowhere at all")
	if err != nil {
		t.Fatalf("empty result set must not error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty slice, got %+v", results)
	}
}

func TestGeocodeDegradesOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := NewGeocodingGateway(srv.URL, nil)
	results, err := g.Geocode(context.Background(), "Manila")
	if err != nil {
		t.Fatalf("transport failure must degrade to empty, got error %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty slice, got %+v", results)
	}
}

func TestGeocodeDegradesOnUnreachableService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	g := NewGeocodingGateway(srv.URL, nil)
	results, err := g.Geocode(context.Background(), "Manila")
	if err != nil || len(results) != 0 {
		t.Fatalf("unreachable service must degrade to empty, got %v / %+v", err, results)
	}
}
