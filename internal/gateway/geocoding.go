package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Soozu/client-wertigo-sub000/internal/metrics"
	"github.com/Soozu/client-wertigo-sub000/internal/models"
	"github.com/Soozu/client-wertigo-sub000/internal/repository"
)

// GeocodingGateway resolves free-text place names to coordinates through the
// remote geocoding service. Transport failures and empty result sets are both
// normal outcomes: the gateway returns an empty list and the destination
// simply stays non-locatable.
type GeocodingGateway struct {
	baseURL string
	http    *http.Client
	cache   *repository.GeocodeCacheRepository // optional
}

// NewGeocodingGateway creates a geocoding gateway. cache may be nil.
func NewGeocodingGateway(baseURL string, cache *repository.GeocodeCacheRepository) *GeocodingGateway {
	return &GeocodingGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
	}
}

type geocodeWireResponse struct {
	Results []struct {
		Point struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"point"`
		DisplayName string `json:"display_name"`
	} `json:"results"`
}

// Geocode resolves a query to candidate coordinates, preserving the remote
// service's relevance order. A blank query fails fast with ValidationError
// before any network call; "query with no results" is not an error.
func (g *GeocodingGateway) Geocode(ctx context.Context, query string) ([]models.GeocodeResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &models.ValidationError{Field: "query", Reason: "must not be empty"}
	}

	if g.cache != nil {
		if cached, found, err := g.cache.Get(query); err != nil {
			log.Printf("geocode cache read failed for %q: %v", query, err)
		} else if found {
			metrics.GeocodeRequests.WithLabelValues("hit").Inc()
			return cached, nil
		}
	}

	reqURL := fmt.Sprintf("%s/geocode?%s", g.baseURL, url.Values{"q": {query}}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return []models.GeocodeResult{}, nil
	}

	resp, err := g.http.Do(req)
	if err != nil {
		log.Printf("geocode request failed for %q: %v", query, err)
		metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return []models.GeocodeResult{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("geocode service returned status %d for %q", resp.StatusCode, query)
		metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return []models.GeocodeResult{}, nil
	}

	var wire geocodeWireResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		log.Printf("geocode response decode failed for %q: %v", query, err)
		metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return []models.GeocodeResult{}, nil
	}

	results := make([]models.GeocodeResult, 0, len(wire.Results))
	for _, r := range wire.Results {
		results = append(results, models.GeocodeResult{
			Lat:         r.Point.Lat,
			Lng:         r.Point.Lng,
			DisplayName: r.DisplayName,
		})
	}

	if len(results) == 0 {
		metrics.GeocodeRequests.WithLabelValues("empty").Inc()
		return results, nil
	}
	metrics.GeocodeRequests.WithLabelValues("miss").Inc()

	if g.cache != nil {
		if err := g.cache.Put(query, results); err != nil {
			log.Printf("geocode cache write failed for %q: %v", query, err)
		}
	}

	return results, nil
}
