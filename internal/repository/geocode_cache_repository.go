package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Soozu/client-wertigo-sub000/internal/models"
)

// GeocodeCacheRepository stores geocoding results keyed by normalized query.
// The cache keeps repeated lookups off the remote geocoder; entries never
// affect result ordering, which is preserved exactly as cached.
type GeocodeCacheRepository struct {
	db *sql.DB
}

// NewGeocodeCacheRepository creates a new geocode cache repository.
func NewGeocodeCacheRepository(db *sql.DB) *GeocodeCacheRepository {
	return &GeocodeCacheRepository{db: db}
}

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Get returns the cached results for a query, with found=false on a miss.
func (r *GeocodeCacheRepository) Get(query string) ([]models.GeocodeResult, bool, error) {
	var raw string
	err := r.db.QueryRow(
		"SELECT results_json FROM geocode_cache WHERE query = ?",
		normalizeQuery(query),
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query geocode cache: %w", err)
	}

	var results []models.GeocodeResult
	if err := json.Unmarshal([]byte(raw), &results); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached results: %w", err)
	}
	return results, true, nil
}

// Put stores the results for a query, replacing any previous entry.
func (r *GeocodeCacheRepository) Put(query string, results []models.GeocodeResult) error {
	raw, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	_, err = r.db.Exec(
		`INSERT INTO geocode_cache (query, results_json, cached_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(query) DO UPDATE SET results_json = excluded.results_json, cached_at = CURRENT_TIMESTAMP`,
		normalizeQuery(query), string(raw),
	)
	if err != nil {
		return fmt.Errorf("failed to store geocode cache entry: %w", err)
	}
	return nil
}
