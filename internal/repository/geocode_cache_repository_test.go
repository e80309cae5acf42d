package repository

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/Soozu/client-wertigo-sub000/internal/models"
)

func newTestRepo(t *testing.T) *GeocodeCacheRepository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE geocode_cache (
		query TEXT PRIMARY KEY,
		results_json TEXT NOT NULL,
		cached_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return NewGeocodeCacheRepository(db)
}

func TestGeocodeCacheMiss(t *testing.T) {
	repo := newTestRepo(t)
	results, found, err := repo.Get("never seen")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if found || results != nil {
		t.Fatalf("expected a clean miss, got found=%v results=%v", found, results)
	}
}

func TestGeocodeCacheRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	in := []models.GeocodeResult{
		{Lat: 10.3157, Lng: 123.8854, DisplayName: "Cebu City, Philippines"},
		{Lat: 10.2926, Lng: 123.9022, DisplayName: "Cebu, Philippines"},
	}
	if err := repo.Put("Cebu", in); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	out, found, err := repo.Get("Cebu")
	if err != nil || !found {
		t.Fatalf("expected a hit, got found=%v err=%v", found, err)
	}
	if len(out) != 2 || out[0].DisplayName != in[0].DisplayName || out[1].Lat != in[1].Lat {
		t.Fatalf("cached results must come back in order: %+v", out)
	}
}

func TestGeocodeCacheNormalizesQuery(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.Put("  CEBU  ", []models.GeocodeResult{{Lat: 1, Lng: 2}}); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if _, found, _ := repo.Get("cebu"); !found {
		t.Fatal("lookup must be case- and whitespace-insensitive")
	}
}

func TestGeocodeCacheReplacesEntry(t *testing.T) {
	repo := newTestRepo(t)
	repo.Put("q", []models.GeocodeResult{{Lat: 1, Lng: 1}})
	if err := repo.Put("q", []models.GeocodeResult{{Lat: 9, Lng: 9, DisplayName: "new"}}); err != nil {
		t.Fatalf("second put failed: %v", err)
	}
	out, _, _ := repo.Get("q")
	if len(out) != 1 || out[0].DisplayName != "new" {
		t.Fatalf("second put must replace the entry: %+v", out)
	}
}
