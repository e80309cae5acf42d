package spatial

import (
	"math"
	"testing"
)

func TestHaversineDistanceManilaCebu(t *testing.T) {
	// Manila to Cebu City, roughly 570 km.
	d := HaversineDistance(14.5995, 120.9842, 10.3157, 123.8854)
	if d < 550000 || d > 590000 {
		t.Fatalf("Manila-Cebu distance out of range: %v m", d)
	}
}

func TestHaversineDistanceZero(t *testing.T) {
	if d := HaversineDistance(14.6, 121.0, 14.6, 121.0); d != 0 {
		t.Fatalf("identical points must be 0 m apart, got %v", d)
	}
}

func TestPathDistanceKm(t *testing.T) {
	// [lng, lat] order, matching route polylines.
	points := [][]float64{{120.9842, 14.5995}, {123.8854, 10.3157}}
	got := PathDistanceKm(points)
	want := HaversineDistance(14.5995, 120.9842, 10.3157, 123.8854) / 1000
	if math.Abs(got-want) > 0.001 {
		t.Fatalf("path distance %v, want %v", got, want)
	}
}

func TestBearingDueEast(t *testing.T) {
	b := Bearing(0, 0, 0, 1)
	if math.Abs(b-90) > 0.5 {
		t.Fatalf("expected ~90 degrees, got %v", b)
	}
}

func TestBoundingBox(t *testing.T) {
	b := BoundingBox([]float64{14.6, 10.3, 16.4}, []float64{121.0, 123.9, 120.6})
	if b == nil {
		t.Fatal("expected a bounding box")
	}
	if b.MinLat != 10.3 || b.MaxLat != 16.4 || b.MinLng != 120.6 || b.MaxLng != 123.9 {
		t.Fatalf("unexpected box: %+v", b)
	}
	if BoundingBox(nil, nil) != nil {
		t.Fatal("empty input must yield nil")
	}
}
