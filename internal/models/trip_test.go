package models

import "testing"

func f(v float64) *float64 { return &v }

func TestDestinationValidate(t *testing.T) {
	cases := []struct {
		name    string
		dest    Destination
		wantErr bool
		field   string
	}{
		{"valid", Destination{Name: "Intramuros", Latitude: f(14.5891), Longitude: f(120.9753)}, false, ""},
		{"empty name", Destination{Name: ""}, true, "name"},
		{"whitespace name", Destination{Name: "   "}, true, "name"},
		{"latitude out of range", Destination{Name: "x", Latitude: f(91), Longitude: f(0)}, true, "latitude"},
		{"longitude out of range", Destination{Name: "x", Latitude: f(0), Longitude: f(-181)}, true, "longitude"},
		{"negative budget", Destination{Name: "x", Budget: f(-1)}, true, "budget"},
		{"rating too high", Destination{Name: "x", Rating: 5.5}, true, "rating"},
		{"no coordinates is fine", Destination{Name: "somewhere"}, false, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.dest.Validate()
			if tc.wantErr {
				ve, ok := err.(*ValidationError)
				if !ok {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				if ve.Field != tc.field {
					t.Fatalf("expected field %q, got %q", tc.field, ve.Field)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestDestinationLocatable(t *testing.T) {
	d := Destination{Name: "x"}
	if d.Locatable() {
		t.Fatal("destination without coordinates must not be locatable")
	}
	d.Latitude = f(10)
	if d.Locatable() {
		t.Fatal("destination with only latitude must not be locatable")
	}
	d.Longitude = f(120)
	if !d.Locatable() {
		t.Fatal("destination with both coordinates must be locatable")
	}
}

func TestBudgetRangeFromDestinations(t *testing.T) {
	trip := Trip{Destinations: []Destination{
		{Name: "a", Budget: f(1000)},
		{Name: "b", Budget: f(2000)},
	}}
	got := trip.BudgetRange()
	if got == nil {
		t.Fatal("expected a budget range")
	}
	if got.Min != 2400 || got.Max != 3600 {
		t.Fatalf("expected [2400, 3600], got [%v, %v]", got.Min, got.Max)
	}
}

func TestBudgetRangeIdempotent(t *testing.T) {
	trip := Trip{Destinations: []Destination{{Name: "a", Budget: f(150)}}}
	first := trip.BudgetRange()
	second := trip.BudgetRange()
	if *first != *second {
		t.Fatalf("budget range not idempotent: %+v vs %+v", first, second)
	}
}

func TestBudgetRangeTripFallback(t *testing.T) {
	trip := Trip{Budget: 5000, Destinations: []Destination{{Name: "a"}, {Name: "b", Budget: f(0)}}}
	got := trip.BudgetRange()
	if got == nil || got.Min != 4000 || got.Max != 6000 {
		t.Fatalf("expected trip-level fallback [4000, 6000], got %+v", got)
	}
}

func TestBudgetRangeNoneSet(t *testing.T) {
	trip := Trip{Destinations: []Destination{{Name: "a"}}}
	if got := trip.BudgetRange(); got != nil {
		t.Fatalf("expected nil when no budget is set anywhere, got %+v", got)
	}
}

func TestLocatablePointsKeepsItineraryOrder(t *testing.T) {
	trip := Trip{Destinations: []Destination{
		{Name: "a", Latitude: f(1), Longitude: f(2)},
		{Name: "no coords"},
		{Name: "b", Latitude: f(3), Longitude: f(4)},
	}}
	pts := trip.LocatablePoints()
	if len(pts) != 2 || pts[0].Name != "a" || pts[1].Name != "b" {
		t.Fatalf("unexpected waypoints: %+v", pts)
	}
}

func TestRouteResultLatLngTransposition(t *testing.T) {
	r := RouteResult{Points: [][]float64{{120.98, 14.60}, {121.05, 14.55}}}
	pts := r.LatLngPoints()
	if len(pts) != 2 {
		t.Fatalf("expected 2 points, got %d", len(pts))
	}
	if pts[0][0] != 14.60 || pts[0][1] != 120.98 {
		t.Fatalf("transposition wrong: %+v", pts[0])
	}
}

func TestRouteResultIsRoad(t *testing.T) {
	for src, want := range map[string]bool{
		RouteSourceGraphHopper:      true,
		RouteSourceOpenRouteService: true,
		RouteSourceDirect:           false,
	} {
		r := RouteResult{Source: src}
		if r.IsRoad() != want {
			t.Fatalf("IsRoad(%s) = %v, want %v", src, r.IsRoad(), want)
		}
	}
}
