package models

import "strings"

// Destination represents one point of interest on a trip itinerary.
// Latitude/Longitude and Budget are pointers because absence means "unknown",
// which must stay distinct from zero (a zero budget would corrupt the
// aggregate budget range, and 0/0 is a real coordinate in the Gulf of Guinea).
type Destination struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Category       string   `json:"category,omitempty"`
	City           string   `json:"city,omitempty"`
	Province       string   `json:"province,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	Budget         *float64 `json:"budget,omitempty"`
	OperatingHours string   `json:"operating_hours,omitempty"`
	Rating         float64  `json:"rating,omitempty"`
	Description    string   `json:"description,omitempty"`
}

// Locatable reports whether both coordinates are present. Only locatable
// destinations participate in route calculation and map display.
func (d *Destination) Locatable() bool {
	return d.Latitude != nil && d.Longitude != nil
}

// Validate checks the destination's fields and returns a ValidationError on
// the first violation.
func (d *Destination) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if d.Latitude != nil && (*d.Latitude < -90 || *d.Latitude > 90) {
		return &ValidationError{Field: "latitude", Reason: "must be within -90..90"}
	}
	if d.Longitude != nil && (*d.Longitude < -180 || *d.Longitude > 180) {
		return &ValidationError{Field: "longitude", Reason: "must be within -180..180"}
	}
	if d.Budget != nil && *d.Budget < 0 {
		return &ValidationError{Field: "budget", Reason: "must not be negative"}
	}
	if d.Rating < 0 || d.Rating > 5 {
		return &ValidationError{Field: "rating", Reason: "must be within 0..5"}
	}
	return nil
}
