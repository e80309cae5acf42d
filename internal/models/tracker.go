package models

// Tracker is an external persistence handle: it lets a traveler retrieve a
// saved trip later by tracker id plus email. Read-only once created.
type Tracker struct {
	TrackerID    string `json:"trackerId"`
	TripID       string `json:"tripId"`
	Email        string `json:"email"`
	TravelerName string `json:"travelerName,omitempty"`
	Phone        string `json:"phone,omitempty"`
	StartDate    string `json:"startDate,omitempty"`
}
