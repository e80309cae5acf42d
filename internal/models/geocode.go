package models

// GeocodeResult is one candidate returned by the geocoding service. Results
// keep the remote service's own relevance order; they are never re-sorted
// locally.
type GeocodeResult struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	DisplayName string  `json:"display_name"`
}
