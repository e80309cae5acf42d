package models

import "fmt"

// ValidationError reports malformed input to a Destination or Trip operation.
// Always recoverable; handlers surface it as a 400-level message.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InsufficientPointsError is returned when a route calculation is requested
// with fewer than two locatable points.
type InsufficientPointsError struct {
	Got int
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("route calculation needs at least 2 locatable points, got %d", e.Got)
}

// RemoteError wraps any failure from a gateway or store client: network
// errors, timeouts, non-2xx responses. The original message is preserved.
type RemoteError struct {
	Service    string
	StatusCode int
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s returned status %d: %v", e.Service, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s request failed: %v", e.Service, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// NotFoundError reports a lookup of a nonexistent resource.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}
