package client

import "net/http"

// Credentials carries the bearer token attached to every store request. It is
// passed explicitly to each call instead of living in ambient state, so the
// planner stays testable without a live session.
type Credentials struct {
	Token string
}

func (c Credentials) apply(req *http.Request) {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
}
