package health

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Target is one backing service to poll.
type Target struct {
	Name string
	URL  string // base URL; /health is appended
}

// ServiceStatus is the last observed liveness of one backing service.
type ServiceStatus struct {
	Name      string    `json:"name"`
	Healthy   bool      `json:"healthy"`
	CheckedAt time.Time `json:"checked_at"`
	Error     string    `json:"error,omitempty"`
}

// Poller checks each backing service's health endpoint on a repeating timer.
// It is the only recurring background operation and runs independently of any
// trip aggregate.
type Poller struct {
	targets  []Target
	interval time.Duration
	http     *http.Client

	mu       sync.RWMutex
	statuses map[string]ServiceStatus

	stop     chan struct{}
	stopOnce sync.Once
}

// NewPoller creates a poller over the given targets.
func NewPoller(targets []Target, interval time.Duration) *Poller {
	return &Poller{
		targets:  targets,
		interval: interval,
		http:     &http.Client{Timeout: 5 * time.Second},
		statuses: make(map[string]ServiceStatus),
		stop:     make(chan struct{}),
	}
}

// Start begins polling in the background, with an immediate first pass.
func (p *Poller) Start() {
	go func() {
		p.pollOnce()
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-p.stop:
				return
			case <-ticker.C:
				p.pollOnce()
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
}

// Snapshot returns the last observed status of every target.
func (p *Poller) Snapshot() []ServiceStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]ServiceStatus, 0, len(p.targets))
	for _, t := range p.targets {
		if s, ok := p.statuses[t.Name]; ok {
			out = append(out, s)
		} else {
			out = append(out, ServiceStatus{Name: t.Name})
		}
	}
	return out
}

func (p *Poller) pollOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), p.interval)
	defer cancel()

	for _, t := range p.targets {
		status := ServiceStatus{Name: t.Name, CheckedAt: time.Now()}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.URL+"/health", nil)
		if err != nil {
			status.Error = err.Error()
			p.record(status)
			continue
		}
		resp, err := p.http.Do(req)
		if err != nil {
			status.Error = err.Error()
			p.record(status)
			continue
		}
		resp.Body.Close()
		status.Healthy = resp.StatusCode == http.StatusOK
		if !status.Healthy {
			status.Error = resp.Status
		}
		p.record(status)
	}
}

func (p *Poller) record(s ServiceStatus) {
	p.mu.Lock()
	p.statuses[s.Name] = s
	p.mu.Unlock()
}
