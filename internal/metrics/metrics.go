package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the planner.
	Registry = prometheus.NewRegistry()

	// GeocodeRequests counts geocoding lookups by outcome (hit, miss, error, empty).
	GeocodeRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "geocode_requests_total", Help: "Geocoding lookups by outcome."},
		[]string{"outcome"},
	)

	// RouteRequests counts route calculations by provider and outcome.
	RouteRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "route_requests_total", Help: "Route calculations by provider and outcome."},
		[]string{"provider", "outcome"},
	)

	// RouteRecomputes counts aggregate route recomputations by trigger
	// (debounce, manual, load).
	RouteRecomputes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "route_recomputes_total", Help: "Trip route recomputations by trigger."},
		[]string{"trigger"},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on the planner registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(GeocodeRequests)
		Registry.MustRegister(RouteRequests)
		Registry.MustRegister(RouteRecomputes)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
