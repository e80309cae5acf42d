package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Soozu/client-wertigo-sub000/internal/config"
	"github.com/Soozu/client-wertigo-sub000/internal/handler"
	"github.com/Soozu/client-wertigo-sub000/internal/health"
	"github.com/Soozu/client-wertigo-sub000/internal/metrics"
	"github.com/Soozu/client-wertigo-sub000/internal/middleware"
	"github.com/Soozu/client-wertigo-sub000/internal/service"
)

// Deps bundles everything the router wires together.
type Deps struct {
	Planner  *service.PlannerService
	Geocoder service.Geocoder
	Health   *health.Poller
}

// SetupRouter builds the gin engine with middleware and all route groups.
func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Own liveness plus the last observed state of every backing service.
	r.GET("/health", func(c *gin.Context) {
		services := deps.Health.Snapshot()
		allUp := true
		for _, s := range services {
			if !s.Healthy {
				allUp = false
				break
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"backends": services,
			"all_up":   allUp,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	tripHandler := handler.NewTripHandler(deps.Planner)
	geocodeHandler := handler.NewGeocodeHandler(deps.Geocoder)
	trackerHandler := handler.NewTrackerHandler(deps.Planner)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(120, time.Minute))
	api.Use(middleware.Auth(cfg.JWTSecret))
	{
		trips := api.Group("/trips")
		{
			trips.POST("", tripHandler.CreateTrip)
			trips.GET("/:id", tripHandler.GetTrip)
			trips.DELETE("/:id", tripHandler.DeleteTrip)
			trips.GET("/:id/budget", tripHandler.GetBudget)
			trips.POST("/:id/route", tripHandler.RecalculateRoute)
			trips.POST("/:id/save", tripHandler.SaveTrip)

			trips.POST("/:id/destinations", tripHandler.AddDestination)
			trips.DELETE("/:id/destinations", tripHandler.ClearDestinations)
			trips.DELETE("/:id/destinations/:destId", tripHandler.RemoveDestination)
			trips.POST("/:id/destinations/:destId/move", tripHandler.MoveDestination)
		}

		api.GET("/saved/:id", tripHandler.LoadTrip)
		api.GET("/geocode", geocodeHandler.Geocode)

		trackers := api.Group("/trackers")
		{
			trackers.POST("", trackerHandler.CreateTracker)
			trackers.GET("/:id", trackerHandler.GetTrackedTrip)
		}
	}

	return r
}
