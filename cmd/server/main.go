package main

import (
	"log"

	"github.com/Soozu/client-wertigo-sub000/internal/api"
	"github.com/Soozu/client-wertigo-sub000/internal/client"
	"github.com/Soozu/client-wertigo-sub000/internal/config"
	"github.com/Soozu/client-wertigo-sub000/internal/database"
	"github.com/Soozu/client-wertigo-sub000/internal/gateway"
	"github.com/Soozu/client-wertigo-sub000/internal/health"
	"github.com/Soozu/client-wertigo-sub000/internal/metrics"
	"github.com/Soozu/client-wertigo-sub000/internal/repository"
	"github.com/Soozu/client-wertigo-sub000/internal/service"
)

func main() {
	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.CacheDBPath}); err != nil {
		log.Fatal("Failed to initialize geocode cache database:", err)
	}
	defer database.Close()

	metrics.RegisterDefault()

	geocodeCache := repository.NewGeocodeCacheRepository(database.GetDB())
	geocoder := gateway.NewGeocodingGateway(cfg.GeocodeURL, geocodeCache)
	routes := gateway.NewRoutingGateway(cfg.GraphHopperURL, cfg.ORSURL)
	tripStore := client.NewTripStoreClient(cfg.TripStoreURL)
	trackerStore := client.NewTrackerStoreClient(cfg.TrackerStoreURL)

	planner := service.NewPlannerService(geocoder, routes, tripStore, trackerStore, cfg.DebounceWindow)

	poller := health.NewPoller([]health.Target{
		{Name: "geocoding", URL: cfg.GeocodeURL},
		{Name: "routing", URL: cfg.GraphHopperURL},
		{Name: "trip-store", URL: cfg.TripStoreURL},
	}, cfg.HealthInterval)
	poller.Start()
	defer poller.Stop()

	router := api.SetupRouter(cfg, api.Deps{
		Planner:  planner,
		Geocoder: geocoder,
		Health:   poller,
	})

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
