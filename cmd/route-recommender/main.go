package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/runfinder/route-recommender/internal/api/http"
	"github.com/runfinder/route-recommender/internal/catalog"
	"github.com/runfinder/route-recommender/internal/config"
	"github.com/runfinder/route-recommender/internal/profile"
	"github.com/runfinder/route-recommender/internal/scheduler"
	"github.com/runfinder/route-recommender/internal/store"
	"github.com/runfinder/route-recommender/internal/weather"
	"github.com/runfinder/route-recommender/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory weather store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	// Providers with resilience (backoff + circuit breaker).
	var provs []weather.Provider

	provs = append(provs, providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey))
	provs = append(provs, providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey))

	// Open-Meteo does not require an API key, but geocoding city names does.
	if cfg.GeocoderAPIKey != "" {
		provs = append(provs, providers.NewOpenMeteoProvider(httpClient, cfg.GeocoderAPIKey))
	}

	// Weather service orchestrating providers and store.
	service := weather.NewService(memStore, provs)

	// Route catalog seeded from file; an empty catalog is a valid state.
	var routes []catalog.Route
	if loaded, err := catalog.LoadFile(cfg.CatalogPath); err != nil {
		log.Printf("INFO: catalog seed %s not loaded, starting empty: %v", cfg.CatalogPath, err)
	} else {
		routes = loaded
		log.Printf("INFO: loaded %d routes from %s", len(routes), cfg.CatalogPath)
	}
	routeCatalog := catalog.NewMemoryCatalog(routes)

	// Preference profiles; unknown users are served as guests.
	profiles := profile.NewMemoryStore()

	// Scheduler that keeps weather snapshots warm for configured locations.
	sched := scheduler.New(cfg.Locations, cfg.FetchInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "route-recommender",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "route-recommender",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, routeCatalog, profiles)

	// Start server with graceful shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
