package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Happy-Hiker-Co/HappyHiker/internal/app"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/appconf"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/audio"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/logging"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/mapping"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/metrics"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/restapi"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/routing"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/session"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/settings"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/trails"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/transit"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/webui"
	"github.com/Happy-Hiker-Co/HappyHiker/traildb"
)

const (
	defaultTrailsSource = "https://developer.nps.gov/api/v1/thingstodo"
	routeRetention      = 30 * 24 * time.Hour
)

// config holds everything main needs beyond what handlers see.
type config struct {
	appconf.Config
	dataPath      string
	trailsSource  string
	npsAPIKey     string
	mapboxToken   string
	gtfsURL       string
	directionsURL string
	elevationURL  string
}

func splitAPIKeys(flagValue string) []string {
	var keys []string
	for _, key := range strings.Split(flagValue, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// parseConfig reads flags from args. Secrets default to the environment,
// which may have been populated from a .env file.
func parseConfig(args []string, getenv func(string) string) (config, error) {
	var cfg config
	var env, apiKeys string

	fs := flag.NewFlagSet("happyhiker", flag.ContinueOnError)
	fs.IntVar(&cfg.Port, "port", 4000, "API server port")
	fs.StringVar(&env, "env", "development", "Environment (development|test|production)")
	fs.StringVar(&apiKeys, "api-keys", "test", "Comma separated API keys")
	fs.IntVar(&cfg.RateLimit, "rate-limit", 100, "Requests per second per API key (negative disables)")
	fs.StringVar(&cfg.dataPath, "data-path", "./happyhiker.db", "SQLite database path, or :memory:")
	fs.StringVar(&cfg.trailsSource, "trails-source", defaultTrailsSource, "NPS thingstodo URL or path to a saved response")
	fs.StringVar(&cfg.npsAPIKey, "nps-api-key", getenv("NPS_API_KEY"), "National Park Service API key")
	fs.StringVar(&cfg.mapboxToken, "mapbox-token", getenv("MAPBOX_TOKEN"), "Mapbox access token; routing is disabled without one")
	fs.StringVar(&cfg.gtfsURL, "gtfs-url", "", "URL or path of a static GTFS zip for transit stops")
	fs.StringVar(&cfg.directionsURL, "directions-url", mapping.DefaultMapboxURL, "Base URL of the directions service")
	fs.StringVar(&cfg.elevationURL, "elevation-url", mapping.DefaultMapboxURL, "Base URL of the terrain tilequery service")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	cfg.Env = appconf.EnvFlagToEnvironment(env)
	cfg.ApiKeys = splitAPIKeys(apiKeys)
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if len(cfg.ApiKeys) == 0 {
		return config{}, errors.New("at least one API key is required")
	}
	return cfg, nil
}

// buildApplication wires every service. The returned cleanup releases them in
// reverse order and is safe to call when err is nil.
func buildApplication(ctx context.Context, cfg config, logger *slog.Logger, reg prometheus.Registerer) (*app.Application, func(), error) {
	collector, err := metrics.NewCollector(reg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	db, err := traildb.NewClient(traildb.NewConfig(cfg.dataPath, cfg.Env, cfg.Verbose), logger)
	if err != nil {
		return nil, nil, err
	}

	if pruned, err := db.Queries.DeleteRouteResultsBefore(ctx, time.Now().Add(-routeRetention)); err != nil {
		logging.LogError(logger, "failed to prune saved routes", err)
	} else if pruned > 0 {
		logger.Info("pruned saved routes", slog.Int64("count", pruned))
	}

	manager, err := trails.InitManager(ctx, trails.Config{
		Source:  cfg.trailsSource,
		APIKey:  cfg.npsAPIKey,
		Metrics: collector,
		Verbose: cfg.Verbose,
	}, db, logger)
	if err != nil {
		// Serve whatever is already in the database.
		logging.LogError(logger, "failed to import trails", err, slog.String("source", cfg.trailsSource))
	}

	var transitIndex *transit.Index
	if cfg.gtfsURL != "" {
		transitIndex, err = transit.LoadIndex(ctx, cfg.gtfsURL, nil)
		if err != nil {
			logging.LogError(logger, "failed to load GTFS data", err, slog.String("source", cfg.gtfsURL))
		} else {
			logger.Info("transit stops loaded", slog.Int("stops", transitIndex.Len()))
		}
	}

	var routingService *routing.Service
	if cfg.mapboxToken != "" {
		geocoders := mapping.ChainGeocoder{}
		if cfg.npsAPIKey != "" {
			geocoders = append(geocoders, mapping.NewNPSGeocoder(mapping.NPSConfig{APIKey: cfg.npsAPIKey, Logger: logger}))
		}
		geocoders = append(geocoders, mapping.NewOverpassGeocoder(mapping.OverpassConfig{Logger: logger}))

		routingService = routing.NewService(routing.Config{
			Store:    db.Queries,
			Geocoder: geocoders,
			Directions: mapping.NewDirectionsClient(mapping.DirectionsConfig{
				BaseURL: cfg.directionsURL, AccessToken: cfg.mapboxToken, Logger: logger,
			}),
			Elevations: mapping.NewElevationClient(mapping.ElevationConfig{
				BaseURL: cfg.elevationURL, AccessToken: cfg.mapboxToken, Logger: logger,
			}),
			Metrics: collector,
			Logger:  logger,
		})
	} else {
		logger.Warn("no Mapbox token configured; route planning is disabled")
	}

	kv := db.KVStore()
	application := &app.Application{
		Config:       cfg.Config,
		Logger:       logger,
		TrailDB:      db,
		TrailManager: manager,
		Routing:      routingService,
		Transit:      transitIndex,
		Audio:        audio.NewService(audio.DefaultCatalog, nil, logging.Component(logger, "audio")),
		Settings:     settings.New(kv),
		Sessions:     session.NewService(kv),
		Metrics:      collector,
	}

	cleanup := func() {
		if manager != nil {
			manager.Shutdown()
		}
		logging.SafeCloseWithLogging(db, logger, "trail_db")
	}
	return application, cleanup, nil
}

func newServer(application *app.Application) (*http.Server, *restapi.RestAPI) {
	api := restapi.NewRestAPI(application)

	router := httprouter.New()
	api.SetRoutes(router)
	if (&webui.WebUI{Application: application}).SetWebUIRoutes(router) {
		application.Logger.Info("debug pages mounted at /debug/")
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", application.Config.Port),
		Handler:      api.Handler(router),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		ErrorLog:     slog.NewLogLogger(application.Logger.Handler(), slog.LevelError),
	}, api
}

func run(ctx context.Context, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read .env: %w", err)
	}

	cfg, err := parseConfig(args, os.Getenv)
	if err != nil {
		return err
	}

	logger := logging.NewStructuredLogger(os.Stdout, logging.LevelFor(cfg.Verbose)).
		With(slog.String("env", cfg.Env.String()))
	slog.SetDefault(logger)

	application, cleanup, err := buildApplication(ctx, cfg, logger, prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	defer cleanup()

	srv, api := newServer(application)
	defer api.Shutdown()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("addr", srv.Addr))
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		slog.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
