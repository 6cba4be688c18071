package app

import (
	"log/slog"

	"github.com/Happy-Hiker-Co/HappyHiker/internal/appconf"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/audio"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/metrics"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/routing"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/session"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/settings"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/trails"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/transit"
	"github.com/Happy-Hiker-Co/HappyHiker/traildb"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware. Everything is built once in main and passed in here;
// handlers never look services up on their own.
type Application struct {
	Config       appconf.Config
	Logger       *slog.Logger
	TrailDB      *traildb.Client
	TrailManager *trails.Manager
	Routing      *routing.Service
	// Transit is nil when no GTFS source is configured.
	Transit  *transit.Index
	Audio    *audio.Service
	Settings *settings.Settings
	Sessions *session.Service
	Metrics  *metrics.Collector
}
