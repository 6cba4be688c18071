package trails

import (
	"net/http"
	"strings"
	"time"

	"github.com/Happy-Hiker-Co/HappyHiker/internal/metrics"
)

const (
	DefaultParkCode        = "YOSE"
	DefaultLimit           = 50
	DefaultRefreshInterval = 24 * time.Hour
	userAgent              = "happy-hiker-app/1.0"
)

type Config struct {
	// Source is an NPS thingstodo endpoint URL or a path to a saved response.
	Source          string
	APIKey          string
	ParkCode        string
	Limit           int
	RefreshInterval time.Duration
	HTTPClient      *http.Client
	// Metrics receives the catalog size after each import. May be nil.
	Metrics *metrics.Collector
	Verbose bool
}

func (c Config) isLocalFile() bool {
	return !strings.HasPrefix(c.Source, "http://") && !strings.HasPrefix(c.Source, "https://")
}

func (c Config) withDefaults() Config {
	if c.ParkCode == "" {
		c.ParkCode = DefaultParkCode
	}
	if c.Limit <= 0 {
		c.Limit = DefaultLimit
	}
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = DefaultRefreshInterval
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	}
	return c
}
