package mapping

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/Happy-Hiker-Co/HappyHiker/internal/logging"
)

const (
	DefaultElevationWorkers = 8
	DefaultElevationRate    = 20 // requests per second
	terrainTileset          = "mapbox.mapbox-terrain-v2"
)

// ErrNoElevation is returned when the terrain service has no contour data for
// a point.
var ErrNoElevation = errors.New("no elevation data for point")

type ElevationConfig struct {
	BaseURL     string
	AccessToken string
	Workers     int
	// RequestsPerSecond caps outbound lookups; 0 picks the default and a
	// negative value disables limiting.
	RequestsPerSecond float64
	HTTPClient        *http.Client
	Logger            *slog.Logger
}

// ElevationClient looks up terrain elevation in meters through the Mapbox
// Tilequery API, reading the highest contour under each point.
type ElevationClient struct {
	baseURL string
	token   string
	workers int
	limiter *rate.Limiter
	client  *http.Client
	logger  *slog.Logger
}

func NewElevationClient(cfg ElevationConfig) *ElevationClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultMapboxURL
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultElevationWorkers
	}

	limit := rate.Limit(cfg.RequestsPerSecond)
	switch {
	case cfg.RequestsPerSecond == 0:
		limit = DefaultElevationRate
	case cfg.RequestsPerSecond < 0:
		limit = rate.Inf
	}

	return &ElevationClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.AccessToken,
		workers: cfg.Workers,
		limiter: rate.NewLimiter(limit, cfg.Workers),
		client:  defaultHTTPClient(cfg.HTTPClient),
		logger:  logging.Component(cfg.Logger, "elevation_client"),
	}
}

type tilequeryResponse struct {
	Features []struct {
		Properties struct {
			Ele *float64 `json:"ele"`
		} `json:"properties"`
	} `json:"features"`
}

// Elevation returns the elevation at one point.
func (c *ElevationClient) Elevation(ctx context.Context, point Coordinate) (float64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	params := url.Values{}
	params.Set("layers", "contour")
	params.Set("limit", "50")
	params.Set("access_token", c.token)

	endpoint := fmt.Sprintf("%s/v4/%s/tilequery/%s.json?%s",
		c.baseURL, terrainTileset, formatLonLat(point), params.Encode())

	req, err := newGet(ctx, endpoint)
	if err != nil {
		return 0, err
	}

	var resp tilequeryResponse
	if err := getJSON(c.client, req, "elevation", c.logger, &resp); err != nil {
		return 0, err
	}

	highest := math.Inf(-1)
	for _, f := range resp.Features {
		if f.Properties.Ele != nil && *f.Properties.Ele > highest {
			highest = *f.Properties.Ele
		}
	}
	if math.IsInf(highest, -1) {
		return 0, fmt.Errorf("%w at %s", ErrNoElevation, formatLonLat(point))
	}
	return highest, nil
}

// Elevations looks up every point concurrently and returns the results in
// input order. The first failure cancels the remaining lookups.
func (c *ElevationClient) Elevations(ctx context.Context, points []Coordinate) ([]float64, error) {
	elevations := make([]float64, len(points))
	if len(points) == 0 {
		return elevations, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for i, p := range points {
		g.Go(func() error {
			ele, err := c.Elevation(gctx, p)
			if err != nil {
				return fmt.Errorf("point %d: %w", i, err)
			}
			elevations[i] = ele
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logging.LogError(c.logger, "elevation lookup failed", err, slog.Int("points", len(points)))
		return nil, err
	}
	return elevations, nil
}
