package mapping

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/Happy-Hiker-Co/HappyHiker/internal/logging"
)

// ErrNoRoute is returned when the directions service finds no path.
var ErrNoRoute = errors.New("no walking route between the points")

// Route is the first route the directions service returned.
type Route struct {
	Polyline        string
	DistanceMeters  float64
	DurationSeconds float64
}

type DirectionsConfig struct {
	BaseURL     string
	AccessToken string
	// Profile defaults to "walking".
	Profile    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// DirectionsClient calls the Mapbox Directions API asking for precision-5
// polyline geometry.
type DirectionsClient struct {
	baseURL string
	token   string
	profile string
	client  *http.Client
	logger  *slog.Logger
}

func NewDirectionsClient(cfg DirectionsConfig) *DirectionsClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultMapboxURL
	}
	if cfg.Profile == "" {
		cfg.Profile = "walking"
	}
	return &DirectionsClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.AccessToken,
		profile: cfg.Profile,
		client:  defaultHTTPClient(cfg.HTTPClient),
		logger:  logging.Component(cfg.Logger, "directions_client"),
	}
}

type directionsResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Geometry string  `json:"geometry"`
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

func formatLonLat(c Coordinate) string {
	return fmt.Sprintf("%.6f,%.6f", c.Lon, c.Lat)
}

// Route asks for a walking route from one point to another.
func (c *DirectionsClient) Route(ctx context.Context, from, to Coordinate) (Route, error) {
	params := url.Values{}
	params.Set("geometries", "polyline")
	params.Set("overview", "full")
	params.Set("access_token", c.token)

	endpoint := fmt.Sprintf("%s/directions/v5/mapbox/%s/%s;%s?%s",
		c.baseURL, c.profile, formatLonLat(from), formatLonLat(to), params.Encode())

	req, err := newGet(ctx, endpoint)
	if err != nil {
		return Route{}, err
	}

	var resp directionsResponse
	if err := getJSON(c.client, req, "directions", c.logger, &resp); err != nil {
		var upstream *UpstreamError
		if errors.As(err, &upstream) && upstream.StatusCode == http.StatusUnprocessableEntity {
			return Route{}, fmt.Errorf("%w: %s", ErrNoRoute, upstream.Body)
		}
		return Route{}, err
	}

	if resp.Code != "" && resp.Code != "Ok" {
		if resp.Code == "NoRoute" || resp.Code == "NoSegment" {
			return Route{}, ErrNoRoute
		}
		return Route{}, fmt.Errorf("directions error %s: %s", resp.Code, resp.Message)
	}
	if len(resp.Routes) == 0 {
		return Route{}, ErrNoRoute
	}

	first := resp.Routes[0]
	c.logger.Debug("directions received",
		slog.Float64("distance_m", first.Distance),
		slog.Int("geometry_bytes", len(first.Geometry)))

	return Route{
		Polyline:        first.Geometry,
		DistanceMeters:  first.Distance,
		DurationSeconds: first.Duration,
	}, nil
}
