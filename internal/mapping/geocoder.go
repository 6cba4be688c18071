package mapping

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Happy-Hiker-Co/HappyHiker/internal/logging"
)

// ErrPlaceNotFound is returned when no geocoder knows the name.
var ErrPlaceNotFound = errors.New("place not found")

// Geocoder resolves a free-text place name to a point.
type Geocoder interface {
	Locate(ctx context.Context, name string) (Coordinate, error)
}

type NPSConfig struct {
	BaseURL    string
	APIKey     string
	ParkCode   string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NPSGeocoder searches the National Park Service places endpoint.
type NPSGeocoder struct {
	baseURL  string
	apiKey   string
	parkCode string
	client   *http.Client
	logger   *slog.Logger
}

func NewNPSGeocoder(cfg NPSConfig) *NPSGeocoder {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultNPSURL
	}
	if cfg.ParkCode == "" {
		cfg.ParkCode = "yose"
	}
	return &NPSGeocoder{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		parkCode: strings.ToLower(cfg.ParkCode),
		client:   defaultHTTPClient(cfg.HTTPClient),
		logger:   logging.Component(cfg.Logger, "nps_geocoder"),
	}
}

type npsPlacesResponse struct {
	Data []npsPlace `json:"data"`
}

type npsPlace struct {
	Title             string `json:"title"`
	Latitude          string `json:"latitude"`
	Longitude         string `json:"longitude"`
	LatitudeLongitude string `json:"latitudeLongitude"`
}

// coordinate prefers the separate latitude/longitude fields and falls back to
// the combined "lat:37.7, long:-119.5" form.
func (p npsPlace) coordinate() (Coordinate, bool) {
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(p.Latitude), 64)
	lon, errLon := strconv.ParseFloat(strings.TrimSpace(p.Longitude), 64)
	if errLat == nil && errLon == nil && (lat != 0 || lon != 0) {
		return Coordinate{Lon: lon, Lat: lat}, true
	}
	return parseLatLong(p.LatitudeLongitude)
}

func parseLatLong(s string) (Coordinate, bool) {
	var c Coordinate
	var haveLat, haveLon bool
	for _, part := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "lat":
			c.Lat, haveLat = v, true
		case "long", "lng", "lon":
			c.Lon, haveLon = v, true
		}
	}
	return c, haveLat && haveLon
}

func (g *NPSGeocoder) Locate(ctx context.Context, name string) (Coordinate, error) {
	params := url.Values{}
	params.Set("parkCode", g.parkCode)
	params.Set("q", name)
	params.Set("api_key", g.apiKey)

	req, err := newGet(ctx, g.baseURL+"/places?"+params.Encode())
	if err != nil {
		return Coordinate{}, err
	}

	var resp npsPlacesResponse
	if err := getJSON(g.client, req, "nps_places", g.logger, &resp); err != nil {
		return Coordinate{}, err
	}

	for _, place := range resp.Data {
		if c, ok := place.coordinate(); ok {
			g.logger.Debug("place located", slog.String("query", name), slog.String("title", place.Title))
			return c, nil
		}
	}
	return Coordinate{}, fmt.Errorf("%w: %q", ErrPlaceNotFound, name)
}

// ChainGeocoder tries each geocoder in turn. Any failure, not only
// ErrPlaceNotFound, moves on to the next one.
type ChainGeocoder []Geocoder

func (chain ChainGeocoder) Locate(ctx context.Context, name string) (Coordinate, error) {
	var errs []error
	for _, g := range chain {
		c, err := g.Locate(ctx, name)
		if err == nil {
			return c, nil
		}
		if ctx.Err() != nil {
			return Coordinate{}, ctx.Err()
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrPlaceNotFound, name)
	}
	return Coordinate{}, errors.Join(append([]error{ErrPlaceNotFound}, errs...)...)
}
