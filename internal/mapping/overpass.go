package mapping

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"unicode"

	"github.com/Happy-Hiker-Co/HappyHiker/internal/logging"
)

const DefaultOverpassURL = "https://overpass-api.de/api/interpreter"

// BoundingBox is south, west, north, east in degrees.
type BoundingBox [4]float64

// YosemiteBounds covers the valley and the high country trailheads.
var YosemiteBounds = BoundingBox{37.5, -119.7, 38.0, -119.2}

type OverpassConfig struct {
	URL        string
	Bounds     BoundingBox
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// OverpassGeocoder finds named footpaths in OpenStreetMap and answers with
// the first vertex of the first match.
type OverpassGeocoder struct {
	url    string
	bounds BoundingBox
	client *http.Client
	logger *slog.Logger
}

func NewOverpassGeocoder(cfg OverpassConfig) *OverpassGeocoder {
	if cfg.URL == "" {
		cfg.URL = DefaultOverpassURL
	}
	if cfg.Bounds == (BoundingBox{}) {
		cfg.Bounds = YosemiteBounds
	}
	return &OverpassGeocoder{
		url:    cfg.URL,
		bounds: cfg.Bounds,
		client: defaultHTTPClient(cfg.HTTPClient),
		logger: logging.Component(cfg.Logger, "overpass_geocoder"),
	}
}

type overpassResponse struct {
	Elements []struct {
		Type     string            `json:"type"`
		Tags     map[string]string `json:"tags"`
		Geometry []struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"geometry"`
	} `json:"elements"`
}

// overpassName keeps only characters that are inert inside an Overpass QL
// regular expression literal.
func overpassName(name string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '\'' {
			return r
		}
		return -1
	}, name))
}

func (g *OverpassGeocoder) query(name string) string {
	bbox := fmt.Sprintf("(%g,%g,%g,%g)", g.bounds[0], g.bounds[1], g.bounds[2], g.bounds[3])
	var b strings.Builder
	b.WriteString("[out:json];(")
	for _, highway := range []string{"path", "footway"} {
		fmt.Fprintf(&b, `way["highway"="%s"]["name"~"%s",i]%s;`, highway, name, bbox)
	}
	b.WriteString(");out geom;")
	return b.String()
}

func (g *OverpassGeocoder) Locate(ctx context.Context, name string) (Coordinate, error) {
	cleaned := overpassName(name)
	if cleaned == "" {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrPlaceNotFound, name)
	}

	form := url.Values{}
	form.Set("data", g.query(cleaned))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, strings.NewReader(form.Encode()))
	if err != nil {
		return Coordinate{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "happy-hiker-app/1.0")

	var resp overpassResponse
	if err := getJSON(g.client, req, "overpass", g.logger, &resp); err != nil {
		return Coordinate{}, err
	}

	for _, el := range resp.Elements {
		if len(el.Geometry) == 0 {
			continue
		}
		g.logger.Debug("path located",
			slog.String("query", cleaned),
			slog.String("name", el.Tags["name"]))
		first := el.Geometry[0]
		return Coordinate{Lon: first.Lon, Lat: first.Lat}, nil
	}
	return Coordinate{}, fmt.Errorf("%w: %q", ErrPlaceNotFound, name)
}
