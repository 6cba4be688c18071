// Package transit answers "which transit stops are near this trailhead"
// from a static GTFS feed.
package transit

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/jamespfennell/gtfs"

	"github.com/Happy-Hiker-Co/HappyHiker/internal/utils"
)

const (
	DefaultRadiusMeters = 1000.0
	DefaultMaxCount     = 10
	metersPerDegreeLat  = 111000.0
)

// Stop is a transit stop relative to a query point.
type Stop struct {
	ID             string  `json:"id"`
	Code           string  `json:"code,omitempty"`
	Name           string  `json:"name"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	DistanceMeters float64 `json:"distanceMeters"`
	Direction      string  `json:"direction"`
}

type indexedStop struct {
	id, code, name string
	lat, lon       float64
}

// Index is an immutable snapshot of the stops in a GTFS feed.
type Index struct {
	static   *gtfs.Static
	stops    []indexedStop
	source   string
	loadedAt time.Time
}

// NewIndex indexes every stop in static that has coordinates.
func NewIndex(static *gtfs.Static, source string) *Index {
	ix := &Index{static: static, source: source, loadedAt: time.Now()}
	for _, s := range static.Stops {
		if s.Latitude == nil || s.Longitude == nil {
			continue
		}
		ix.stops = append(ix.stops, indexedStop{
			id:   s.Id,
			code: s.Code,
			name: s.Name,
			lat:  *s.Latitude,
			lon:  *s.Longitude,
		})
	}
	return ix
}

// LoadIndex reads a GTFS zip from a URL or a local path and indexes it.
func LoadIndex(ctx context.Context, source string, client *http.Client) (*Index, error) {
	b, err := rawGtfsData(ctx, source, client)
	if err != nil {
		return nil, err
	}

	static, err := gtfs.ParseStatic(b, gtfs.ParseStaticOptions{})
	if err != nil {
		return nil, fmt.Errorf("error parsing GTFS data: %w", err)
	}
	return NewIndex(static, source), nil
}

func rawGtfsData(ctx context.Context, source string, client *http.Client) ([]byte, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		b, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("error reading local GTFS file: %w", err)
		}
		return b, nil
	}

	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error downloading GTFS data: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error downloading GTFS data: unexpected status %d", resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading GTFS data: %w", err)
	}
	return b, nil
}

// StopsNear returns up to maxCount stops within radius meters of lat,lon,
// nearest first. Non-positive radius and maxCount select the defaults.
func (ix *Index) StopsNear(lat, lon, radius float64, maxCount int) []Stop {
	if radius <= 0 {
		radius = DefaultRadiusMeters
	}
	if maxCount <= 0 {
		maxCount = DefaultMaxCount
	}

	latDelta := radius / metersPerDegreeLat
	lonDelta := radius / (metersPerDegreeLat * math.Max(math.Cos(lat*math.Pi/180), 1e-6))

	stops := []Stop{}
	for _, s := range ix.stops {
		if math.Abs(s.lat-lat) > latDelta || math.Abs(s.lon-lon) > lonDelta {
			continue
		}
		d := utils.Haversine(lat, lon, s.lat, s.lon)
		if d > radius {
			continue
		}
		stops = append(stops, Stop{
			ID:             s.id,
			Code:           s.code,
			Name:           s.name,
			Lat:            s.lat,
			Lon:            s.lon,
			DistanceMeters: d,
			Direction:      utils.CompassDirection(lat, lon, s.lat, s.lon),
		})
	}

	sort.SliceStable(stops, func(i, j int) bool {
		return stops[i].DistanceMeters < stops[j].DistanceMeters
	})
	if len(stops) > maxCount {
		stops = stops[:maxCount]
	}
	return stops
}

// Len is the number of indexed stops.
func (ix *Index) Len() int {
	return len(ix.stops)
}

// Static exposes the parsed feed for debugging.
func (ix *Index) Static() *gtfs.Static {
	return ix.static
}

func (ix *Index) Source() string {
	return ix.source
}

func (ix *Index) LoadedAt() time.Time {
	return ix.loadedAt
}
