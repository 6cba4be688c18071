package mapping

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// terrainServer answers tilequery requests with contours at lon*10, lon*10+5
// and a feature without an elevation.
func terrainServer(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		// /v4/mapbox.mapbox-terrain-v2/tilequery/{lon},{lat}.json
		last := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		lonText, _, _ := strings.Cut(strings.TrimSuffix(last, ".json"), ",")
		lon, err := strconv.ParseFloat(lonText, 64)
		if err != nil {
			http.Error(w, "bad point", http.StatusBadRequest)
			return
		}
		if lon < 0 {
			_, _ = w.Write([]byte(`{"type":"FeatureCollection","features":[]}`))
			return
		}
		fmt.Fprintf(w, `{"type":"FeatureCollection","features":[
			{"properties":{"ele":%g}},
			{"properties":{"ele":%g}},
			{"properties":{"index":5}}]}`, lon*10, lon*10+5)
	}))
}

func TestElevationClientElevation(t *testing.T) {
	var calls atomic.Int32
	server := terrainServer(t, &calls)
	defer server.Close()

	client := NewElevationClient(ElevationConfig{BaseURL: server.URL, RequestsPerSecond: -1})

	ele, err := client.Elevation(context.Background(), Coordinate{Lon: 120, Lat: 37})
	require.NoError(t, err)
	assert.InDelta(t, 1205, ele, 1e-9)

	_, err = client.Elevation(context.Background(), Coordinate{Lon: -1, Lat: 37})
	assert.ErrorIs(t, err, ErrNoElevation)
}

func TestElevationClientElevationsPreservesOrder(t *testing.T) {
	var calls atomic.Int32
	server := terrainServer(t, &calls)
	defer server.Close()

	client := NewElevationClient(ElevationConfig{BaseURL: server.URL, Workers: 4, RequestsPerSecond: -1})

	points := make([]Coordinate, 30)
	for i := range points {
		points[i] = Coordinate{Lon: float64(i), Lat: 37}
	}

	elevations, err := client.Elevations(context.Background(), points)
	require.NoError(t, err)
	require.Len(t, elevations, len(points))
	for i, ele := range elevations {
		assert.InDelta(t, float64(i)*10+5, ele, 1e-9, "point %d", i)
	}
	assert.Equal(t, int32(30), calls.Load())
}

func TestElevationClientElevationsFailure(t *testing.T) {
	var calls atomic.Int32
	server := terrainServer(t, &calls)
	defer server.Close()

	client := NewElevationClient(ElevationConfig{BaseURL: server.URL, Workers: 2, RequestsPerSecond: -1})

	points := []Coordinate{{Lon: 1, Lat: 37}, {Lon: -5, Lat: 37}, {Lon: 2, Lat: 37}}
	elevations, err := client.Elevations(context.Background(), points)
	assert.Nil(t, elevations)
	assert.ErrorIs(t, err, ErrNoElevation)
	assert.Contains(t, err.Error(), "point 1")
}

func TestElevationClientEmptyInput(t *testing.T) {
	client := NewElevationClient(ElevationConfig{BaseURL: "http://127.0.0.1:0"})
	elevations, err := client.Elevations(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, elevations)
}

func TestElevationClientCanceledContext(t *testing.T) {
	var calls atomic.Int32
	server := terrainServer(t, &calls)
	defer server.Close()

	client := NewElevationClient(ElevationConfig{BaseURL: server.URL})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Elevations(ctx, []Coordinate{{Lon: 1, Lat: 1}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls.Load())
}
