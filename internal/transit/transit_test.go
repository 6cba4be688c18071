package transit

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jamespfennell/gtfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func yosemiteStatic() *gtfs.Static {
	return &gtfs.Static{
		Stops: []gtfs.Stop{
			{Id: "YV-VC", Code: "1", Name: "Yosemite Village Visitor Center", Latitude: ptr(37.7487), Longitude: ptr(-119.5877)},
			{Id: "YV-HP", Code: "16", Name: "Happy Isles", Latitude: ptr(37.7317), Longitude: ptr(-119.5583)},
			{Id: "YV-ML", Code: "17", Name: "Mirror Lake Trailhead", Latitude: ptr(37.7387), Longitude: ptr(-119.5578)},
			{Id: "EL-PORTAL", Name: "El Portal", Latitude: ptr(37.6747), Longitude: ptr(-119.7838)},
			{Id: "NO-COORDS", Name: "Station without location"},
		},
	}
}

func TestNewIndexSkipsStopsWithoutCoordinates(t *testing.T) {
	ix := NewIndex(yosemiteStatic(), "memory")
	assert.Equal(t, 4, ix.Len())
	assert.Equal(t, "memory", ix.Source())
	assert.False(t, ix.LoadedAt().IsZero())
	assert.Len(t, ix.Static().Stops, 5)
}

func TestStopsNear(t *testing.T) {
	ix := NewIndex(yosemiteStatic(), "memory")

	t.Run("nearest first within radius", func(t *testing.T) {
		// Mist Trail trailhead.
		stops := ix.StopsNear(37.7326, -119.5577, 1500, 10)
		require.Len(t, stops, 2)
		assert.Equal(t, "YV-HP", stops[0].ID)
		assert.Equal(t, "YV-ML", stops[1].ID)
		assert.Less(t, stops[0].DistanceMeters, stops[1].DistanceMeters)
		assert.Equal(t, "N", stops[1].Direction)
	})

	t.Run("max count truncates", func(t *testing.T) {
		stops := ix.StopsNear(37.7326, -119.5577, 5000, 1)
		require.Len(t, stops, 1)
		assert.Equal(t, "YV-HP", stops[0].ID)
	})

	t.Run("defaults apply", func(t *testing.T) {
		stops := ix.StopsNear(37.7317, -119.5583, 0, 0)
		require.NotEmpty(t, stops)
		for _, s := range stops {
			assert.LessOrEqual(t, s.DistanceMeters, DefaultRadiusMeters)
		}
	})

	t.Run("nothing nearby", func(t *testing.T) {
		stops := ix.StopsNear(36.0, -118.0, 1000, 10)
		assert.NotNil(t, stops)
		assert.Empty(t, stops)
	})
}

func buildFeed(t *testing.T) []byte {
	t.Helper()
	files := map[string]string{
		"agency.txt": "agency_id,agency_name,agency_url,agency_timezone\n" +
			"YARTS,Yosemite Area Regional Transportation System,https://yarts.com,America/Los_Angeles\n",
		"routes.txt": "route_id,agency_id,route_short_name,route_long_name,route_type\n" +
			"VS,YARTS,VS,Valley Shuttle,3\n",
		"stops.txt": "stop_id,stop_code,stop_name,stop_lat,stop_lon\n" +
			"YV-VC,1,Yosemite Village Visitor Center,37.7487,-119.5877\n" +
			"YV-HP,16,Happy Isles,37.7317,-119.5583\n" +
			"YV-ML,17,Mirror Lake Trailhead,37.7387,-119.5578\n",
		"calendar.txt": "service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date\n" +
			"DAILY,1,1,1,1,1,1,1,20250101,20261231\n",
		"trips.txt": "route_id,service_id,trip_id\n" +
			"VS,DAILY,VS-0700\n",
		"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
			"VS-0700,07:00:00,07:00:00,YV-VC,1\n" +
			"VS-0700,07:12:00,07:12:00,YV-HP,2\n" +
			"VS-0700,07:18:00,07:18:00,YV-ML,3\n",
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestLoadIndexFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "valley.zip")
	require.NoError(t, os.WriteFile(path, buildFeed(t), 0o600))

	ix, err := LoadIndex(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, ix.Len())
	assert.Len(t, ix.Static().Agencies, 1)
}

func TestLoadIndexFromURL(t *testing.T) {
	feed := buildFeed(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(feed)
	}))
	defer server.Close()

	ix, err := LoadIndex(context.Background(), server.URL+"/gtfs.zip", server.Client())
	require.NoError(t, err)
	assert.Equal(t, 3, ix.Len())
}

func TestLoadIndexErrors(t *testing.T) {
	_, err := LoadIndex(context.Background(), filepath.Join(t.TempDir(), "missing.zip"), nil)
	assert.Error(t, err)

	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()
	_, err = LoadIndex(context.Background(), server.URL, nil)
	assert.Error(t, err)

	junk := filepath.Join(t.TempDir(), "junk.zip")
	require.NoError(t, os.WriteFile(junk, []byte("not a zip"), 0o600))
	_, err = LoadIndex(context.Background(), junk, nil)
	assert.Error(t, err)
}
