package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jamespfennell/gtfs"
	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/Happy-Hiker-Co/HappyHiker/internal/app"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/appconf"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/audio"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/logging"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/mapping"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/metrics"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/models"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/routing"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/session"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/settings"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/transit"
	"github.com/Happy-Hiker-Co/HappyHiker/traildb"
)

const (
	testKey           = "TEST"
	canonicalPolyline = "_p~iF~ps|U_ulLnnqC_mqNvxq`@"
)

var testPrompts = []string{
	"https://happy-hiker.s3.amazonaws.com/prompts/breathe.mp3",
	"https://happy-hiker.s3.amazonaws.com/prompts/listen.mp3",
}

// Trail longitudes the fake map service keys its answers on.
const (
	lonNoRoute     = -100.0
	lonBadGeometry = -101.0
	lonUpstream500 = -102.0
)

// fakeMapbox answers directions and tilequery requests. The directions answer
// depends on the start longitude; elevations follow the canonical polyline.
func fakeMapbox(t *testing.T) *httptest.Server {
	t.Helper()
	elevations := map[string]float64{
		"-120.200000": 1200,
		"-120.950000": 1150,
		"-126.453000": 1300,
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/directions/"):
			switch {
			case strings.Contains(r.URL.Path, fmt.Sprintf("/%.6f,", lonNoRoute)):
				_, _ = w.Write([]byte(`{"code":"NoRoute","routes":[]}`))
			case strings.Contains(r.URL.Path, fmt.Sprintf("/%.6f,", lonBadGeometry)):
				_, _ = w.Write([]byte(`{"code":"Ok","routes":[{"geometry":"_p~iF~ps|U_ulL","distance":10}]}`))
			case strings.Contains(r.URL.Path, fmt.Sprintf("/%.6f,", lonUpstream500)):
				http.Error(w, "boom", http.StatusInternalServerError)
			default:
				fmt.Fprintf(w, `{"code":"Ok","routes":[{"geometry":%q,"distance":4828.03,"duration":3600}]}`, canonicalPolyline)
			}
		case strings.Contains(r.URL.Path, "/tilequery/"):
			last := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
			lon, _, _ := strings.Cut(strings.TrimSuffix(last, ".json"), ",")
			ele, ok := elevations[lon]
			if !ok {
				_, _ = w.Write([]byte(`{"features":[]}`))
				return
			}
			fmt.Fprintf(w, `{"features":[{"properties":{"ele":%g}}]}`, ele)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func testTrails() []traildb.NewTrail {
	return []traildb.NewTrail{
		{
			UpsertTrailParams: traildb.UpsertTrailParams{Name: "Mist Trail", Lat: 37.7326, Lon: -119.5577, Difficulty: "Hard"},
			Images:            []traildb.NewTrailImage{{URL: "https://www.nps.gov/common/uploads/mist.jpg", Caption: "Vernal Fall"}},
		},
		{UpsertTrailParams: traildb.UpsertTrailParams{Name: "Mirror Lake Trail", Lat: 37.7454, Lon: -119.5516, Difficulty: "Easy"}},
		{UpsertTrailParams: traildb.UpsertTrailParams{Name: "Disconnected Trail", Lat: 40, Lon: lonNoRoute, Difficulty: "Easy"}},
		{UpsertTrailParams: traildb.UpsertTrailParams{Name: "Garbled Trail", Lat: 40, Lon: lonBadGeometry, Difficulty: "Easy"}},
		{UpsertTrailParams: traildb.UpsertTrailParams{Name: "Outage Trail", Lat: 40, Lon: lonUpstream500, Difficulty: "Easy"}},
	}
}

func ptr(f float64) *float64 { return &f }

func testTransit() *transit.Index {
	return transit.NewIndex(&gtfs.Static{
		Stops: []gtfs.Stop{
			{Id: "YV-HP", Code: "16", Name: "Happy Isles", Latitude: ptr(37.7317), Longitude: ptr(-119.5583)},
			{Id: "YV-ML", Code: "17", Name: "Mirror Lake Trailhead", Latitude: ptr(37.7387), Longitude: ptr(-119.5578)},
			{Id: "YV-VC", Code: "1", Name: "Yosemite Village Visitor Center", Latitude: ptr(37.7487), Longitude: ptr(-119.5877)},
		},
	}, "memory")
}

// createTestApi creates a RestAPI over an in-memory trail database and a fake
// map service.
func createTestApi(t *testing.T) *RestAPI {
	t.Helper()
	ctx := context.Background()

	db, err := traildb.NewClient(traildb.NewConfig(":memory:", appconf.Test, false), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.StoreTrails(ctx, testTrails())
	require.NoError(t, err)

	collector, err := metrics.NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)

	mapbox := fakeMapbox(t)
	logger := logging.NewStructuredLogger(io.Discard, slog.LevelDebug)

	routingService := routing.NewService(routing.Config{
		Store:      db.Queries,
		Directions: mapping.NewDirectionsClient(mapping.DirectionsConfig{BaseURL: mapbox.URL, AccessToken: "pk.test"}),
		Elevations: mapping.NewElevationClient(mapping.ElevationConfig{BaseURL: mapbox.URL, AccessToken: "pk.test", RequestsPerSecond: -1}),
		Metrics:    collector,
		Logger:     logger,
	})

	kv := db.KVStore()
	application := &app.Application{
		Config: appconf.Config{
			Env:       appconf.EnvFlagToEnvironment("test"),
			ApiKeys:   []string{testKey},
			RateLimit: 100,
		},
		Logger:   logger,
		TrailDB:  db,
		Routing:  routingService,
		Transit:  testTransit(),
		Audio:    audio.NewService(testPrompts, rand.New(rand.NewSource(1)), logger),
		Settings: settings.New(kv),
		Sessions: session.NewService(kv),
		Metrics:  collector,
	}

	api := NewRestAPI(application)
	t.Cleanup(api.Shutdown)
	return api
}

func newTestServer(t *testing.T, api *RestAPI) *httptest.Server {
	t.Helper()
	router := httprouter.New()
	api.SetRoutes(router)
	server := httptest.NewServer(api.Handler(router))
	t.Cleanup(server.Close)
	return server
}

// callApi sends one request and decodes the envelope. The raw body is
// returned for endpoints that answer with something else.
func callApi(t *testing.T, api *RestAPI, method, endpoint string, body interface{}) (*http.Response, models.ResponseModel, []byte) {
	t.Helper()
	server := newTestServer(t, api)

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, server.URL+endpoint, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body, slog.Default(), "http_response_body")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var model models.ResponseModel
	_ = json.Unmarshal(raw, &model)
	return resp, model, raw
}

func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	t.Helper()
	resp, model, _ := callApi(t, api, http.MethodGet, endpoint, nil)
	return resp, model
}

// serveAndRetrieveEndpoint sets up a fresh API, requests endpoint and returns
// the response and decoded model.
func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *http.Response, models.ResponseModel) {
	t.Helper()
	api := createTestApi(t)
	resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
	return api, resp, model
}

// entry pulls data.entry out of a decoded envelope.
func entry(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object, got %T", model.Data)
	e, ok := data["entry"].(map[string]interface{})
	require.True(t, ok, "entry should be an object, got %T", data["entry"])
	return e
}

// list pulls data.list out of a decoded envelope.
func list(t *testing.T, model models.ResponseModel) []interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object, got %T", model.Data)
	l, ok := data["list"].([]interface{})
	require.True(t, ok, "list should be an array, got %T", data["list"])
	return l
}
