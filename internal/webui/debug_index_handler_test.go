package webui

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jamespfennell/gtfs"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Happy-Hiker-Co/HappyHiker/internal/app"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/appconf"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/transit"
	"github.com/Happy-Hiker-Co/HappyHiker/traildb"
)

func newTestWebUI(t *testing.T, env appconf.Environment) *WebUI {
	t.Helper()
	db, err := traildb.NewClient(traildb.NewConfig(":memory:", appconf.Test, false), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.StoreTrails(context.Background(), []traildb.NewTrail{
		{UpsertTrailParams: traildb.UpsertTrailParams{Name: "Mist Trail", Lat: 37.7326, Lon: -119.5577, Difficulty: "Hard"}},
	})
	require.NoError(t, err)

	return &WebUI{Application: &app.Application{
		Config:  appconf.Config{Env: env},
		TrailDB: db,
		Transit: transit.NewIndex(&gtfs.Static{
			Agencies: []gtfs.Agency{{Id: "YARTS", Name: "Yosemite Area Regional Transportation System"}},
		}, "memory"),
	}}
}

func getDebugPage(t *testing.T, webUI *WebUI, query string) (int, string) {
	t.Helper()
	router := httprouter.New()
	webUI.SetWebUIRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/"+query, nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return rec.Code, string(body)
}

func TestDebugIndexHandler(t *testing.T) {
	webUI := newTestWebUI(t, appconf.Development)

	tests := []struct {
		query string
		want  []string
	}{
		{"?dataType=trails", []string{"Trail catalog", "Mist Trail"}},
		{"?dataType=table_counts", []string{"table counts", "trails", "route_results"}},
		{"?dataType=agencies", []string{"GTFS Static - Agencies", "YARTS"}},
		{"?dataType=stats", []string{"Trail import statistics", "nil"}},
		{"", []string{"Choose a data type", "table_counts"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			code, body := getDebugPage(t, webUI, tt.query)
			assert.Equal(t, http.StatusOK, code)
			for _, want := range tt.want {
				assert.Contains(t, body, want)
			}
		})
	}
}

func TestDebugIndexWithoutTransit(t *testing.T) {
	webUI := newTestWebUI(t, appconf.Development)
	webUI.Transit = nil

	code, body := getDebugPage(t, webUI, "?dataType=stops")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "no GTFS source configured")
}

func TestDebugRoutesAreNotMountedInProduction(t *testing.T) {
	webUI := newTestWebUI(t, appconf.Production)

	router := httprouter.New()
	assert.False(t, webUI.SetWebUIRoutes(router))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/?dataType=trails", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
