package restapi

import (
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentTimeHandler(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/current-time.json?key="+testKey)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	current := entry(t, model)
	assert.InDelta(t, float64(time.Now().UnixMilli()), current["time"], 5000)
	_, err := time.Parse(time.RFC3339, current["readableTime"].(string))
	assert.NoError(t, err)
}

func TestApiKeyFromHeaderIsAccepted(t *testing.T) {
	api := createTestApi(t)
	server := newTestServer(t, api)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/current-time.json", nil)
	require.NoError(t, err)
	req.Header.Set("X-Api-Key", testKey)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUnknownRouteIsJSONNotFound(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/where/agencies-with-coverage.json?key="+testKey)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "resource not found", model.Text)
}

func TestResponsesCarrySecurityHeadersAndRequestID(t *testing.T) {
	_, resp, _ := serveAndRetrieveEndpoint(t, "/api/trails.json?key="+testKey)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestMetricsEndpoint(t *testing.T) {
	api := createTestApi(t)
	serveApiAndRetrieveEndpoint(t, api, "/api/trails.json?key="+testKey)

	server := newTestServer(t, api)
	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `route="/api/trails.json"`)
}

func TestRateLimitIntegration(t *testing.T) {
	api := createTestApi(t)
	api.rateLimiter.Stop()
	api.rateLimiter = NewRateLimitMiddleware(2, time.Minute)
	t.Cleanup(api.rateLimiter.Stop)

	server := newTestServer(t, api)
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := http.Get(server.URL + "/api/current-time.json?key=" + testKey)
		require.NoError(t, err)
		codes = append(codes, resp.StatusCode)
		_ = resp.Body.Close()
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
