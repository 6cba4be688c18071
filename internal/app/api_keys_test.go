package app

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Happy-Hiker-Co/HappyHiker/internal/appconf"
)

func testApp(keys ...string) *Application {
	return &Application{Config: appconf.Config{ApiKeys: keys}}
}

func TestBlankKeyIsInvalid(t *testing.T) {
	assert.True(t, testApp("key").IsInvalidAPIKey(""))
}

func TestKnownKeyIsValid(t *testing.T) {
	app := testApp("hiker", "ranger")
	assert.False(t, app.IsInvalidAPIKey("hiker"))
	assert.False(t, app.IsInvalidAPIKey("ranger"))
	assert.True(t, app.IsInvalidAPIKey("HIKER"))
}

func TestRequestHasInvalidAPIKey(t *testing.T) {
	app := testApp("hiker")

	assert.False(t, app.RequestHasInvalidAPIKey(httptest.NewRequest("GET", "/api/trails.json?key=hiker", nil)))
	assert.True(t, app.RequestHasInvalidAPIKey(httptest.NewRequest("GET", "/api/trails.json?key=other", nil)))
	assert.True(t, app.RequestHasInvalidAPIKey(httptest.NewRequest("GET", "/api/trails.json", nil)))
}

func TestNoConfiguredKeysRejectsEverything(t *testing.T) {
	assert.True(t, testApp().IsInvalidAPIKey("anything"))
}

func TestAPIKeyFromHeader(t *testing.T) {
	app := testApp("hiker")

	r := httptest.NewRequest("GET", "/api/trails.json", nil)
	r.Header.Set(APIKeyHeader, " hiker ")
	assert.Equal(t, "hiker", APIKeyFromRequest(r))
	assert.False(t, app.RequestHasInvalidAPIKey(r))

	r = httptest.NewRequest("GET", "/api/trails.json?key=query", nil)
	r.Header.Set(APIKeyHeader, "hiker")
	assert.Equal(t, "query", APIKeyFromRequest(r))
	assert.True(t, app.RequestHasInvalidAPIKey(r))
}
