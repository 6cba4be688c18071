package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudioPromptHandler(t *testing.T) {
	api := createTestApi(t)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/audio/prompt.json?interval=30s&key="+testKey)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	prompt := entry(t, model)
	assert.Contains(t, testPrompts, prompt["url"])
	assert.Equal(t, "30s", prompt["interval"])
	assert.EqualValues(t, 30000, prompt["intervalMs"])
	assert.EqualValues(t, 50, prompt["volume"])
}

func TestAudioPromptHandlerDefaultsToOneMinute(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/audio/prompt.json?key="+testKey)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 60000, entry(t, model)["intervalMs"])
}

func TestAudioPromptHandlerRejectsUnknownInterval(t *testing.T) {
	api := createTestApi(t)
	resp, _, raw := callApi(t, api, http.MethodGet, "/api/audio/prompt.json?interval=5m&key="+testKey, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), `"interval"`)
}

func TestVolumeHandlers(t *testing.T) {
	api := createTestApi(t)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/settings/volume?key="+testKey)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 50, entry(t, model)["volume"])

	resp, model, _ = callApi(t, api, http.MethodPut, "/api/settings/volume?key="+testKey, map[string]int{"volume": 80})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 80, entry(t, model)["volume"])

	_, model = serveApiAndRetrieveEndpoint(t, api, "/api/settings/volume?key="+testKey)
	assert.EqualValues(t, 80, entry(t, model)["volume"])

	_, model = serveApiAndRetrieveEndpoint(t, api, "/api/audio/prompt.json?key="+testKey)
	assert.EqualValues(t, 80, entry(t, model)["volume"], "prompts carry the stored volume")
}

func TestUpdateVolumeHandlerValidation(t *testing.T) {
	api := createTestApi(t)

	for _, body := range []interface{}{
		map[string]int{"volume": 101},
		map[string]int{"volume": -1},
		map[string]string{"volume": "loud"},
		map[string]string{},
	} {
		resp, _, raw := callApi(t, api, http.MethodPut, "/api/settings/volume?key="+testKey, body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "body %v", body)
		assert.Contains(t, string(raw), `"volume"`)
	}

	_, model := serveApiAndRetrieveEndpoint(t, api, "/api/settings/volume?key="+testKey)
	assert.EqualValues(t, 50, entry(t, model)["volume"])
}
