package utils

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func TestExtractIDFromParams(t *testing.T) {
	testCases := []struct {
		name string
		id   string
		want string
	}{
		{name: "numeric id", id: "12", want: "12"},
		{name: "json suffix", id: "12.json", want: "12"},
		{name: "uuid", id: "3f3c1c36-bd49-4f8d-9d61-0fd3b7b7a0e1.json", want: "3f3c1c36-bd49-4f8d-9d61-0fd3b7b7a0e1"},
		{name: "inner dots survive", id: "a.b.json", want: "a.b"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := httprouter.New()

			var result string
			router.HandlerFunc(http.MethodGet, "/api/trails/:id", func(w http.ResponseWriter, r *http.Request) {
				result = ExtractIDFromParams(r, "id")
			})

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/trails/"+tc.id, nil))
			assert.Equal(t, tc.want, result)
		})
	}
}

func TestParseFloatParam(t *testing.T) {
	params := url.Values{"radius": {"1500.5"}, "lat": {"north"}}
	fieldErrors := map[string][]string{}

	assert.Equal(t, 1500.5, ParseFloatParam(params, "radius", 0, fieldErrors))
	assert.Equal(t, 800.0, ParseFloatParam(params, "missing", 800, fieldErrors))
	assert.Equal(t, 0.0, ParseFloatParam(params, "lat", 0, fieldErrors))

	assert.Equal(t, map[string][]string{"lat": {`Invalid field value for field "lat".`}}, fieldErrors)
}

func TestParseIntParam(t *testing.T) {
	params := url.Values{"maxCount": {"5"}, "volume": {"loud"}}
	fieldErrors := map[string][]string{}

	assert.Equal(t, 5, ParseIntParam(params, "maxCount", 10, fieldErrors))
	assert.Equal(t, 10, ParseIntParam(params, "missing", 10, fieldErrors))
	assert.Equal(t, 0, ParseIntParam(params, "volume", 0, fieldErrors))
	assert.Contains(t, fieldErrors, "volume")
}
