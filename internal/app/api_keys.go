package app

import (
	"net/http"
	"slices"
	"strings"
)

// APIKeyHeader carries the key for clients that cannot put it in the query
// string. The ?key= parameter wins when both are present.
const APIKeyHeader = "X-Api-Key"

// APIKeyFromRequest returns the caller's key, or "" when none was sent.
func APIKeyFromRequest(r *http.Request) string {
	if key := r.URL.Query().Get("key"); key != "" {
		return key
	}
	return strings.TrimSpace(r.Header.Get(APIKeyHeader))
}

func (app *Application) RequestHasInvalidAPIKey(r *http.Request) bool {
	return app.IsInvalidAPIKey(APIKeyFromRequest(r))
}

func (app *Application) IsInvalidAPIKey(key string) bool {
	if key == "" {
		return true
	}
	return !slices.Contains(app.Config.ApiKeys, key)
}
