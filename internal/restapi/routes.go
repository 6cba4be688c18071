package restapi

import (
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// handle registers an API route behind metrics, rate limiting and the key
// check, in that order.
func (api *RestAPI) handle(router *httprouter.Router, method, path string, h handlerFunc) {
	router.Handler(method, path, api.Metrics.Instrument(path, api.rateLimit(validateAPIKey(api, h))))
}

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	api.handle(router, http.MethodGet, "/api/current-time.json", api.currentTimeHandler)

	api.handle(router, http.MethodGet, "/api/trails.json", api.trailsHandler)
	api.handle(router, http.MethodGet, "/api/trails/:id", api.trailHandler)
	api.handle(router, http.MethodGet, "/api/trails/:id/transit.json", api.trailTransitHandler)

	api.handle(router, http.MethodGet, "/api/route.json", api.routeHandler)
	api.handle(router, http.MethodGet, "/api/route/:id", api.savedRouteHandler)
	api.handle(router, http.MethodPost, "/api/polyline/decode", api.decodePolylineHandler)

	api.handle(router, http.MethodGet, "/api/audio/prompt.json", api.audioPromptHandler)
	api.handle(router, http.MethodGet, "/api/settings/volume", api.volumeHandler)
	api.handle(router, http.MethodPut, "/api/settings/volume", api.updateVolumeHandler)

	api.handle(router, http.MethodPost, "/api/session", api.startSessionHandler)
	api.handle(router, http.MethodGet, "/api/session/:id", api.sessionHandler)
	api.handle(router, http.MethodDelete, "/api/session/:id", api.endSessionHandler)

	router.Handler(http.MethodGet, "/metrics", api.Metrics.Handler())

	router.NotFound = http.HandlerFunc(api.sendNotFound)
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.writeError(w, http.StatusMethodNotAllowed, "method not allowed", 2)
	})
	router.PanicHandler = func(w http.ResponseWriter, r *http.Request, v interface{}) {
		api.serverErrorResponse(w, r, panicError{v})
	}
}

// Handler wraps router with the middleware every request passes through.
func (api *RestAPI) Handler(router http.Handler) http.Handler {
	handler := CompressionMiddleware(router)
	handler = api.WithSecurityHeaders(handler)
	return NewRequestLoggingMiddleware(api.Logger)(handler)
}

type panicError struct{ v interface{} }

func (p panicError) Error() string {
	return fmt.Sprintf("panic: %v", p.v)
}
