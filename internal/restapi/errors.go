package restapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Happy-Hiker-Co/HappyHiker/internal/logging"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/models"
)

// errorBody is the envelope for failures. It has no data member.
type errorBody struct {
	Code        int    `json:"code"`
	CurrentTime int64  `json:"currentTime"`
	Text        string `json:"text"`
	Version     int    `json:"version"`
}

func (api *RestAPI) writeError(w http.ResponseWriter, status int, text string, version int) {
	setJSONResponseType(&w)
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(errorBody{
		Code:        status,
		CurrentTime: models.ResponseCurrentTime(),
		Text:        text,
		Version:     version,
	})
	if err != nil {
		logging.LogError(api.Logger, "failed to encode error response", err, slog.Int("status", status))
	}
}

// invalidAPIKeyResponse sends a 401 Unauthorized response with the required format
// for invalid API key errors
func (api *RestAPI) invalidAPIKeyResponse(w http.ResponseWriter, r *http.Request) {
	api.writeError(w, http.StatusUnauthorized, "permission denied", 1)
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(api.requestLogger(r), "internal server error", err,
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path))
	api.writeError(w, http.StatusInternalServerError, "internal server error", 1)
}

// badGatewayResponse reports an upstream map service failure or upstream data
// the route metrics could not use.
func (api *RestAPI) badGatewayResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(api.requestLogger(r), "upstream failure", err,
		slog.String("path", r.URL.Path))
	api.writeError(w, http.StatusBadGateway, "upstream service error", 2)
}

func (api *RestAPI) badRequestResponse(w http.ResponseWriter, r *http.Request, text string) {
	api.writeError(w, http.StatusBadRequest, text, 2)
}

func (api *RestAPI) serviceUnavailableResponse(w http.ResponseWriter, r *http.Request, text string) {
	api.writeError(w, http.StatusServiceUnavailable, text, 2)
}

// validationErrorResponse sends a 400 Bad Request response with field-specific validation errors
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	response := struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}{
		FieldErrors: fieldErrors,
	}

	setJSONResponseType(&w)
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logging.LogError(api.Logger, "failed to encode validation error response", err)
	}
}

// requestLogger prefers the logger the logging middleware put on the request.
func (api *RestAPI) requestLogger(r *http.Request) *slog.Logger {
	logger := logging.FromContext(r.Context())
	if logger == slog.Default() && api.Logger != nil {
		return api.Logger
	}
	return logger
}
