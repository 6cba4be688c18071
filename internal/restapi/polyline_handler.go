package restapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Happy-Hiker-Co/HappyHiker/internal/models"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/routemetrics"
)

const maxPolylineBody = 1 << 20

type decodePolylineRequest struct {
	Polyline string `json:"polyline"`
}

type decodedPolyline struct {
	Coordinates []routemetrics.Coordinate `json:"coordinates"`
	Count       int                       `json:"count"`
	// Samples are the points an elevation lookup would use.
	Samples []routemetrics.Coordinate `json:"samples"`
}

func (api *RestAPI) decodePolylineHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPolylineBody)

	var req decodePolylineRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		api.badRequestResponse(w, r, "request body must be a JSON object with a polyline string")
		return
	}

	coords, err := routemetrics.DecodePolyline(strings.TrimSpace(req.Polyline))
	if err != nil {
		var decodeErr *routemetrics.DecodeError
		if errors.As(err, &decodeErr) {
			api.Metrics.ObserveDecodeFailure()
			api.badRequestResponse(w, r, decodeErr.Error())
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(decodedPolyline{
		Coordinates: coords,
		Count:       len(coords),
		Samples:     routemetrics.SampleForElevation(coords),
	}))
}
