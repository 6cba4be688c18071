package restapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Happy-Hiker-Co/HappyHiker/internal/models"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/transit"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/utils"
	"github.com/Happy-Hiker-Co/HappyHiker/traildb"
)

func (api *RestAPI) trailsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	trails, err := api.TrailDB.Queries.ListTrails(ctx)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	list := make([]models.Trail, 0, len(trails))
	for _, trail := range trails {
		images, err := api.TrailDB.Queries.ListTrailImages(ctx, trail.ID)
		if err != nil {
			api.serverErrorResponse(w, r, err)
			return
		}
		list = append(list, models.NewTrail(trail, images))
	}

	api.sendResponse(w, r, models.NewListResponse(list, false))
}

// trailFromRequest resolves the :id parameter. It writes the error response
// itself and returns ok=false when the trail cannot be served.
func (api *RestAPI) trailFromRequest(w http.ResponseWriter, r *http.Request) (traildb.Trail, bool) {
	rawID := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateID(rawID); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return traildb.Trail{}, false
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		api.validationErrorResponse(w, r, map[string][]string{"id": {"id must be a positive integer"}})
		return traildb.Trail{}, false
	}

	trail, err := api.TrailDB.Queries.GetTrail(r.Context(), id)
	if errors.Is(err, traildb.ErrNotFound) {
		api.sendNotFoundText(w, r, "trail not found")
		return traildb.Trail{}, false
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return traildb.Trail{}, false
	}
	return trail, true
}

func (api *RestAPI) trailHandler(w http.ResponseWriter, r *http.Request) {
	trail, ok := api.trailFromRequest(w, r)
	if !ok {
		return
	}

	images, err := api.TrailDB.Queries.ListTrailImages(r.Context(), trail.ID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.NewTrail(trail, images)))
}

func (api *RestAPI) trailTransitHandler(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()
	fieldErrors := make(map[string][]string)

	radius := utils.ParseFloatParam(queryParams, "radius", transit.DefaultRadiusMeters, fieldErrors)
	maxCount := utils.ParseIntParam(queryParams, "maxCount", transit.DefaultMaxCount, fieldErrors)
	if err := utils.ValidateRadius(radius); err != nil {
		fieldErrors["radius"] = append(fieldErrors["radius"], err.Error())
	}
	if maxCount < 1 || maxCount > 250 {
		fieldErrors["maxCount"] = append(fieldErrors["maxCount"], "maxCount must be between 1 and 250")
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	trail, ok := api.trailFromRequest(w, r)
	if !ok {
		return
	}

	if api.Transit == nil {
		api.serviceUnavailableResponse(w, r, "transit data is not configured")
		return
	}

	stops := api.Transit.StopsNear(trail.Lat, trail.Lon, radius, maxCount+1)
	limitExceeded := len(stops) > maxCount
	if limitExceeded {
		stops = stops[:maxCount]
	}

	api.sendResponse(w, r, models.NewListResponse(stops, limitExceeded))
}
