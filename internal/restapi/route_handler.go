package restapi

import (
	"errors"
	"net/http"

	"github.com/Happy-Hiker-Co/HappyHiker/internal/mapping"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/models"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/routemetrics"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/routing"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/utils"
)

func (api *RestAPI) routeHandler(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()
	fieldErrors := make(map[string][]string)

	start, err := utils.ValidateAndSanitizeTrailName(queryParams.Get("start"))
	if err != nil {
		fieldErrors["start"] = []string{err.Error()}
	}
	end, err := utils.ValidateAndSanitizeTrailName(queryParams.Get("end"))
	if err != nil {
		fieldErrors["end"] = []string{err.Error()}
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	if api.Routing == nil {
		api.serviceUnavailableResponse(w, r, "routing is not configured")
		return
	}

	plan, err := api.Routing.Plan(r.Context(), start, end)
	if err != nil {
		api.routeErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(plan))
}

func (api *RestAPI) savedRouteHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	if api.Routing == nil {
		api.serviceUnavailableResponse(w, r, "routing is not configured")
		return
	}

	plan, err := api.Routing.Lookup(r.Context(), id)
	if err != nil {
		api.routeErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(plan))
}

// routeErrorResponse maps planning failures to status codes. Unknown trails
// and unusable geometry read as not found. Map service failures and
// non-finite elevations are the upstream's fault.
func (api *RestAPI) routeErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var invalid *routemetrics.InvalidInputError
	var upstream *mapping.UpstreamError

	switch {
	case r.Context().Err() != nil:
		api.serverErrorResponse(w, r, r.Context().Err())
	case errors.Is(err, routing.ErrTrailNotFound):
		api.sendNotFoundText(w, r, "trail not found")
	case errors.Is(err, routing.ErrRouteNotFound):
		api.sendNotFoundText(w, r, "route not found")
	case errors.As(err, &invalid), errors.Is(err, routing.ErrElevation), errors.As(err, &upstream):
		api.badGatewayResponse(w, r, err)
	default:
		api.serverErrorResponse(w, r, err)
	}
}
