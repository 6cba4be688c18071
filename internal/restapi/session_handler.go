package restapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Happy-Hiker-Co/HappyHiker/internal/models"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/session"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/utils"
)

func (api *RestAPI) startSessionHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 16*1024)).Decode(&body); err != nil {
		api.badRequestResponse(w, r, "request body must be a JSON object with a token string")
		return
	}

	id, err := api.Sessions.Start(r.Context(), body.Token)
	if errors.Is(err, session.ErrEmptyToken) {
		api.validationErrorResponse(w, r, map[string][]string{"token": {err.Error()}})
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewResponse(http.StatusCreated,
		map[string]interface{}{"entry": models.SessionEntry{ID: id, Authenticated: true}},
		"Created"))
}

func (api *RestAPI) sessionHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")

	ok, err := api.Sessions.IsAuthenticated(r.Context(), id)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.SessionEntry{ID: id, Authenticated: ok}))
}

func (api *RestAPI) endSessionHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")

	err := api.Sessions.End(r.Context(), id)
	if errors.Is(err, session.ErrMalformedID) {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.SessionEntry{ID: id, Authenticated: false}))
}
