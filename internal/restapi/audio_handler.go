package restapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Happy-Hiker-Co/HappyHiker/internal/audio"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/models"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/settings"
)

const defaultPromptInterval = "1m"

func (api *RestAPI) audioPromptHandler(w http.ResponseWriter, r *http.Request) {
	interval := r.URL.Query().Get("interval")
	if interval == "" {
		interval = defaultPromptInterval
	}
	every, err := audio.ParseInterval(interval)
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"interval": {err.Error()}})
		return
	}

	prompt, err := api.Audio.Next()
	if errors.Is(err, audio.ErrEmptyCatalog) {
		api.sendNotFoundText(w, r, "no audio prompts available")
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	volume, err := api.Settings.Volume(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.AudioPromptEntry{
		URL:        prompt.URL,
		Interval:   interval,
		IntervalMs: every.Milliseconds(),
		Volume:     volume,
	}))
}

func (api *RestAPI) volumeHandler(w http.ResponseWriter, r *http.Request) {
	volume, err := api.Settings.Volume(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(models.VolumeEntry{Volume: volume}))
}

func (api *RestAPI) updateVolumeHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Volume *int `json:"volume"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1024)).Decode(&body); err != nil || body.Volume == nil {
		api.validationErrorResponse(w, r, map[string][]string{"volume": {"volume is required"}})
		return
	}

	err := api.Settings.SetVolume(r.Context(), *body.Volume)
	if errors.Is(err, settings.ErrVolumeOutOfRange) {
		api.validationErrorResponse(w, r, map[string][]string{"volume": {err.Error()}})
		return
	}
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.VolumeEntry{Volume: *body.Volume}))
}
