package restapi

import (
	"net/http"
	"time"

	"github.com/Happy-Hiker-Co/HappyHiker/internal/models"
)

func (api *RestAPI) currentTimeHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewEntryResponse(models.NewCurrentTime(time.Now())))
}
