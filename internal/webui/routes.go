package webui

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/Happy-Hiker-Co/HappyHiker/internal/app"
	"github.com/Happy-Hiker-Co/HappyHiker/internal/appconf"
)

// WebUI serves the developer debug pages.
type WebUI struct {
	*app.Application
}

// SetWebUIRoutes mounts /debug/ outside production. It reports whether the
// pages were mounted.
func (webUI *WebUI) SetWebUIRoutes(router *httprouter.Router) bool {
	if webUI.Config.Env == appconf.Production {
		return false
	}
	router.HandlerFunc(http.MethodGet, "/debug/", webUI.debugIndexHandler)
	return true
}
