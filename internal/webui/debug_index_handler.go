package webui

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"github.com/Happy-Hiker-Co/HappyHiker/internal/logging"
)

//go:embed debug_index.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

// DataTypes are the accepted values of the dataType query parameter.
var DataTypes = []string{"trails", "stats", "table_counts", "stops", "agencies", "routes"}

type debugData struct {
	Title     string
	Pre       string
	DataTypes []string
}

var dumper = spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}

func (webUI *WebUI) writeDebugData(w http.ResponseWriter, r *http.Request, title string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	err := debugTemplate.Execute(w, debugData{
		Title:     title,
		Pre:       dumper.Sdump(data),
		DataTypes: DataTypes,
	})
	if err != nil {
		logging.LogError(webUI.Logger, "failed to render debug page", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string
	var err error

	switch dataType {
	case "trails":
		data, err = webUI.TrailDB.Queries.ListTrails(ctx)
		title = "Trail catalog"
	case "stats":
		if webUI.TrailManager != nil {
			data = webUI.TrailManager.Stats()
		}
		title = "Trail import statistics"
	case "table_counts":
		data, err = webUI.TrailDB.TableCounts(ctx)
		title = "Trail database - table counts"
	case "stops", "agencies", "routes":
		if webUI.Transit == nil {
			data = map[string]string{"error": "no GTFS source configured"}
			title = "Transit"
			break
		}
		static := webUI.Transit.Static()
		switch dataType {
		case "stops":
			data, title = static.Stops, "GTFS Static - Stops"
		case "agencies":
			data, title = static.Agencies, "GTFS Static - Agencies"
		default:
			data, title = static.Routes, "GTFS Static - Routes"
		}
	default:
		data = map[string]interface{}{
			"error":     "Please use one of the data types below.",
			"dataTypes": DataTypes,
		}
		title = "Choose a data type"
	}

	if err != nil {
		logging.LogError(webUI.Logger, "debug page query failed", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	webUI.writeDebugData(w, r, title, data)
}
