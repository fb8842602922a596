package handlers

import (
	"net/http"
	"strings"
)

// StationSearcher answers station-name autocomplete queries
type StationSearcher interface {
	Search(q string) []string
}

// StationHandler handles HTTP requests for station lookups
type StationHandler struct {
	stations StationSearcher
}

// NewStationHandler creates a new handler with the given searcher
func NewStationHandler(stations StationSearcher) *StationHandler {
	return &StationHandler{stations: stations}
}

// SearchStations handles GET /stations/search?q=
// Returns a JSON array of matching station names
func (h *StationHandler) SearchStations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if strings.TrimSpace(q) == "" {
		writeError(w, http.StatusBadRequest, "q parameter is required", nil)
		return
	}

	writeJSON(w, http.StatusOK, cacheControlStatic, h.stations.Search(q))
}
