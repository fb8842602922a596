package handlers

import (
	"net/http"
	"time"

	"github.com/NISHANTH0777/transport-backend/internal/network"
	"github.com/NISHANTH0777/transport-backend/models"
)

// StatsProvider reports the size of the loaded network
type StatsProvider interface {
	Stats() network.Stats
}

// StationCounter reports how many station names are searchable
type StationCounter interface {
	Len() int
}

// HealthHandler handles HTTP requests for service health
type HealthHandler struct {
	stats    StatsProvider
	stations StationCounter
}

// NewHealthHandler creates a new handler. stations may be nil.
func NewHealthHandler(stats StatsProvider, stations StationCounter) *HealthHandler {
	return &HealthHandler{stats: stats, stations: stations}
}

// GetHealth handles GET /health
// The graph is built before the server starts listening, so an empty network
// means the dataset was unusable.
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	s := h.stats.Stats()

	resp := models.HealthResponse{
		Status:    "ok",
		Routes:    s.Routes,
		Stops:     s.Stops,
		Edges:     s.Edges,
		Timestamp: time.Now().UTC(),
	}
	if h.stations != nil {
		resp.Stations = h.stations.Len()
	}

	status := http.StatusOK
	if s.Routes == 0 {
		resp.Status = "error"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, "", resp)
}

// Healthz handles GET /healthz
func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
