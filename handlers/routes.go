package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/NISHANTH0777/transport-backend/models"
)

// RouteFinder runs route searches between two stops
type RouteFinder interface {
	Search(src, dst string) models.SearchResult
	FindConnected(src, dst string) []models.Candidate
}

// RouteCatalog exposes the routes of the loaded network
type RouteCatalog interface {
	Routes() []string
	RouteStops(route string) ([]string, bool)
	TransferMetadata(route string) (json.RawMessage, bool)
}

// RouteHandler handles HTTP requests for route searches and route listings
type RouteHandler struct {
	finder   RouteFinder
	catalog  RouteCatalog
	logger   *slog.Logger
	validate *validator.Validate
}

// NewRouteHandler creates a new handler over the given finder and catalog
func NewRouteHandler(finder RouteFinder, catalog RouteCatalog, logger *slog.Logger) *RouteHandler {
	return &RouteHandler{
		finder:   finder,
		catalog:  catalog,
		logger:   logger,
		validate: validator.New(),
	}
}

type searchQuery struct {
	Source      string `validate:"required"`
	Destination string `validate:"required"`
}

// parseSearchQuery reads source and destination, writing a 400 response
// and returning false when either is missing or blank. Values are returned
// as sent, since stop names are matched exactly.
func (h *RouteHandler) parseSearchQuery(w http.ResponseWriter, r *http.Request) (searchQuery, bool) {
	q := searchQuery{
		Source:      r.URL.Query().Get("source"),
		Destination: r.URL.Query().Get("destination"),
	}

	blank := searchQuery{
		Source:      strings.TrimSpace(q.Source),
		Destination: strings.TrimSpace(q.Destination),
	}
	if err := h.validate.Struct(blank); err != nil {
		var missing []string
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				missing = append(missing, strings.ToLower(fe.Field()))
			}
		}
		writeError(w, http.StatusBadRequest, "source and destination parameters are required", map[string]interface{}{
			"missing": missing,
		})
		return q, false
	}
	return q, true
}

// SearchRoutes handles GET /search-route
// Returns every direct, one-transfer and multi-transfer candidate ranked by
// total stops, plus the shortest one (null when no path exists)
func (h *RouteHandler) SearchRoutes(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseSearchQuery(w, r)
	if !ok {
		return
	}

	queryID := uuid.New()
	result := h.finder.Search(q.Source, q.Destination)

	h.logger.Info("route search",
		"query_id", queryID,
		"source", q.Source,
		"destination", q.Destination,
		"candidates", len(result.Routes),
		"found", result.ShortestRoute != nil,
	)

	writeJSON(w, http.StatusOK, cacheControlStatic, models.SearchResponse{
		QueryID:      queryID,
		SearchResult: result,
	})
}

// SearchConnectedRoutes handles GET /search-route/connected
// Returns one-transfer rides under the alternate policy that orients each
// leg toward its endpoint
func (h *RouteHandler) SearchConnectedRoutes(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseSearchQuery(w, r)
	if !ok {
		return
	}

	queryID := uuid.New()
	routes := h.finder.FindConnected(q.Source, q.Destination)
	if routes == nil {
		routes = []models.Candidate{}
	}

	h.logger.Info("connected route search",
		"query_id", queryID,
		"source", q.Source,
		"destination", q.Destination,
		"candidates", len(routes),
	)

	writeJSON(w, http.StatusOK, cacheControlStatic, models.ConnectedResponse{
		QueryID: queryID,
		Routes:  routes,
		Count:   len(routes),
	})
}

// ListRoutes handles GET /api/routes
func (h *RouteHandler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	ids := h.catalog.Routes()
	summaries := make([]models.RouteSummary, 0, len(ids))
	for _, id := range ids {
		stops, ok := h.catalog.RouteStops(id)
		if !ok || len(stops) == 0 {
			continue
		}
		summaries = append(summaries, models.RouteSummary{
			RouteID:   id,
			StopCount: len(stops),
			FirstStop: stops[0],
			LastStop:  stops[len(stops)-1],
		})
	}

	writeJSON(w, http.StatusOK, cacheControlStatic, summaries)
}

// GetRoute handles GET /api/routes/{routeId}
func (h *RouteHandler) GetRoute(w http.ResponseWriter, r *http.Request) {
	routeID := chi.URLParam(r, "routeId")
	if routeID == "" {
		writeError(w, http.StatusBadRequest, "routeId parameter is required", nil)
		return
	}

	stops, ok := h.catalog.RouteStops(routeID)
	if !ok {
		writeError(w, http.StatusNotFound, "Route not found", map[string]interface{}{
			"routeId": routeID,
		})
		return
	}

	detail := models.RouteDetail{
		RouteID:   routeID,
		Stops:     stops,
		StopCount: len(stops),
	}
	if meta, ok := h.catalog.TransferMetadata(routeID); ok {
		detail.Transfers = meta
	}

	writeJSON(w, http.StatusOK, cacheControlStatic, detail)
}
