// Package network holds the immutable bus network graph that every route
// finder reads from. A Graph is built once from the route table and is safe
// for concurrent read-only use afterwards.
package network

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrMalformedDataset is returned by New when the route table cannot be
	// turned into a graph.
	ErrMalformedDataset = errors.New("malformed route dataset")

	// ErrStopIndexDrift is returned by VerifyStopIndex when a pre-built
	// stop index disagrees with the one derived from the route table.
	ErrStopIndexDrift = errors.New("stop index drift")
)

var validate = validator.New()

// Route is one bus route: its number and the ordered stops it serves.
// Stop order encodes the direction of travel.
type Route struct {
	ID    string   `json:"route_id" validate:"required"`
	Stops []string `json:"stops" validate:"min=1,dive,required"`
}

// Edge is a directed hop from one stop to the next on a route.
type Edge struct {
	Next  string
	Route string
}

// Stats summarizes graph size for health reporting.
type Stats struct {
	Routes int `json:"routes"`
	Stops  int `json:"stops"`
	Edges  int `json:"edges"`
}

// Graph is the route/stop network. All maps are filled by New and never
// written again.
type Graph struct {
	routeOrder []string
	routeStops map[string][]string
	stopRoutes map[string][]string
	adjacency  map[string][]Edge
	firstIndex map[string]map[string]int // route -> stop -> first position
	stations   []string
	edgeCount  int
	transfers  map[string]json.RawMessage
}

// Option configures optional graph data.
type Option func(*Graph)

// WithTransferMetadata attaches the per-route transfer metadata table. The
// finders never read it.
func WithTransferMetadata(meta map[string]json.RawMessage) Option {
	return func(g *Graph) {
		if len(meta) == 0 {
			return
		}
		g.transfers = make(map[string]json.RawMessage, len(meta))
		for k, v := range meta {
			g.transfers[k] = append(json.RawMessage(nil), v...)
		}
	}
}

// New builds a Graph from the route table. Routes are kept in the given
// order, which fixes iteration order for every finder.
func New(routes []Route, opts ...Option) (*Graph, error) {
	if len(routes) == 0 {
		return nil, fmt.Errorf("%w: no routes", ErrMalformedDataset)
	}

	g := &Graph{
		routeOrder: make([]string, 0, len(routes)),
		routeStops: make(map[string][]string, len(routes)),
		stopRoutes: make(map[string][]string),
		adjacency:  make(map[string][]Edge),
		firstIndex: make(map[string]map[string]int, len(routes)),
	}

	for n, r := range routes {
		if err := validate.Struct(r); err != nil {
			return nil, fmt.Errorf("%w: route #%d (%q): %v", ErrMalformedDataset, n, r.ID, err)
		}
		if _, dup := g.routeStops[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate route %q", ErrMalformedDataset, r.ID)
		}

		stops := append([]string(nil), r.Stops...)
		g.routeOrder = append(g.routeOrder, r.ID)
		g.routeStops[r.ID] = stops

		positions := make(map[string]int, len(stops))
		for i, stop := range stops {
			if _, seen := positions[stop]; seen {
				continue
			}
			positions[stop] = i
			g.stopRoutes[stop] = append(g.stopRoutes[stop], r.ID)
		}
		g.firstIndex[r.ID] = positions

		for i := 0; i+1 < len(stops); i++ {
			g.adjacency[stops[i]] = append(g.adjacency[stops[i]], Edge{Next: stops[i+1], Route: r.ID})
			g.edgeCount++
		}
	}

	g.stations = make([]string, 0, len(g.stopRoutes))
	for stop := range g.stopRoutes {
		g.stations = append(g.stations, stop)
	}
	sort.Strings(g.stations)

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// Routes returns route ids in dataset order.
func (g *Graph) Routes() []string {
	return g.routeOrder
}

// RouteStops returns the stop sequence of a route. The slice is shared and
// must not be modified.
func (g *Graph) RouteStops(route string) ([]string, bool) {
	stops, ok := g.routeStops[route]
	return stops, ok
}

// RoutesServing returns the routes whose sequence contains stop, in dataset
// order. Each route appears once.
func (g *Graph) RoutesServing(stop string) []string {
	return g.stopRoutes[stop]
}

// Edges returns the outgoing edges of stop in dataset order.
func (g *Graph) Edges(stop string) []Edge {
	return g.adjacency[stop]
}

// IndexOf returns the first position of stop within route.
func (g *Graph) IndexOf(route, stop string) (int, bool) {
	positions, ok := g.firstIndex[route]
	if !ok {
		return 0, false
	}
	i, ok := positions[stop]
	return i, ok
}

// HasStop reports whether any route serves stop.
func (g *Graph) HasStop(stop string) bool {
	_, ok := g.stopRoutes[stop]
	return ok
}

// Stations returns every stop name, sorted.
func (g *Graph) Stations() []string {
	return g.stations
}

// TransferMetadata returns the raw transfer metadata recorded for route.
func (g *Graph) TransferMetadata(route string) (json.RawMessage, bool) {
	meta, ok := g.transfers[route]
	return meta, ok
}

// Stats reports route, stop and edge counts.
func (g *Graph) Stats() Stats {
	return Stats{
		Routes: len(g.routeOrder),
		Stops:  len(g.stopRoutes),
		Edges:  g.edgeCount,
	}
}

// VerifyStopIndex compares a pre-built stop -> routes table with the index
// derived from the route table. Route order within a stop is ignored.
func (g *Graph) VerifyStopIndex(prebuilt map[string][]string) error {
	for stop, routes := range prebuilt {
		derived, ok := g.stopRoutes[stop]
		if !ok {
			return fmt.Errorf("%w: stop %q is not served by any route", ErrStopIndexDrift, stop)
		}
		if !sameRouteSet(routes, derived) {
			return fmt.Errorf("%w: stop %q lists routes %v, route table gives %v", ErrStopIndexDrift, stop, routes, derived)
		}
	}
	for stop := range g.stopRoutes {
		if _, ok := prebuilt[stop]; !ok {
			return fmt.Errorf("%w: stop %q missing from stop index", ErrStopIndexDrift, stop)
		}
	}
	return nil
}

func sameRouteSet(a, b []string) bool {
	set := make(map[string]struct{}, len(a))
	for _, r := range a {
		set[r] = struct{}{}
	}
	other := make(map[string]struct{}, len(b))
	for _, r := range b {
		if _, ok := set[r]; !ok {
			return false
		}
		other[r] = struct{}{}
	}
	return len(set) == len(other)
}
