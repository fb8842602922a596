package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// CandidateType discriminates the variant carried by a Candidate
type CandidateType string

const (
	TypeDirect        CandidateType = "direct"
	TypeOneTransfer   CandidateType = "1-transfer"
	TypeMultiTransfer CandidateType = "multi_transfer"
	TypeConnected     CandidateType = "transfer"
)

// Category is the finder that produced a candidate, as reported by the aggregated search
type Category string

const (
	CategoryDirect   Category = "direct"
	CategoryTransfer Category = "transfer"
	CategoryBFS      Category = "bfs"
)

// Segment is a contiguous run of stops ridden on one bus
type Segment struct {
	BusNumber string `json:"bus_number"`
	From      string `json:"from"`
	To        string `json:"to"`
}

// Candidate is one route option for a rider.
// Common fields are always set; the variant fields depend on Type:
//   - direct: BusNumber
//   - 1-transfer: Routes, TransferAt, From, To
//   - multi_transfer: Path and Segments, with Stops left empty
//   - transfer (alternate connected policy): Bus1, Bus2, TransferStop, Stops1, Stops2
type Candidate struct {
	Type       CandidateType `json:"type"`
	Category   Category      `json:"category,omitempty"`
	Stops      []string      `json:"stops,omitempty"`
	StopCount  int           `json:"stop_count"`
	TotalStops int           `json:"total_stops,omitempty"`
	Fare       int           `json:"fare"`
	IsShortest bool          `json:"is_shortest"`

	// Direct
	BusNumber string `json:"bus_number,omitempty"`

	// One transfer
	Routes     []string `json:"routes,omitempty"`
	TransferAt string   `json:"transfer_at,omitempty"`
	From       string   `json:"from,omitempty"`
	To         string   `json:"to,omitempty"`

	// Multi transfer (BFS)
	Path     []string  `json:"path,omitempty"`
	Segments []Segment `json:"segments,omitempty"`

	// Connected (alternate one-transfer policy)
	Bus1         string   `json:"bus_1,omitempty"`
	Bus2         string   `json:"bus_2,omitempty"`
	TransferStop string   `json:"transfer_stop,omitempty"`
	Stops1       []string `json:"stops_1,omitempty"`
	Stops2       []string `json:"stops_2,omitempty"`
}

// SearchResult is the ranked output of a route search.
// ShortestRoute is nil when no candidate exists.
type SearchResult struct {
	Routes        []Candidate `json:"routes"`
	ShortestRoute *Candidate  `json:"shortest_route"`
}

// SearchResponse is the JSON response for GET /search-route
type SearchResponse struct {
	QueryID uuid.UUID `json:"queryId"`
	SearchResult
}

// ConnectedResponse is the JSON response for GET /search-route/connected
type ConnectedResponse struct {
	QueryID uuid.UUID   `json:"queryId"`
	Routes  []Candidate `json:"routes"`
	Count   int         `json:"count"`
}

// RouteSummary is one entry of GET /api/routes
type RouteSummary struct {
	RouteID   string `json:"routeId"`
	StopCount int    `json:"stopCount"`
	FirstStop string `json:"firstStop"`
	LastStop  string `json:"lastStop"`
}

// RouteDetail is the JSON response for GET /api/routes/{routeId}
type RouteDetail struct {
	RouteID   string          `json:"routeId"`
	Stops     []string        `json:"stops"`
	StopCount int             `json:"stopCount"`
	Transfers json.RawMessage `json:"transfers,omitempty"`
}
