package models

import "time"

// HealthResponse is the JSON response for GET /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Routes    int       `json:"routes"`
	Stops     int       `json:"stops"`
	Edges     int       `json:"edges"`
	Stations  int       `json:"stations"`
	Timestamp time.Time `json:"timestamp"`
}
