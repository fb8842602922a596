package routing

import (
	"github.com/NISHANTH0777/transport-backend/models"
)

// BuildSegments groups consecutive hops ridden on the same route. routes[i]
// is the route used from stops[i] to stops[i+1]. A path without hops has no
// segments.
func BuildSegments(stops, routes []string) []models.Segment {
	if len(stops) < 2 || len(routes) == 0 {
		return nil
	}

	var segments []models.Segment
	start := stops[0]
	current := routes[0]

	for i := 1; i < len(routes) && i < len(stops)-1; i++ {
		if routes[i] == current {
			continue
		}
		segments = append(segments, models.Segment{BusNumber: current, From: start, To: stops[i]})
		start = stops[i]
		current = routes[i]
	}

	return append(segments, models.Segment{BusNumber: current, From: start, To: stops[len(stops)-1]})
}
