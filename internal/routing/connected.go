package routing

import (
	"github.com/NISHANTH0777/transport-backend/models"
)

// FindConnected is an alternate one-transfer policy. Each leg is oriented
// toward its endpoint by reversal when needed, so rides mixing a forward
// leg with a reverse leg are kept. Search does not use it.
func (e *Engine) FindConnected(src, dst string) []models.Candidate {
	var results []models.Candidate

	for _, bus1 := range e.graph.RoutesServing(src) {
		stops1, _ := e.graph.RouteStops(bus1)
		i1, ok := e.graph.IndexOf(bus1, src)
		if !ok {
			continue
		}

		for _, bus2 := range e.graph.RoutesServing(dst) {
			if bus1 == bus2 {
				continue
			}
			stops2, _ := e.graph.RouteStops(bus2)
			i2, ok := e.graph.IndexOf(bus2, dst)
			if !ok {
				continue
			}

			for _, transfer := range e.sharedStops(bus1, bus2) {
				t1, _ := e.graph.IndexOf(bus1, transfer)
				t2, _ := e.graph.IndexOf(bus2, transfer)

				seg1 := segment(stops1, i1, t1)
				seg2 := segment(stops2, t2, i2)
				total := len(seg1) + len(seg2) - 1

				results = append(results, models.Candidate{
					Type:         models.TypeConnected,
					Bus1:         bus1,
					Bus2:         bus2,
					TransferStop: transfer,
					Stops1:       seg1,
					Stops2:       seg2,
					StopCount:    total,
					Fare:         Fare(total),
				})
			}
		}
	}

	sortByStopCount(results)
	return results
}
