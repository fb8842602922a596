package routing

import (
	"github.com/NISHANTH0777/transport-backend/models"
)

// FindOneTransfer returns rides that board a route serving src, change at a
// stop shared with a second route, and ride that route to dst. Both legs
// must run in the same orientation: forward then forward, or reverse then
// reverse. Every (route, route, transfer stop) triple that qualifies yields
// its own candidate. Results are sorted by stop count.
func (e *Engine) FindOneTransfer(src, dst string) []models.Candidate {
	var results []models.Candidate

	for _, r1 := range e.graph.RoutesServing(src) {
		stops1, _ := e.graph.RouteStops(r1)

		for _, r2 := range e.graph.RoutesServing(dst) {
			if r1 == r2 {
				continue
			}
			stops2, _ := e.graph.RouteStops(r2)

			for _, transfer := range e.sharedStops(r1, r2) {
				i1, ok1 := e.graph.IndexOf(r1, src)
				t1, ok2 := e.graph.IndexOf(r1, transfer)
				t2, ok3 := e.graph.IndexOf(r2, transfer)
				j2, ok4 := e.graph.IndexOf(r2, dst)
				if !ok1 || !ok2 || !ok3 || !ok4 {
					continue
				}

				forward := i1 < t1 && t2 < j2
				reverse := i1 > t1 && t2 > j2
				if !forward && !reverse {
					continue
				}

				path := append(segment(stops1, i1, t1), segment(stops2, t2, j2)[1:]...)
				results = append(results, models.Candidate{
					Type:       models.TypeOneTransfer,
					Routes:     []string{r1, r2},
					TransferAt: transfer,
					From:       src,
					To:         dst,
					Stops:      path,
					StopCount:  len(path),
					Fare:       Fare(len(path)),
				})
			}
		}
	}

	sortByStopCount(results)
	return results
}

// sharedStops lists the stops common to both routes, in r1 order, each once.
func (e *Engine) sharedStops(r1, r2 string) []string {
	stops1, _ := e.graph.RouteStops(r1)
	var shared []string
	seen := make(map[string]struct{})
	for _, stop := range stops1 {
		if _, dup := seen[stop]; dup {
			continue
		}
		seen[stop] = struct{}{}
		if _, ok := e.graph.IndexOf(r2, stop); ok {
			shared = append(shared, stop)
		}
	}
	return shared
}
