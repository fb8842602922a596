package routing

import (
	"sort"

	"github.com/NISHANTH0777/transport-backend/models"
)

// FindDirect returns every single-route ride between src and dst, sorted by
// stop count. A route that serves both stops is ridden forward or backward
// depending on their positions; routes where both resolve to the same
// position are skipped.
func (e *Engine) FindDirect(src, dst string) []models.Candidate {
	dstRoutes := make(map[string]struct{})
	for _, r := range e.graph.RoutesServing(dst) {
		dstRoutes[r] = struct{}{}
	}

	var results []models.Candidate
	for _, route := range e.graph.RoutesServing(src) {
		if _, ok := dstRoutes[route]; !ok {
			continue
		}
		stops, _ := e.graph.RouteStops(route)
		i, okSrc := e.graph.IndexOf(route, src)
		j, okDst := e.graph.IndexOf(route, dst)
		if !okSrc || !okDst || i == j {
			continue
		}

		path := segment(stops, i, j)
		results = append(results, models.Candidate{
			Type:      models.TypeDirect,
			BusNumber: route,
			Stops:     path,
			StopCount: len(path),
			Fare:      Fare(len(path)),
		})
	}

	sortByStopCount(results)
	return results
}

func sortByStopCount(c []models.Candidate) {
	sort.SliceStable(c, func(a, b int) bool {
		return c[a].StopCount < c[b].StopCount
	})
}
