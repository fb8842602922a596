package routing

import (
	"sort"

	"github.com/NISHANTH0777/transport-backend/models"
)

// unrankedStops orders candidates without a stop total after everything else.
const unrankedStops = 999

// Search runs the direct, one-transfer and breadth-first finders and merges
// their candidates, in that category order, into one list stably sorted by
// total stops. Ties therefore go to direct, then transfer, then bfs. The
// first candidate is flagged as the shortest. A search from a stop to
// itself, or one with no candidates, returns an empty list and a nil
// ShortestRoute.
func (e *Engine) Search(src, dst string) models.SearchResult {
	all := []models.Candidate{}
	if src == dst {
		return models.SearchResult{Routes: all}
	}

	for _, c := range e.FindDirect(src, dst) {
		c.Category = models.CategoryDirect
		c.TotalStops = c.StopCount
		all = append(all, c)
	}

	for _, c := range e.FindOneTransfer(src, dst) {
		c.Category = models.CategoryTransfer
		c.TotalStops = c.StopCount
		all = append(all, c)
	}

	if path, ok := e.FindMultiTransfer(src, dst); ok {
		n := len(path.Stops)
		all = append(all, models.Candidate{
			Type:       models.TypeMultiTransfer,
			Category:   models.CategoryBFS,
			Path:       path.Stops,
			Segments:   BuildSegments(path.Stops, path.Routes),
			StopCount:  n,
			TotalStops: n,
			Fare:       Fare(n),
		})
	}

	if len(all) == 0 {
		return models.SearchResult{Routes: all}
	}

	sort.SliceStable(all, func(a, b int) bool {
		return rankStops(all[a]) < rankStops(all[b])
	})
	for i := range all {
		all[i].IsShortest = i == 0
	}

	shortest := all[0]
	return models.SearchResult{Routes: all, ShortestRoute: &shortest}
}

func rankStops(c models.Candidate) int {
	if c.TotalStops <= 0 {
		return unrankedStops
	}
	return c.TotalStops
}
