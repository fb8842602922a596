package routing

// Path is a stop sequence together with the route used for each hop, so
// len(Routes) == len(Stops)-1.
type Path struct {
	Stops  []string
	Routes []string
}

type queueEntry struct {
	stop   string
	route  string
	parent *queueEntry
}

// FindMultiTransfer runs a breadth-first search over the stop adjacency
// graph and returns the first path that reaches dst, which has the fewest
// hops. It does not minimise fare or route changes. Stops are marked
// visited when dequeued, so the same stop may be queued more than once;
// among equal-length paths the one whose edges come first in dataset order
// wins. ok is false when dst is unreachable.
func (e *Engine) FindMultiTransfer(src, dst string) (path Path, ok bool) {
	queue := []*queueEntry{{stop: src}}
	visited := make(map[string]struct{})

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		if cur.stop == dst {
			return cur.path(), true
		}
		if _, seen := visited[cur.stop]; seen {
			continue
		}
		visited[cur.stop] = struct{}{}

		for _, edge := range e.graph.Edges(cur.stop) {
			queue = append(queue, &queueEntry{stop: edge.Next, route: edge.Route, parent: cur})
		}
	}

	return Path{}, false
}

func (q *queueEntry) path() Path {
	depth := 0
	for n := q; n.parent != nil; n = n.parent {
		depth++
	}

	p := Path{
		Stops:  make([]string, depth+1),
		Routes: make([]string, depth),
	}
	for n, i := q, depth; n != nil; n, i = n.parent, i-1 {
		p.Stops[i] = n.stop
		if n.parent != nil {
			p.Routes[i-1] = n.route
		}
	}
	return p
}
