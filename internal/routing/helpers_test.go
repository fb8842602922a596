package routing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NISHANTH0777/transport-backend/internal/network"
)

func newTestEngine(t *testing.T, routes ...network.Route) *Engine {
	t.Helper()
	g, err := network.New(routes)
	require.NoError(t, err)
	return NewEngine(g)
}

func route(id string, stops ...string) network.Route {
	return network.Route{ID: id, Stops: stops}
}

// twoRouteNetwork is the two-route network used throughout the tests:
// A = S1 S2 S3, B = S4 S3 S5.
func twoRouteNetwork(t *testing.T) *Engine {
	return newTestEngine(t,
		route("A", "S1", "S2", "S3"),
		route("B", "S4", "S3", "S5"),
	)
}
