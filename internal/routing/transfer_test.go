package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NISHANTH0777/transport-backend/models"
)

func TestFindOneTransferTwoRoutes(t *testing.T) {
	e := twoRouteNetwork(t)

	got := e.FindOneTransfer("S1", "S5")
	require.Len(t, got, 1)

	c := got[0]
	assert.Equal(t, models.TypeOneTransfer, c.Type)
	assert.Equal(t, []string{"A", "B"}, c.Routes)
	assert.Equal(t, "S3", c.TransferAt)
	assert.Equal(t, "S1", c.From)
	assert.Equal(t, "S5", c.To)
	assert.Equal(t, []string{"S1", "S2", "S3", "S5"}, c.Stops)
	assert.Equal(t, 4, c.StopCount)
	assert.Equal(t, 10, c.Fare)
}

func TestFindOneTransferReverseReverse(t *testing.T) {
	e := twoRouteNetwork(t)

	got := e.FindOneTransfer("S5", "S1")
	require.Len(t, got, 1)
	assert.Equal(t, []string{"B", "A"}, got[0].Routes)
	assert.Equal(t, []string{"S5", "S3", "S2", "S1"}, got[0].Stops)
	assert.Equal(t, 4, got[0].StopCount)
}

func TestFindOneTransferRejectsMixedDirections(t *testing.T) {
	e := newTestEngine(t,
		route("A", "S1", "S2", "S3"),
		route("B", "S5", "S3", "S4"),
	)

	// forward on A, then backward on B
	assert.Empty(t, e.FindOneTransfer("S1", "S5"))
}

func TestFindOneTransferKeepsEveryTransferStop(t *testing.T) {
	e := newTestEngine(t,
		route("A", "S1", "X", "Y", "S9"),
		route("B", "X", "Y", "D"),
	)

	got := e.FindOneTransfer("S1", "D")
	require.Len(t, got, 2)
	assert.Equal(t, "X", got[0].TransferAt)
	assert.Equal(t, "Y", got[1].TransferAt)
	for _, c := range got {
		assert.Equal(t, []string{"S1", "X", "Y", "D"}, c.Stops)
	}
}

func TestFindOneTransferSkipsDegenerateLegs(t *testing.T) {
	e := newTestEngine(t,
		route("A", "S1", "S2", "S3"),
		route("B", "S1", "S4"),
	)

	// backward on A to S1, then forward on B
	assert.Empty(t, e.FindOneTransfer("S3", "S4"))
	// boarding B at S1 and changing at S1 is no ride
	assert.Empty(t, e.FindOneTransfer("S1", "S3"))
}

func TestFindOneTransferSortsByStopCount(t *testing.T) {
	e := newTestEngine(t,
		route("A", "S", "a1", "a2", "a3", "T1"),
		route("B", "S", "T2"),
		route("C", "T1", "D"),
		route("E", "T2", "e1", "D"),
	)

	got := e.FindOneTransfer("S", "D")
	require.Len(t, got, 2)
	assert.Equal(t, []string{"B", "E"}, got[0].Routes)
	assert.Equal(t, 4, got[0].StopCount)
	assert.Equal(t, []string{"A", "C"}, got[1].Routes)
	assert.Equal(t, 6, got[1].StopCount)
}

func TestFindConnectedAcceptsMixedDirections(t *testing.T) {
	e := newTestEngine(t,
		route("A", "S1", "S2", "S3"),
		route("B", "S5", "S3", "S4"),
	)

	got := e.FindConnected("S1", "S5")
	require.Len(t, got, 1)

	c := got[0]
	assert.Equal(t, models.TypeConnected, c.Type)
	assert.Equal(t, "A", c.Bus1)
	assert.Equal(t, "B", c.Bus2)
	assert.Equal(t, "S3", c.TransferStop)
	assert.Equal(t, []string{"S1", "S2", "S3"}, c.Stops1)
	assert.Equal(t, []string{"S3", "S5"}, c.Stops2)
	assert.Equal(t, 4, c.StopCount)
	assert.Equal(t, 10, c.Fare)
}

func TestFindConnectedMatchesPrimaryOnConsistentDirections(t *testing.T) {
	e := twoRouteNetwork(t)

	primary := e.FindOneTransfer("S1", "S5")
	alt := e.FindConnected("S1", "S5")
	require.Len(t, primary, 1)
	require.Len(t, alt, 1)

	joined := append(append([]string(nil), alt[0].Stops1...), alt[0].Stops2[1:]...)
	assert.Equal(t, primary[0].Stops, joined)
	assert.Equal(t, primary[0].StopCount, alt[0].StopCount)
}
