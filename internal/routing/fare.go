package routing

const (
	minimumFare   = 10
	farePerBlock  = 5
	stopsPerBlock = 3
)

// Fare returns the ticket price for a ride covering stopCount stops:
// 5 per full block of 3 stops, never less than 10.
func Fare(stopCount int) int {
	return max(minimumFare, (stopCount/stopsPerBlock)*farePerBlock)
}
