// Package gtfs reads the parts of a GTFS static feed needed to derive a
// bus route table: routes, stops, trips and stop times.
package gtfs

// RouteTypeBus is the GTFS route_type for buses
const RouteTypeBus = 3

// Data represents the parsed GTFS tables
type Data struct {
	Routes    []Route
	Stops     []Stop
	Trips     []Trip
	StopTimes []StopTime
}

// Route represents a route from routes.txt
type Route struct {
	RouteID        string
	AgencyID       string
	RouteShortName string
	RouteLongName  string
	RouteType      int
}

// Stop represents a stop from stops.txt
type Stop struct {
	StopID   string
	StopName string
}

// Trip represents a trip from trips.txt
type Trip struct {
	RouteID     string
	TripID      string
	DirectionID int
}

// StopTime represents a stop time from stop_times.txt
type StopTime struct {
	TripID       string
	StopID       string
	StopSequence int
}
