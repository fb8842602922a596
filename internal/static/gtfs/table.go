package gtfs

import (
	"errors"
	"log/slog"
	"sort"

	"github.com/NISHANTH0777/transport-backend/internal/network"
)

// ErrNoRoutes is returned when no route in the feed has a usable trip
var ErrNoRoutes = errors.New("no routes with trips in gtfs feed")

// RouteTable derives one stop sequence per route from the feed. Each route
// is represented by its longest direction-0 trip, or its longest trip when
// it has no direction-0 trips; the opposite direction is left to the
// finders, which ride routes backwards positionally. Routes are keyed by
// short name, falling back to route_id, and listed in routes.txt order.
// When routeTypes is non-empty only those route types are kept.
func RouteTable(data *Data, routeTypes ...int) ([]network.Route, error) {
	keep := make(map[int]bool, len(routeTypes))
	for _, t := range routeTypes {
		keep[t] = true
	}

	stopNames := make(map[string]string, len(data.Stops))
	for _, s := range data.Stops {
		name := s.StopName
		if name == "" {
			name = s.StopID
		}
		stopNames[s.StopID] = name
	}

	tripStops := make(map[string][]StopTime)
	for _, st := range data.StopTimes {
		tripStops[st.TripID] = append(tripStops[st.TripID], st)
	}

	best := make(map[string]Trip)
	for _, trip := range data.Trips {
		cur, ok := best[trip.RouteID]
		if !ok || betterTrip(trip, cur, tripStops) {
			best[trip.RouteID] = trip
		}
	}

	var routes []network.Route
	used := make(map[string]bool)
	for _, r := range data.Routes {
		if len(keep) > 0 && !keep[r.RouteType] {
			continue
		}
		trip, ok := best[r.RouteID]
		if !ok || len(tripStops[trip.TripID]) == 0 {
			slog.Warn("route has no stop times, skipping", "route_id", r.RouteID)
			continue
		}

		times := append([]StopTime(nil), tripStops[trip.TripID]...)
		sort.SliceStable(times, func(i, j int) bool {
			return times[i].StopSequence < times[j].StopSequence
		})
		stops := make([]string, 0, len(times))
		for _, st := range times {
			name, ok := stopNames[st.StopID]
			if !ok {
				name = st.StopID
			}
			stops = append(stops, name)
		}

		key := r.RouteShortName
		if key == "" || used[key] {
			key = r.RouteID
		}
		if used[key] {
			slog.Warn("duplicate route id, skipping", "route_id", r.RouteID)
			continue
		}
		used[key] = true

		routes = append(routes, network.Route{ID: key, Stops: stops})
	}

	if len(routes) == 0 {
		return nil, ErrNoRoutes
	}
	return routes, nil
}

func betterTrip(candidate, current Trip, tripStops map[string][]StopTime) bool {
	if (candidate.DirectionID == 0) != (current.DirectionID == 0) {
		return candidate.DirectionID == 0
	}
	return len(tripStops[candidate.TripID]) > len(tripStops[current.TripID])
}
