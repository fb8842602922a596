package gtfs

import (
	"archive/zip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

var requiredFiles = []string{"routes.txt", "stops.txt", "trips.txt", "stop_times.txt"}

// Parse reads a GTFS zip file and returns the parsed tables
func Parse(zipPath string) (*Data, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}
	defer r.Close()

	files := make(map[string]*zip.File)
	for _, f := range r.File {
		files[f.Name] = f
	}
	for _, name := range requiredFiles {
		if _, ok := files[name]; !ok {
			return nil, fmt.Errorf("gtfs feed is missing %s", name)
		}
	}

	data := &Data{}

	err = readTable(files["routes.txt"], func(get func(string) string) {
		routeType, _ := strconv.Atoi(get("route_type"))
		data.Routes = append(data.Routes, Route{
			RouteID:        get("route_id"),
			AgencyID:       get("agency_id"),
			RouteShortName: get("route_short_name"),
			RouteLongName:  get("route_long_name"),
			RouteType:      routeType,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse routes.txt: %w", err)
	}

	err = readTable(files["stops.txt"], func(get func(string) string) {
		data.Stops = append(data.Stops, Stop{
			StopID:   get("stop_id"),
			StopName: get("stop_name"),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse stops.txt: %w", err)
	}

	err = readTable(files["trips.txt"], func(get func(string) string) {
		directionID, _ := strconv.Atoi(get("direction_id"))
		data.Trips = append(data.Trips, Trip{
			RouteID:     get("route_id"),
			TripID:      get("trip_id"),
			DirectionID: directionID,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse trips.txt: %w", err)
	}

	err = readTable(files["stop_times.txt"], func(get func(string) string) {
		seq, _ := strconv.Atoi(get("stop_sequence"))
		data.StopTimes = append(data.StopTimes, StopTime{
			TripID:       get("trip_id"),
			StopID:       get("stop_id"),
			StopSequence: seq,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse stop_times.txt: %w", err)
	}

	slog.Info("gtfs parsed",
		"routes", len(data.Routes),
		"stops", len(data.Stops),
		"trips", len(data.Trips),
		"stop_times", len(data.StopTimes),
	)

	return data, nil
}

// readTable streams a CSV file, calling row once per record with a field
// accessor keyed by header name. Malformed records are skipped.
func readTable(f *zip.File, row func(get func(string) string)) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	reader := csv.NewReader(rc)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return err
	}

	idx := makeIndex(header)
	skipped := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		row(func(field string) string {
			return getField(record, idx, field)
		})
	}

	if skipped > 0 {
		slog.Warn("skipped malformed gtfs records", "file", f.Name, "count", skipped)
	}
	return nil
}

func makeIndex(header []string) map[string]int {
	idx := make(map[string]int)
	for i, h := range header {
		// strip a UTF-8 BOM on the first column
		idx[strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")] = i
	}
	return idx
}

func getField(record []string, idx map[string]int, field string) string {
	if i, ok := idx[field]; ok && i < len(record) {
		return strings.TrimSpace(record[i])
	}
	return ""
}
