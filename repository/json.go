package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/NISHANTH0777/transport-backend/internal/network"
)

const (
	RouteTableFile    = "route_to_stops.json"
	StopIndexFile     = "stop_to_routes.json"
	RouteTransferFile = "route_transfers.json"
)

// ErrRouteFileMissing is returned when the data directory has no route table
var ErrRouteFileMissing = errors.New("route table file missing")

// JSONDataset loads the network from the JSON files of a data directory
type JSONDataset struct {
	dir string
}

// NewJSONDataset creates a JSONDataset reading from dir
func NewJSONDataset(dir string) *JSONDataset {
	return &JSONDataset{dir: dir}
}

// LoadRoutes reads route_to_stops.json, keeping the key order of the file
func (d *JSONDataset) LoadRoutes(ctx context.Context) ([]network.Route, error) {
	path := filepath.Join(d.dir, RouteTableFile)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRouteFileMissing, path)
		}
		return nil, fmt.Errorf("failed to open route table: %w", err)
	}
	defer f.Close()

	routes, err := ReadRouteTable(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return routes, ctx.Err()
}

// LoadStopIndex reads the optional pre-built stop_to_routes.json.
// Returns nil, nil when the file does not exist.
func (d *JSONDataset) LoadStopIndex(ctx context.Context) (map[string][]string, error) {
	var index map[string][]string
	found, err := d.readOptional(StopIndexFile, &index)
	if err != nil || !found {
		return nil, err
	}
	return index, ctx.Err()
}

// LoadTransfers reads the optional route_transfers.json metadata table.
// Returns nil, nil when the file does not exist.
func (d *JSONDataset) LoadTransfers(ctx context.Context) (map[string]json.RawMessage, error) {
	var transfers map[string]json.RawMessage
	found, err := d.readOptional(RouteTransferFile, &transfers)
	if err != nil || !found {
		return nil, err
	}
	return transfers, ctx.Err()
}

func (d *JSONDataset) readOptional(name string, v any) (bool, error) {
	path := filepath.Join(d.dir, name)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return true, nil
}

// ReadRouteTable decodes a JSON object of route id -> stop list. Unlike
// decoding into a map, the routes come back in the order they appear.
func ReadRouteTable(r io.Reader) ([]network.Route, error) {
	dec := json.NewDecoder(r)

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var routes []network.Route
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to read route id: %w", err)
		}
		id, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v where route id expected", tok)
		}

		var stops []string
		if err := dec.Decode(&stops); err != nil {
			return nil, fmt.Errorf("route %q: %w", id, err)
		}
		routes = append(routes, network.Route{ID: id, Stops: stops})
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if tok, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, fmt.Errorf("trailing data after route table: %w", err)
		}
		return nil, fmt.Errorf("trailing data after route table: %v", tok)
	}
	return routes, nil
}

// WriteRouteTable encodes routes as a JSON object in slice order
func WriteRouteTable(w io.Writer, routes []network.Route) error {
	if _, err := io.WriteString(w, "{\n"); err != nil {
		return err
	}
	for i, r := range routes {
		key, err := json.Marshal(r.ID)
		if err != nil {
			return err
		}
		stops, err := json.Marshal(r.Stops)
		if err != nil {
			return err
		}
		sep := ","
		if i == len(routes)-1 {
			sep = ""
		}
		if _, err := fmt.Fprintf(w, "  %s: %s%s\n", key, stops, sep); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "}\n")
	return err
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read route table: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q in route table, got %v", want, tok)
	}
	return nil
}
