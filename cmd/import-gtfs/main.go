package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/NISHANTH0777/transport-backend/internal/config"
	"github.com/NISHANTH0777/transport-backend/internal/logging"
	"github.com/NISHANTH0777/transport-backend/internal/network"
	"github.com/NISHANTH0777/transport-backend/internal/static/gtfs"
	"github.com/NISHANTH0777/transport-backend/repository"
)

var errNoOutput = errors.New("no output selected: pass -db, -out or -database-url")

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	var (
		gtfsPath    = flag.String("gtfs", "", "Path to a GTFS static zip")
		dbPath      = flag.String("db", cfg.Dataset.SQLitePath, "SQLite database to write the route table into (empty to skip)")
		outDir      = flag.String("out", "", "Directory to write "+repository.RouteTableFile+" into (empty to skip)")
		databaseURL = flag.String("database-url", "", "PostgreSQL URL to write the route table into (empty to skip)")
		routeType   = flag.Int("route-type", gtfs.RouteTypeBus, "GTFS route_type to import, negative for all")
	)
	flag.Parse()

	logger := logging.New(cfg.Logging).With("component", "import-gtfs")

	if *gtfsPath == "" {
		logger.Error("missing -gtfs flag")
		flag.Usage()
		os.Exit(2)
	}
	if *dbPath == "" && *outDir == "" && *databaseURL == "" {
		logger.Error("nothing to do", "error", errNoOutput)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	routes, err := buildRouteTable(logger, *gtfsPath, *routeType)
	if err != nil {
		logger.Error("failed to build route table", "path", *gtfsPath, "error", err)
		os.Exit(1)
	}

	if *dbPath != "" {
		if err := writeSQLite(ctx, *dbPath, routes); err != nil {
			logger.Error("sqlite import failed", "path", *dbPath, "error", err)
			os.Exit(1)
		}
		logger.Info("route table written to sqlite", "path", *dbPath, "routes", len(routes))
	}

	if *databaseURL != "" {
		if err := writePostgres(ctx, *databaseURL, routes); err != nil {
			logger.Error("postgres import failed", "error", err)
			os.Exit(1)
		}
		logger.Info("route table written to postgres", "routes", len(routes))
	}

	if *outDir != "" {
		path, err := writeJSON(*outDir, routes)
		if err != nil {
			logger.Error("json export failed", "dir", *outDir, "error", err)
			os.Exit(1)
		}
		logger.Info("route table written to json", "path", path, "routes", len(routes))
	}

	logger.Info("import complete")
}

// buildRouteTable parses the feed and checks that the result forms a
// usable network before anything is written.
func buildRouteTable(logger *slog.Logger, zipPath string, routeType int) ([]network.Route, error) {
	data, err := gtfs.Parse(zipPath)
	if err != nil {
		return nil, err
	}

	var routes []network.Route
	if routeType < 0 {
		routes, err = gtfs.RouteTable(data)
	} else {
		routes, err = gtfs.RouteTable(data, routeType)
	}
	if err != nil {
		return nil, err
	}

	g, err := network.New(routes)
	if err != nil {
		return nil, err
	}
	stats := g.Stats()
	logger.Info("route table built",
		"routes", stats.Routes,
		"stops", stats.Stops,
		"edges", stats.Edges,
	)
	return routes, nil
}

func writeSQLite(ctx context.Context, dbPath string, routes []network.Route) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return err
	}

	ds, err := repository.NewSQLiteDataset(dbPath)
	if err != nil {
		return err
	}
	defer ds.Close()

	if err := ds.EnsureSchema(ctx); err != nil {
		return err
	}
	return ds.ReplaceRoutes(ctx, routes)
}

func writePostgres(ctx context.Context, databaseURL string, routes []network.Route) error {
	ds, err := repository.NewPostgresDataset(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer ds.Close()

	if err := ds.EnsureSchema(ctx); err != nil {
		return err
	}
	return ds.ReplaceRoutes(ctx, routes)
}

func writeJSON(dir string, routes []network.Route) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, repository.RouteTableFile)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := repository.WriteRouteTable(f, routes); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}
