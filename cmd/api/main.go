package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NISHANTH0777/transport-backend/handlers"
	"github.com/NISHANTH0777/transport-backend/internal/config"
	"github.com/NISHANTH0777/transport-backend/internal/logging"
	"github.com/NISHANTH0777/transport-backend/internal/network"
	"github.com/NISHANTH0777/transport-backend/internal/routing"
	"github.com/NISHANTH0777/transport-backend/internal/server"
	"github.com/NISHANTH0777/transport-backend/internal/stations"
	"github.com/NISHANTH0777/transport-backend/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	loadCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
	g, err := loadGraph(loadCtx, logger, cfg.Dataset)
	cancel()
	if err != nil {
		logger.Error("failed to build route network", "source", cfg.Dataset.Source, "error", err)
		os.Exit(1)
	}

	stats := g.Stats()
	logger.Info("route network loaded",
		"source", cfg.Dataset.Source,
		"routes", stats.Routes,
		"stops", stats.Stops,
		"edges", stats.Edges,
	)

	engine := routing.NewEngine(g)
	stationIndex := stations.NewIndex(g.Stations(), stations.Options{
		Limit:     cfg.Stations.SearchLimit,
		CacheSize: cfg.Stations.CacheSize,
		CacheTTL:  cfg.Stations.CacheTTL,
	})

	router := handlers.NewRouter(handlers.RouterConfig{
		Logger:         logger,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		StaticDir:      cfg.HTTP.StaticDir,
		Routes:         handlers.NewRouteHandler(engine, g, logger),
		Stations:       handlers.NewStationHandler(stationIndex),
		Health:         handlers.NewHealthHandler(g, stationIndex),
	})

	srv := server.New(logger, cfg.HTTP, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			logger.Error("server stopped unexpectedly", "error", err)
			os.Exit(1)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

// loadGraph reads the route table from the configured source and builds the
// network. Only the JSON source carries a stop index and transfer metadata.
func loadGraph(ctx context.Context, logger *slog.Logger, cfg config.DatasetConfig) (*network.Graph, error) {
	switch cfg.Source {
	case "json":
		return loadJSONGraph(ctx, logger, cfg)

	case "sqlite":
		ds, err := repository.NewSQLiteDataset(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		defer ds.Close()

		routes, err := ds.LoadRoutes(ctx)
		if err != nil {
			return nil, err
		}
		return network.New(routes)

	case "postgres":
		ds, err := repository.NewPostgresDataset(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		defer ds.Close()

		routes, err := ds.LoadRoutes(ctx)
		if err != nil {
			return nil, err
		}
		return network.New(routes)
	}

	return nil, fmt.Errorf("unknown dataset source %q", cfg.Source)
}

func loadJSONGraph(ctx context.Context, logger *slog.Logger, cfg config.DatasetConfig) (*network.Graph, error) {
	ds := repository.NewJSONDataset(cfg.DataDir)

	routes, err := ds.LoadRoutes(ctx)
	if err != nil {
		return nil, err
	}

	transfers, err := ds.LoadTransfers(ctx)
	if err != nil {
		return nil, err
	}

	g, err := network.New(routes, network.WithTransferMetadata(transfers))
	if err != nil {
		return nil, err
	}

	stopIndex, err := ds.LoadStopIndex(ctx)
	if err != nil {
		return nil, err
	}
	if stopIndex == nil {
		return g, nil
	}

	if err := g.VerifyStopIndex(stopIndex); err != nil {
		if cfg.VerifyStopIndex {
			return nil, err
		}
		// the derived index is authoritative either way
		logger.Warn("stop index disagrees with route table", "error", err)
	}
	return g, nil
}
