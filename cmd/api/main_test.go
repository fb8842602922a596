package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NISHANTH0777/transport-backend/internal/config"
	"github.com/NISHANTH0777/transport-backend/internal/network"
	"github.com/NISHANTH0777/transport-backend/repository"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadGraphFromSampleData(t *testing.T) {
	g, err := loadGraph(context.Background(), discardLogger(), config.DatasetConfig{
		Source:          "json",
		DataDir:         filepath.Join("..", "..", "data"),
		VerifyStopIndex: true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"500D", "335E", "201R", "KBS-1"}, g.Routes())
	assert.Equal(t, 14, g.Stats().Stops)

	_, ok := g.TransferMetadata("201R")
	assert.True(t, ok)
}

func TestLoadGraphStopIndexDrift(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write(repository.RouteTableFile, `{"A": ["S1", "S2"], "B": ["S2", "S3"]}`)
	write(repository.StopIndexFile, `{"S1": ["A"], "S2": ["A"], "S3": ["B"]}`)

	cfg := config.DatasetConfig{Source: "json", DataDir: dir}

	g, err := loadGraph(context.Background(), discardLogger(), cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, g.RoutesServing("S2"))

	cfg.VerifyStopIndex = true
	_, err = loadGraph(context.Background(), discardLogger(), cfg)
	assert.ErrorIs(t, err, network.ErrStopIndexDrift)
}

func TestLoadGraphFromSQLite(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "transit.db")

	ds, err := repository.NewSQLiteDataset(dbPath)
	require.NoError(t, err)
	require.NoError(t, ds.EnsureSchema(ctx))
	require.NoError(t, ds.ReplaceRoutes(ctx, []network.Route{
		{ID: "Z", Stops: []string{"S1", "S2"}},
		{ID: "A", Stops: []string{"S2", "S3"}},
	}))
	require.NoError(t, ds.Close())

	g, err := loadGraph(ctx, discardLogger(), config.DatasetConfig{Source: "sqlite", SQLitePath: dbPath})
	require.NoError(t, err)
	assert.Equal(t, []string{"Z", "A"}, g.Routes())
}

func TestLoadGraphUnknownSource(t *testing.T) {
	_, err := loadGraph(context.Background(), discardLogger(), config.DatasetConfig{Source: "csv"})
	assert.Error(t, err)
}
