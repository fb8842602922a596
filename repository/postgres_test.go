package repository

import (
	"context"
	"os"
	"reflect"
	"testing"

	"github.com/NISHANTH0777/transport-backend/internal/network"
)

func setupPostgresDataset(t *testing.T) *PostgresDataset {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		t.Skip("DATABASE_URL not set - skipping integration test")
	}

	ds, err := NewPostgresDataset(context.Background(), databaseURL)
	if err != nil {
		t.Fatalf("Failed to create Postgres dataset: %v", err)
	}
	return ds
}

func TestPostgresReplaceAndLoadRoutes(t *testing.T) {
	ds := setupPostgresDataset(t)
	defer ds.Close()

	ctx := context.Background()
	if err := ds.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}

	routes := []network.Route{
		{ID: "335E", Stops: []string{"Majestic", "KR Puram", "Kadugodi"}},
		{ID: "500D", Stops: []string{"Hebbal", "KR Puram", "Silk Board"}},
	}
	if err := ds.ReplaceRoutes(ctx, routes); err != nil {
		t.Fatalf("ReplaceRoutes failed: %v", err)
	}

	got, err := ds.LoadRoutes(ctx)
	if err != nil {
		t.Fatalf("LoadRoutes failed: %v", err)
	}
	if !reflect.DeepEqual(got, routes) {
		t.Errorf("expected %v, got %v", routes, got)
	}
}
