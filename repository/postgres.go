package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NISHANTH0777/transport-backend/internal/network"
)

// PostgresDataset loads the route table from PostgreSQL
type PostgresDataset struct {
	pool *pgxpool.Pool
}

func NewPostgresDataset(ctx context.Context, databaseURL string) (*PostgresDataset, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresDataset{pool: pool}, nil
}

func (p *PostgresDataset) Close() {
	p.pool.Close()
}

// EnsureSchema creates the route_stops table if needed
func (p *PostgresDataset) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// LoadRoutes returns every route with its stops, in route_order
func (p *PostgresDataset) LoadRoutes(ctx context.Context) ([]network.Route, error) {
	rows, err := p.pool.Query(ctx, routeStopsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query route stops: %w", err)
	}
	defer rows.Close()

	var b routeBuilder
	var routeID, stopName string
	_, err = pgx.ForEachRow(rows, []any{&routeID, &stopName}, func() error {
		b.add(routeID, stopName)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read route stops: %w", err)
	}

	return b.routes, nil
}

// ReplaceRoutes rewrites the whole route table in one transaction
func (p *PostgresDataset) ReplaceRoutes(ctx context.Context, routes []network.Route) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM route_stops`); err != nil {
		return fmt.Errorf("failed to clear route stops: %w", err)
	}

	batch := &pgx.Batch{}
	for order, r := range routes {
		for seq, stop := range r.Stops {
			batch.Queue(`
				INSERT INTO route_stops (route_id, route_order, stop_sequence, stop_name)
				VALUES ($1, $2, $3, $4)
			`, r.ID, order, seq, stop)
		}
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert route stops: %w", err)
	}

	return tx.Commit(ctx)
}
