package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/NISHANTH0777/transport-backend/internal/network"

	_ "modernc.org/sqlite"
)

// schemaSQL is shared by the SQLite and PostgreSQL datasets
//
//go:embed schema.sql
var schemaSQL string

const routeStopsQuery = `
	SELECT route_id, stop_name
	FROM route_stops
	ORDER BY route_order, route_id, stop_sequence
`

// SQLiteDataset stores and loads the route table in a SQLite database
type SQLiteDataset struct {
	db *sql.DB
}

// NewSQLiteDataset opens the SQLite database at dbPath
func NewSQLiteDataset(dbPath string) (*SQLiteDataset, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal=WAL&_fk=1&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Writes only happen from the importer, one at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteDataset{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteDataset) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the route_stops table if needed
func (s *SQLiteDataset) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// LoadRoutes returns every route with its stops, in route_order
func (s *SQLiteDataset) LoadRoutes(ctx context.Context) ([]network.Route, error) {
	rows, err := s.db.QueryContext(ctx, routeStopsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query route stops: %w", err)
	}
	defer rows.Close()

	var b routeBuilder
	for rows.Next() {
		var routeID, stopName string
		if err := rows.Scan(&routeID, &stopName); err != nil {
			return nil, fmt.Errorf("failed to scan route stop: %w", err)
		}
		b.add(routeID, stopName)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating route stops: %w", err)
	}

	return b.routes, nil
}

// ReplaceRoutes rewrites the whole route table in one transaction
func (s *SQLiteDataset) ReplaceRoutes(ctx context.Context, routes []network.Route) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM route_stops`); err != nil {
		return fmt.Errorf("failed to clear route stops: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO route_stops (route_id, route_order, stop_sequence, stop_name)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for order, r := range routes {
		for seq, stop := range r.Stops {
			if _, err := stmt.ExecContext(ctx, r.ID, order, seq, stop); err != nil {
				return fmt.Errorf("failed to insert stop %q of route %q: %w", stop, r.ID, err)
			}
		}
	}

	return tx.Commit()
}

// routeBuilder groups consecutive (route, stop) rows into routes
type routeBuilder struct {
	routes []network.Route
}

func (b *routeBuilder) add(routeID, stop string) {
	if n := len(b.routes); n > 0 && b.routes[n-1].ID == routeID {
		b.routes[n-1].Stops = append(b.routes[n-1].Stops, stop)
		return
	}
	b.routes = append(b.routes, network.Route{ID: routeID, Stops: []string{stop}})
}
