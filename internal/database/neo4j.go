package database

import (
	"context"
	"fmt"
	"log"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Config holds graph database connection settings.
type Config struct {
	URI      string
	User     string
	Password string
}

// DB wraps the Neo4j driver shared by all repositories. The driver manages
// its own connection pool; DB only adds connect/verify/close plumbing.
type DB struct {
	driver neo4j.DriverWithContext
}

// Connect creates the driver and verifies connectivity.
func Connect(ctx context.Context, cfg Config) (*DB, error) {
	driver, err := neo4j.NewDriverWithContext(
		cfg.URI,
		neo4j.BasicAuth(cfg.User, cfg.Password, ""),
	)
	if err != nil {
		return nil, fmt.Errorf("creating neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("connecting to neo4j at %s: %w", cfg.URI, err)
	}

	log.Printf("Connected to Neo4j at %s", cfg.URI)
	return &DB{driver: driver}, nil
}

// Driver exposes the underlying driver for repositories.
func (db *DB) Driver() neo4j.DriverWithContext {
	return db.driver
}

// Alive reports whether the database currently responds.
func (db *DB) Alive(ctx context.Context) bool {
	return db.driver.VerifyConnectivity(ctx) == nil
}

// Close shuts down the connection pool.
func (db *DB) Close(ctx context.Context) error {
	return db.driver.Close(ctx)
}

// EnsureSchema creates the uniqueness constraints and indexes the city graph
// relies on. Safe to run repeatedly.
func (db *DB) EnsureSchema(ctx context.Context) error {
	session := db.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	statements := []string{
		"CREATE CONSTRAINT citizen_id IF NOT EXISTS FOR (c:Citizen) REQUIRE c.id IS UNIQUE",
		"CREATE CONSTRAINT location_id IF NOT EXISTS FOR (l:Location) REQUIRE l.id IS UNIQUE",
		"CREATE CONSTRAINT crime_id IF NOT EXISTS FOR (cr:Crime) REQUIRE cr.id IS UNIQUE",
		"CREATE INDEX citizen_risk IF NOT EXISTS FOR (c:Citizen) ON (c.risk_seed)",
		"CREATE INDEX crime_date IF NOT EXISTS FOR (cr:Crime) ON (cr.date)",
	}

	for _, stmt := range statements {
		if _, err := session.Run(ctx, stmt, nil); err != nil {
			return fmt.Errorf("ensuring schema: %w", err)
		}
	}
	return nil
}
