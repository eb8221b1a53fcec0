//go:build integration

package containers

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// schema mirrors the production tables. Applied once per container.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	username TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL,
	groups TEXT[] NOT NULL DEFAULT '{}',
	superuser BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS users_username_lower_idx ON users (lower(username));

CREATE TABLE IF NOT EXISTS missing_persons (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	approx_age INTEGER,
	gender TEXT NOT NULL DEFAULT '',
	last_seen_location TEXT NOT NULL DEFAULT '',
	last_seen_date TIMESTAMPTZ,
	description TEXT NOT NULL DEFAULT '',
	reported_by UUID,
	created_at TIMESTAMPTZ NOT NULL,
	resolved BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE INDEX IF NOT EXISTS missing_persons_open_idx ON missing_persons (created_at) WHERE resolved = FALSE;

CREATE TABLE IF NOT EXISTS found_persons (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	approx_age INTEGER,
	gender TEXT NOT NULL DEFAULT '',
	found_location TEXT NOT NULL,
	current_location TEXT,
	finder_contact TEXT,
	description TEXT NOT NULL DEFAULT '',
	created_by UUID NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS match_suggestions (
	id UUID PRIMARY KEY,
	missing_person_id UUID NOT NULL REFERENCES missing_persons (id),
	found_person_id UUID NOT NULL REFERENCES found_persons (id),
	confidence DOUBLE PRECISION NOT NULL,
	is_confirmed BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS match_suggestions_created_idx ON match_suggestions (created_at);
`

// PostgresContainer wraps a testcontainers PostgreSQL instance with the
// schema applied.
type PostgresContainer struct {
	Container testcontainers.Container
	URL       string
	DB        *sql.DB
}

// NewPostgresContainer starts PostgreSQL and applies the schema.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("sangamsetu_test"),
		tcpostgres.WithUsername("sangamsetu"),
		tcpostgres.WithPassword("sangamsetu"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := sql.Open("postgres", url)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to open postgres connection: %v", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to ping postgres: %v", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to apply schema: %v", err)
	}

	return &PostgresContainer{
		Container: container,
		URL:       url,
		DB:        db,
	}
}

// TruncateTables clears all rows between tests.
func (p *PostgresContainer) TruncateTables(ctx context.Context) error {
	_, err := p.DB.ExecContext(ctx, `TRUNCATE match_suggestions, found_persons, missing_persons, users`)
	if err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}
	return nil
}
