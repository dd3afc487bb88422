package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// CredentialsTable holds the single credential record.
const CredentialsTable = "team_credentials"

// CredentialsRowID is the primary key of the only row in CredentialsTable.
const CredentialsRowID = 1

const createCredentialsTable = `
CREATE TABLE IF NOT EXISTS team_credentials (
	id           SMALLINT PRIMARY KEY CHECK (id = 1),
	team_id      VARCHAR(50) NOT NULL,
	api_key      TEXT NOT NULL,
	initial_cash NUMERIC NOT NULL CHECK (initial_cash >= 0),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Execer runs statements that return no rows. *pgxpool.Pool satisfies it.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// EnsureSchema creates the credentials table if it does not exist.
func EnsureSchema(ctx context.Context, db Execer) error {
	if _, err := db.Exec(ctx, createCredentialsTable); err != nil {
		return fmt.Errorf("create %s: %w", CredentialsTable, err)
	}
	return nil
}
