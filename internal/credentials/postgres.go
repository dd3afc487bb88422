package credentials

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rickgao/emoji-trader/internal/database"
	"github.com/rickgao/emoji-trader/internal/failure"
	"github.com/rickgao/emoji-trader/internal/model"
)

const (
	selectCredentials = `
SELECT team_id, api_key, initial_cash::text
FROM team_credentials
WHERE id = $1`

	upsertCredentials = `
INSERT INTO team_credentials (id, team_id, api_key, initial_cash, updated_at)
VALUES ($1, $2, $3, $4::numeric, now())
ON CONFLICT (id) DO UPDATE SET
	team_id      = EXCLUDED.team_id,
	api_key      = EXCLUDED.api_key,
	initial_cash = EXCLUDED.initial_cash,
	updated_at   = EXCLUDED.updated_at`
)

// Querier is the subset of *pgxpool.Pool used by PostgresStore.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore keeps the credential record in the team_credentials table.
type PostgresStore struct {
	db     Querier
	logger *slog.Logger

	mu          sync.Mutex
	schemaReady bool
}

// NewPostgresStore creates a store on db. The table is created on first use.
func NewPostgresStore(db Querier, logger *slog.Logger) *PostgresStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresStore{db: db, logger: logger}
}

// ensureSchema creates the table once per store. A failed attempt is retried
// on the next call.
func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.schemaReady {
		return nil
	}
	if err := database.EnsureSchema(ctx, s.db); err != nil {
		return err
	}
	s.schemaReady = true
	return nil
}

// Load reads the stored credentials.
func (s *PostgresStore) Load(ctx context.Context) (*model.Credentials, bool) {
	if err := s.ensureSchema(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			s.logger.Warn("loading credentials was cancelled")
		} else {
			s.logger.Error("credentials table unavailable", "table", database.CredentialsTable, "error", err)
		}
		return nil, false
	}

	var teamID, apiKey, cash string
	err := s.db.QueryRow(ctx, selectCredentials, database.CredentialsRowID).Scan(&teamID, &apiKey, &cash)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		s.logger.Info("no credentials row found", "table", database.CredentialsTable)
		return nil, false
	case errors.Is(err, context.Canceled):
		s.logger.Warn("loading credentials was cancelled")
		return nil, false
	case err != nil:
		s.logger.Error("unexpected error loading credentials", "table", database.CredentialsTable, "error", err)
		return nil, false
	}

	initialCash, err := model.ParseCash(cash)
	if err != nil {
		logDecodeFailure(s.logger, database.CredentialsTable, fmt.Errorf("%w: initial_cash %q", ErrCorruptRecord, cash))
		return nil, false
	}

	creds := &model.Credentials{TeamID: teamID, APIKey: apiKey, InitialCash: initialCash}
	if !creds.Valid() {
		logDecodeFailure(s.logger, database.CredentialsTable, ErrInvalidRecord)
		return nil, false
	}

	s.logger.Info("successfully loaded credentials", "team_id", creds.TeamID, "table", database.CredentialsTable)
	return creds, true
}

// Save upserts the credential row.
func (s *PostgresStore) Save(ctx context.Context, creds *model.Credentials) error {
	if creds == nil {
		return failure.InvalidArgument("credentials are required")
	}
	if err := ctx.Err(); err != nil {
		err = failure.Wrap(err, failure.CodePersistenceFailed, "save credentials")
		s.logger.Warn("saving credentials was interrupted", "error", err)
		return err
	}

	s.logger.Info("saving credentials", "team_id", creds.TeamID, "table", database.CredentialsTable)

	err := s.ensureSchema(ctx)
	if err == nil {
		_, err = s.db.Exec(ctx, upsertCredentials,
			database.CredentialsRowID,
			creds.TeamID,
			creds.APIKey,
			creds.InitialCash.String(),
		)
	}
	if err != nil {
		err = failure.Wrap(fmt.Errorf("upsert %s: %w", database.CredentialsTable, err), failure.CodePersistenceFailed, "save credentials")
		if failure.IsCancelled(err) {
			s.logger.Warn("saving credentials was cancelled")
		} else {
			s.logger.Error("failed to save credentials", "table", database.CredentialsTable, "error", err)
		}
		return err
	}

	s.logger.Info("successfully saved credentials", "table", database.CredentialsTable)
	return nil
}
