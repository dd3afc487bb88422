package credentials

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickgao/emoji-trader/internal/database"
	"github.com/rickgao/emoji-trader/internal/failure"
)

// fakeRow scans a fixed row or returns an error.
type fakeRow struct {
	values []string
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		*(d.(*string)) = r.values[i]
	}
	return nil
}

// fakePG keeps the single credentials row in memory.
type fakePG struct {
	row       []string
	readErr   error
	execErr   error
	schemaErr error
	schemas   int
	args      []any
}

func (f *fakePG) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	if f.readErr != nil {
		return fakeRow{err: f.readErr}
	}
	if f.row == nil {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{values: f.row}
}

func (f *fakePG) Exec(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	if len(args) == 0 {
		f.schemas++
		if f.schemaErr != nil {
			return pgconn.CommandTag{}, f.schemaErr
		}
		return pgconn.NewCommandTag("CREATE TABLE"), nil
	}
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	f.args = args
	f.row = []string{args[1].(string), args[2].(string), args[3].(string)}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func TestPostgresStoreRoundTrip(t *testing.T) {
	db := &fakePG{}
	s := NewPostgresStore(db, discardLogger())

	require.NoError(t, s.Save(context.Background(), testCredentials()))
	require.Len(t, db.args, 4)
	assert.Equal(t, database.CredentialsRowID, db.args[0])
	assert.Equal(t, "100000", db.args[3])

	got, ok := s.Load(context.Background())
	require.True(t, ok)
	assert.True(t, testCredentials().Equal(got))
	assert.Equal(t, 1, db.schemas, "table is created once per store")
}

func TestPostgresStoreSchemaUnavailable(t *testing.T) {
	db := &fakePG{schemaErr: errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")}
	s := NewPostgresStore(db, discardLogger())

	got, ok := s.Load(context.Background())
	assert.False(t, ok)
	assert.Nil(t, got)

	err := s.Save(context.Background(), testCredentials())
	assert.True(t, failure.HasCode(err, failure.CodePersistenceFailed))
	assert.ErrorIs(t, err, db.schemaErr)
	assert.Nil(t, db.row)

	// The server came back: the next call creates the table and proceeds.
	db.schemaErr = nil
	require.NoError(t, s.Save(context.Background(), testCredentials()))
	assert.Equal(t, 3, db.schemas)
}

func TestPostgresStoreLoadAbsent(t *testing.T) {
	tests := []struct {
		name string
		db   *fakePG
	}{
		{"no row", &fakePG{}},
		{"empty team id", &fakePG{row: []string{"", "k", "1"}}},
		{"empty api key", &fakePG{row: []string{"t", "", "1"}}},
		{"unparseable cash", &fakePG{row: []string{"t", "k", "NaN?"}}},
		{"query error", &fakePG{readErr: errors.New("relation does not exist")}},
		{"cancelled", &fakePG{readErr: context.Canceled}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewPostgresStore(tt.db, discardLogger())
			got, ok := s.Load(context.Background())
			assert.False(t, ok)
			assert.Nil(t, got)
		})
	}
}

func TestPostgresStoreSaveErrors(t *testing.T) {
	t.Run("nil credentials", func(t *testing.T) {
		s := NewPostgresStore(&fakePG{}, discardLogger())
		assert.Equal(t, failure.KindContract, failure.KindOf(s.Save(context.Background(), nil)))
	})

	t.Run("write failure", func(t *testing.T) {
		cause := errors.New("disk full")
		s := NewPostgresStore(&fakePG{execErr: cause}, discardLogger())

		err := s.Save(context.Background(), testCredentials())
		assert.True(t, failure.HasCode(err, failure.CodePersistenceFailed))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("cancelled", func(t *testing.T) {
		db := &fakePG{}
		s := NewPostgresStore(db, discardLogger())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := s.Save(ctx, testCredentials())
		assert.True(t, failure.IsCancelled(err))
		assert.Nil(t, db.row)
	})
}
