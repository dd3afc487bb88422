package credentials

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rickgao/emoji-trader/internal/config"
	"github.com/rickgao/emoji-trader/internal/failure"
	"github.com/rickgao/emoji-trader/internal/model"
)

// DefaultFileName is where the file backend keeps the record.
const DefaultFileName = config.DefaultCredentials

// FileStore keeps the credential record in a local JSON file.
type FileStore struct {
	path   string
	logger *slog.Logger
}

// NewFileStore creates a file-backed store. An empty path means DefaultFileName.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if path == "" {
		path = DefaultFileName
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{path: path, logger: logger}
}

// Path returns the location of the credential file.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the stored credentials. The second result is false when there is
// no usable record.
func (s *FileStore) Load(ctx context.Context) (*model.Credentials, bool) {
	if err := ctx.Err(); err != nil {
		s.logger.Warn("loading credentials was cancelled")
		return nil, false
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Info("credentials file not found", "file", s.path)
		return nil, false
	}
	if err != nil {
		s.logger.Error("unexpected error loading credentials", "file", s.path, "error", err)
		return nil, false
	}

	if ctx.Err() != nil {
		s.logger.Warn("loading credentials was cancelled")
		return nil, false
	}

	creds, err := Decode(data)
	if err != nil {
		logDecodeFailure(s.logger, s.path, err)
		return nil, false
	}

	s.logger.Info("successfully loaded credentials", "team_id", creds.TeamID, "file", s.path)
	return creds, true
}

// Save replaces the credential file. The record is written to a temporary file
// in the same directory and renamed into place, so readers never see a partial
// record and an interrupted save leaves the previous file untouched. A cancelled
// context is reported as failure.CodeCancelled, an expired deadline as
// failure.CodePersistenceFailed.
func (s *FileStore) Save(ctx context.Context, creds *model.Credentials) error {
	if creds == nil {
		return failure.InvalidArgument("credentials are required")
	}

	s.logger.Info("saving credentials", "team_id", creds.TeamID, "file", s.path)

	if err := s.write(ctx, creds); err != nil {
		if failure.IsCancelled(err) {
			s.logger.Warn("saving credentials was cancelled", "file", s.path)
		} else {
			s.logger.Error("failed to save credentials", "file", s.path, "error", err)
		}
		return err
	}

	s.logger.Info("successfully saved credentials", "file", s.path)
	return nil
}

func (s *FileStore) write(ctx context.Context, creds *model.Credentials) error {
	if err := ctx.Err(); err != nil {
		return failure.Wrap(err, failure.CodePersistenceFailed, "save credentials")
	}

	data, err := Encode(creds)
	if err != nil {
		return failure.Wrap(err, failure.CodePersistenceFailed, "save credentials")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return failure.Wrap(fmt.Errorf("create directory: %w", err), failure.CodePersistenceFailed, "save credentials")
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return failure.Wrap(fmt.Errorf("create temp file: %w", err), failure.CodePersistenceFailed, "save credentials")
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return failure.Wrap(fmt.Errorf("write temp file: %w", err), failure.CodePersistenceFailed, "save credentials")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return failure.Wrap(fmt.Errorf("sync temp file: %w", err), failure.CodePersistenceFailed, "save credentials")
	}
	if err := tmp.Close(); err != nil {
		return failure.Wrap(fmt.Errorf("close temp file: %w", err), failure.CodePersistenceFailed, "save credentials")
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		return failure.Wrap(fmt.Errorf("chmod temp file: %w", err), failure.CodePersistenceFailed, "save credentials")
	}

	if err := ctx.Err(); err != nil {
		return failure.Wrap(err, failure.CodePersistenceFailed, "save credentials")
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return failure.Wrap(fmt.Errorf("rename temp file: %w", err), failure.CodePersistenceFailed, "save credentials")
	}
	committed = true
	return nil
}
