package credentials

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rickgao/emoji-trader/internal/config"
	"github.com/rickgao/emoji-trader/internal/failure"
	"github.com/rickgao/emoji-trader/internal/model"
)

// DefaultRedisKey is where the redis backend keeps the record.
const DefaultRedisKey = config.DefaultRedisKey

// RedisClient is the subset of *redis.Client used by RedisStore.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisStore keeps the credential record as a JSON document under one key.
type RedisStore struct {
	client RedisClient
	key    string
	logger *slog.Logger
}

// NewRedisStore creates a redis-backed store. An empty key means DefaultRedisKey.
func NewRedisStore(client RedisClient, key string, logger *slog.Logger) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisStore{client: client, key: key, logger: logger}
}

// Load reads the stored credentials.
func (s *RedisStore) Load(ctx context.Context) (*model.Credentials, bool) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		s.logger.Info("credentials key not found", "key", s.key)
		return nil, false
	case errors.Is(err, context.Canceled):
		s.logger.Warn("loading credentials was cancelled")
		return nil, false
	case err != nil:
		s.logger.Error("unexpected error loading credentials", "key", s.key, "error", err)
		return nil, false
	}

	creds, err := Decode(data)
	if err != nil {
		logDecodeFailure(s.logger, s.key, err)
		return nil, false
	}

	s.logger.Info("successfully loaded credentials", "team_id", creds.TeamID, "key", s.key)
	return creds, true
}

// Save overwrites the key. The record never expires.
func (s *RedisStore) Save(ctx context.Context, creds *model.Credentials) error {
	if creds == nil {
		return failure.InvalidArgument("credentials are required")
	}
	if err := ctx.Err(); err != nil {
		err = failure.Wrap(err, failure.CodePersistenceFailed, "save credentials")
		s.logger.Warn("saving credentials was interrupted", "error", err)
		return err
	}

	s.logger.Info("saving credentials", "team_id", creds.TeamID, "key", s.key)

	data, err := Encode(creds)
	if err != nil {
		return failure.Wrap(err, failure.CodePersistenceFailed, "save credentials")
	}

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		err = failure.Wrap(fmt.Errorf("set %s: %w", s.key, err), failure.CodePersistenceFailed, "save credentials")
		if failure.IsCancelled(err) {
			s.logger.Warn("saving credentials was cancelled")
		} else {
			s.logger.Error("failed to save credentials", "key", s.key, "error", err)
		}
		return err
	}

	s.logger.Info("successfully saved credentials", "key", s.key)
	return nil
}
