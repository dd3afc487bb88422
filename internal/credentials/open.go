package credentials

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/rickgao/emoji-trader/internal/config"
	"github.com/rickgao/emoji-trader/internal/database"
	"github.com/rickgao/emoji-trader/internal/model"
)

// Store is the contract shared by every backend.
type Store interface {
	Load(ctx context.Context) (*model.Credentials, bool)
	Save(ctx context.Context, creds *model.Credentials) error
}

// Open builds the configured backend without contacting it. An unreachable
// database or redis shows up as an absent record on Load and a persistence
// failure on Save. The returned close function releases any connections and is
// never nil.
func Open(ctx context.Context, cfg config.CredentialsConfig, logger *slog.Logger) (Store, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Backend {
	case config.BackendFile, "":
		return NewFileStore(cfg.Path, logger), func() {}, nil

	case config.BackendPostgres:
		pool, err := database.Connect(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, fmt.Errorf("build credentials pool: %w", err)
		}
		return NewPostgresStore(pool, logger), pool.Close, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return NewRedisStore(client, cfg.Redis.Key, logger), func() { client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown credentials backend %q", cfg.Backend)
	}
}
