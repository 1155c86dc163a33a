package storage

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/totpvault/pkg/logger"
)

// Storage is a string key-value store. The vault keeps two keys in it: the
// encrypted account blob and the password presence flag.
type Storage interface {
	// Get returns ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Remove succeeds when the key is already absent.
	Remove(ctx context.Context, key string) error
	Close() error
}

// Supported drivers.
const (
	DriverMemory   = "memory"
	DriverBolt     = "bolt"
	DriverRedis    = "redis"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverS3       = "s3"
)

// Open connects the storage selected by cfg.Driver. A nil logger discards output.
func Open(ctx context.Context, cfg Config, log *slog.Logger) (Storage, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	log = log.With(logger.Component("storage"), slog.String("driver", cfg.Driver))

	var (
		s   Storage
		err error
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case DriverMemory:
		s = NewMemoryStorage()
	case "", DriverBolt:
		s, err = NewBoltStorage(cfg.Bolt)
	case DriverRedis:
		s, err = openRedis(ctx, cfg.Redis)
	case DriverMongo:
		s, err = openMongo(ctx, cfg.Mongo)
	case DriverPostgres:
		s, err = openPostgres(ctx, cfg.Postgres, log)
	case DriverS3:
		s, err = NewS3Storage(ctx, cfg.S3)
	default:
		return nil, errors.Join(ErrUnknownDriver, errors.New(cfg.Driver))
	}
	if err != nil {
		log.ErrorContext(ctx, "failed to open storage", logger.Error(err))
		return nil, err
	}

	log.DebugContext(ctx, "storage opened")
	return s, nil
}

func openRedis(ctx context.Context, cfg RedisConfig) (Storage, error) {
	client, err := ConnectRedis(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewRedisStorage(client, cfg.KeyPrefix), nil
}

func openMongo(ctx context.Context, cfg MongoConfig) (Storage, error) {
	client, err := ConnectMongo(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewMongoStorage(client, client.Database(cfg.Database).Collection(cfg.Collection)), nil
}

func openPostgres(ctx context.Context, cfg PostgresConfig, log *slog.Logger) (Storage, error) {
	pool, err := ConnectPostgres(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, pool, cfg.MigrationsTable, log); err != nil {
		pool.Close()
		return nil, err
	}
	return NewPostgresStorage(pool), nil
}
