package store

import (
	"context"
	"time"

	"github.com/matzehuels/stepgraph/pkg/errors"
)

// Backend names accepted by [Open].
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config selects and configures a backend.
type Config struct {
	Backend string

	Dir string // file

	RedisAddr string        // redis
	TTL       time.Duration // redis; 0 keeps snapshots forever

	MongoURI      string // mongo
	MongoDatabase string
}

// Open connects the backend named by cfg.Backend. An empty name means memory.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile:
		return NewFileStore(cfg.Dir)
	case BackendRedis:
		return NewRedisStore(ctx, cfg.RedisAddr, cfg.TTL)
	case BackendMongo:
		return NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	}
	return nil, errors.New(errors.ErrCodeInvalidBackend, "unknown store backend %q", cfg.Backend)
}
