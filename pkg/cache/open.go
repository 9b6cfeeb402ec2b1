package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Backends lists the accepted backend names.
var Backends = []string{BackendNone, BackendFile, BackendRedis, BackendMongo}

// Config selects and configures a backend.
type Config struct {
	Backend string `toml:"backend"`

	// Dir is the FileCache directory.
	Dir string `toml:"dir"`

	// URL is the Redis or MongoDB connection URL.
	URL string `toml:"url"`

	// Prefix namespaces Redis keys.
	Prefix string `toml:"prefix"`

	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Open creates the backend described by cfg. An empty backend name selects
// the file cache when Dir is set and the null cache otherwise.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	backend := cfg.Backend
	if backend == "" {
		backend = BackendNone
		if cfg.Dir != "" {
			backend = BackendFile
		}
	}

	switch backend {
	case BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("file cache: directory not set")
		}
		return NewFileCache(cfg.Dir)
	case BackendRedis:
		if cfg.URL == "" {
			return nil, fmt.Errorf("redis cache: url not set")
		}
		return NewRedisCache(ctx, cfg.URL, cfg.Prefix)
	case BackendMongo:
		if cfg.URL == "" {
			return nil, fmt.Errorf("mongo cache: url not set")
		}
		return NewMongoCache(ctx, cfg.URL, cfg.Database, cfg.Collection)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}
