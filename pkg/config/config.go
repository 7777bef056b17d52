// Package config loads stepgraph settings from a TOML file and the
// environment.
//
// Precedence, lowest first: built-in defaults, the TOML file, STEPGRAPH_*
// environment variables. CLI flags are applied on top by the caller.
//
//	[server]
//	addr = ":8080"
//
//	[store]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "720h"
//
//	[ingest]
//	url = "http://localhost:8000"
//
//	[geometry]
//	radius = 360
//
// Tables and keys that are absent keep their defaults, so a [geometry]
// table only needs the constants it changes.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stepgraph/pkg/core/layout"
	"github.com/matzehuels/stepgraph/pkg/errors"
	"github.com/matzehuels/stepgraph/pkg/store"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the full settings tree.
type Config struct {
	Server   Server          `toml:"server"`
	Store    Store           `toml:"store"`
	Cache    Cache           `toml:"cache"`
	Ingest   Ingest          `toml:"ingest"`
	Geometry layout.Geometry `toml:"geometry"`
}

// Server configures the HTTP API.
type Server struct {
	Addr            string        `toml:"addr"`
	ReadTimeout     time.Duration `toml:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

// Store configures the snapshot backend.
type Store struct {
	Backend       string        `toml:"backend"`
	Dir           string        `toml:"dir"`
	RedisAddr     string        `toml:"redis_addr"`
	TTL           time.Duration `toml:"ttl"`
	MongoURI      string        `toml:"mongo_uri"`
	MongoDatabase string        `toml:"mongo_database"`
}

// Cache configures the build and export cache.
type Cache struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
}

// Ingest configures the extraction service client.
type Ingest struct {
	URL      string        `toml:"url"`
	Attempts int           `toml:"attempts"`
	Delay    time.Duration `toml:"delay"`
	Timeout  time.Duration `toml:"timeout"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Server: Server{
			Addr:            ":8080",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    2 * time.Minute,
			ShutdownTimeout: 10 * time.Second,
		},
		Store: Store{
			Backend:       store.BackendFile,
			MongoDatabase: store.DefaultMongoDatabase,
		},
		Cache: Cache{
			Backend: CacheFile,
		},
		Ingest: Ingest{
			URL:      "http://localhost:8000",
			Attempts: 3,
			Delay:    time.Second,
			Timeout:  2 * time.Minute,
		},
		Geometry: layout.DefaultGeometry(),
	}
}

// DefaultPath returns ~/.config/stepgraph/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "stepgraph", "config.toml"), nil
}

// Load reads path over the defaults and applies the environment. A missing
// file is not an error. An empty path reads [DefaultPath].
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "locate config")
		}
		path = p
	}

	md, err := toml.DecodeFile(path, cfg)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	default:
		if keys := md.Undecoded(); len(keys) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "unknown config key %q in %s", keys[0].String(), path)
		}
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Environment variables read by [Config.ApplyEnv].
const (
	EnvAddr      = "STEPGRAPH_ADDR"
	EnvStore     = "STEPGRAPH_STORE"
	EnvRedisAddr = "STEPGRAPH_REDIS_ADDR"
	EnvMongoURI  = "STEPGRAPH_MONGO_URI"
	EnvIngestURL = "STEPGRAPH_INGEST_URL"
)

// ApplyEnv overrides settings from STEPGRAPH_* variables. The redis
// address applies to both the store and the cache.
func (c *Config) ApplyEnv() {
	c.Server.Addr = envOrDefault(EnvAddr, c.Server.Addr)
	c.Store.Backend = envOrDefault(EnvStore, c.Store.Backend)
	c.Store.RedisAddr = envOrDefault(EnvRedisAddr, c.Store.RedisAddr)
	c.Cache.RedisAddr = envOrDefault(EnvRedisAddr, c.Cache.RedisAddr)
	c.Store.MongoURI = envOrDefault(EnvMongoURI, c.Store.MongoURI)
	c.Ingest.URL = envOrDefault(EnvIngestURL, c.Ingest.URL)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Validate checks backend names, the ingestion URL and the geometry.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case store.BackendMemory, store.BackendFile, store.BackendRedis, store.BackendMongo:
	default:
		return errors.New(errors.ErrCodeInvalidBackend, "unknown store backend %q", c.Store.Backend)
	}
	switch c.Cache.Backend {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidBackend, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Ingest.URL != "" {
		if err := errors.ValidateURL(c.Ingest.URL); err != nil {
			return err
		}
	}
	if c.Ingest.Attempts < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "ingest attempts must be at least 1")
	}
	return c.Geometry.Validate()
}

// StoreConfig converts the [store] table for [store.Open].
func (c *Config) StoreConfig() store.Config {
	return store.Config{
		Backend:       c.Store.Backend,
		Dir:           c.Store.Dir,
		RedisAddr:     c.Store.RedisAddr,
		TTL:           c.Store.TTL,
		MongoURI:      c.Store.MongoURI,
		MongoDatabase: c.Store.MongoDatabase,
	}
}

// Save writes c to path as TOML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(c)
}
