// Package config loads techcloud settings from a TOML file, an optional .env
// file and TECHCLOUD_* environment variables, in increasing precedence.
//
// A config file looks like:
//
//	[layout]
//	strategy = "scatter"
//	width = 1200
//	height = 800
//
//	[scatter]
//	probe_steps = 800
//
//	[sizes]
//	5xl = 56
//
//	[cache]
//	backend = "redis"
//	url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
//	timeout = "30s"
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/techcloud/pkg/cache"
	"github.com/matzehuels/techcloud/pkg/core/cloud"
	"github.com/matzehuels/techcloud/pkg/core/cloud/metrics"
	"github.com/matzehuels/techcloud/pkg/core/cloud/scatter"
	"github.com/matzehuels/techcloud/pkg/core/cloud/sizes"
	"github.com/matzehuels/techcloud/pkg/core/cloud/spiral"
	apperrors "github.com/matzehuels/techcloud/pkg/errors"
	"github.com/matzehuels/techcloud/pkg/fonts"
	"github.com/matzehuels/techcloud/pkg/pipeline"
	"github.com/matzehuels/techcloud/pkg/render"
)

const appName = "techcloud"

// Environment variables that override file values.
const (
	EnvCacheBackend = "TECHCLOUD_CACHE_BACKEND"
	EnvCacheDir     = "TECHCLOUD_CACHE_DIR"
	EnvCachePrefix  = "TECHCLOUD_CACHE_PREFIX"
	EnvRedisURL     = "TECHCLOUD_REDIS_URL"
	EnvMongoURI     = "TECHCLOUD_MONGO_URI"
	EnvAddr         = "TECHCLOUD_ADDR"
)

// Config is the full set of file-configurable settings.
type Config struct {
	Layout  Layout             `toml:"layout"`
	Spiral  spiral.Options     `toml:"spiral"`
	Scatter scatter.Options    `toml:"scatter"`
	Sizes   map[string]float64 `toml:"sizes"`
	Render  Render             `toml:"render"`
	Cache   cache.Config       `toml:"cache"`
	Server  Server             `toml:"server"`
}

// Layout holds layout defaults.
type Layout struct {
	Strategy string  `toml:"strategy"`
	Measurer string  `toml:"measurer"`
	Family   string  `toml:"family"`
	Width    float64 `toml:"width"`
	Height   float64 `toml:"height"`
	Padding  float64 `toml:"padding"`
	Shuffle  bool    `toml:"shuffle"`
	Seed     uint64  `toml:"seed"`
}

// Render holds render defaults.
type Render struct {
	Formats    []string `toml:"formats"`
	Rotate     float64  `toml:"rotate"`
	Zoom       float64  `toml:"zoom"`
	Scale      float64  `toml:"scale"`
	Boxes      bool     `toml:"boxes"`
	EmbedFont  bool     `toml:"embed_font"`
	Background string   `toml:"background"`
	Foreground string   `toml:"foreground"`
}

// Server holds HTTP API settings.
type Server struct {
	Addr         string        `toml:"addr"`
	Timeout      time.Duration `toml:"timeout"`
	MaxBodyBytes int64         `toml:"max_body_bytes"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: Layout{
			Strategy: pipeline.DefaultStrategy,
			Measurer: pipeline.DefaultMeasurer,
			Family:   fonts.DefaultFamily,
			Width:    pipeline.DefaultWidth,
			Height:   pipeline.DefaultHeight,
		},
		Spiral:  spiral.DefaultOptions(),
		Scatter: scatter.DefaultOptions(),
		Sizes:   map[string]float64{},
		Render: Render{
			Formats: []string{render.FormatSVG},
			Zoom:    1,
			Scale:   2,
		},
		Cache: cache.Config{Backend: cache.BackendFile},
		Server: Server{
			Addr:         ":8080",
			Timeout:      30 * time.Second,
			MaxBodyBytes: 1 << 20,
		},
	}
}

// Path returns the default config file location,
// $XDG_CONFIG_HOME/techcloud/config.toml or ~/.config/techcloud/config.toml.
func Path() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the default file cache directory,
// $XDG_CACHE_HOME/techcloud or ~/.cache/techcloud.
func CacheDir() (string, error) {
	if home := os.Getenv("XDG_CACHE_HOME"); home != "" {
		return filepath.Join(home, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the config file at path over the defaults, then applies the
// .env file in the working directory and the environment. An empty path
// uses [Path] and tolerates a missing file; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	if err := LoadEnvFile(".env"); err != nil {
		return Config{}, err
	}
	cfg.ApplyEnv(os.LookupEnv)

	if cfg.Cache.Backend == cache.BackendFile && cfg.Cache.Dir == "" {
		if dir, err := CacheDir(); err == nil {
			cfg.Cache.Dir = dir
		}
	}
	return cfg, cfg.Validate()
}

func (c *Config) decodeFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := c.Decode(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Decode reads TOML from r over c.
func (c *Config) Decode(r io.Reader) error {
	md, err := toml.NewDecoder(r).Decode(c)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not an
// error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "load %s", path)
	}
	return nil
}

// ApplyEnv overrides settings from environment variables read via lookup.
// A Redis or Mongo URL also selects that backend unless a backend is named
// explicitly.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvCacheDir); ok && v != "" {
		c.Cache.Dir = v
	}
	if v, ok := lookup(EnvCachePrefix); ok {
		c.Cache.Prefix = v
	}
	if v, ok := lookup(EnvMongoURI); ok && v != "" {
		c.Cache.Backend, c.Cache.URL = cache.BackendMongo, v
	}
	if v, ok := lookup(EnvRedisURL); ok && v != "" {
		c.Cache.Backend, c.Cache.URL = cache.BackendRedis, v
	}
	if v, ok := lookup(EnvCacheBackend); ok && v != "" {
		c.Cache.Backend = strings.ToLower(v)
	}
	if v, ok := lookup(EnvAddr); ok && v != "" {
		c.Server.Addr = v
	}
}

// Validate checks names and numeric ranges.
func (c Config) Validate() error {
	if err := cloud.ValidateStrategy(c.Layout.Strategy); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "[layout] strategy")
	}
	if err := metrics.Validate(c.Layout.Measurer); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "[layout] measurer")
	}
	if err := apperrors.ValidateRegion(c.Layout.Width, c.Layout.Height); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "[layout]")
	}
	if err := sizes.Default().Merge(c.Sizes).Validate(); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "[sizes]")
	}
	for _, f := range c.Render.Formats {
		if err := render.ValidateFormat(f); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "[render] formats")
		}
	}
	if c.Cache.Backend != "" && !slices.Contains(cache.Backends, c.Cache.Backend) {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "[cache] unknown backend %q (must be one of: %s)",
			c.Cache.Backend, strings.Join(cache.Backends, ", "))
	}
	if c.Cache.URL != "" {
		if err := apperrors.ValidateURL(c.Cache.URL, "redis", "rediss", "mongodb", "mongodb+srv"); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "[cache] url")
		}
	}
	if c.Server.Timeout < 0 || c.Server.MaxBodyBytes < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "[server] timeout and max_body_bytes cannot be negative")
	}
	return nil
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// Options returns pipeline options seeded with the configured defaults.
func (c Config) Options() pipeline.Options {
	return pipeline.Options{
		Strategy:   c.Layout.Strategy,
		Measurer:   c.Layout.Measurer,
		Family:     c.Layout.Family,
		Width:      c.Layout.Width,
		Height:     c.Layout.Height,
		Padding:    c.Layout.Padding,
		Shuffle:    c.Layout.Shuffle,
		Seed:       c.Layout.Seed,
		Sizes:      c.Sizes,
		Spiral:     c.Spiral,
		Scatter:    c.Scatter,
		Formats:    slices.Clone(c.Render.Formats),
		Rotate:     c.Render.Rotate,
		Zoom:       c.Render.Zoom,
		Scale:      c.Render.Scale,
		Boxes:      c.Render.Boxes,
		EmbedFont:  c.Render.EmbedFont,
		Background: c.Render.Background,
		Foreground: c.Render.Foreground,
	}
}
