// Package config loads tubemap settings from TOML or HCL files, .env files
// and TUBEMAP_* environment variables.
//
// Sources are applied in order, later ones winning:
//
//  1. [Default]
//  2. the config file, if any (.toml or .hcl)
//  3. TUBEMAP_* environment variables (optionally seeded from a .env file)
//
// Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	apperrors "github.com/matzehuels/tubemap/pkg/errors"
	"github.com/matzehuels/tubemap/pkg/vgraph"
)

// Cache and store backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"

	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// ErrUnsupportedFile is returned for config files that are neither TOML nor HCL.
var ErrUnsupportedFile = errors.New("unsupported config file")

// Duration is a time.Duration written as "90s" or "24h" in config files.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config is the complete configuration.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Store  StoreConfig  `toml:"store"`
}

// LayoutConfig holds the layout engine defaults.
type LayoutConfig struct {
	Merge     bool   `toml:"merge"`
	WidthMode string `toml:"width_mode"`
	Pivot     string `toml:"pivot"`
}

// RenderConfig holds output defaults.
type RenderConfig struct {
	Formats []string `toml:"formats"`
	Scale   float64  `toml:"scale"`
	Labels  bool     `toml:"labels"`
	Palette []string `toml:"palette"`
}

// CacheConfig selects where rendered artifacts are cached.
type CacheConfig struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	TTL      Duration `toml:"ttl"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
}

// StoreConfig selects where the server keeps computed layouts.
type StoreConfig struct {
	Backend    string `toml:"backend"`
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: LayoutConfig{WidthMode: vgraph.WidthLog2.String()},
		Render: RenderConfig{Formats: []string{"svg"}, Scale: 2},
		Cache: CacheConfig{
			Backend: CacheFile,
			TTL:     Duration{7 * 24 * time.Hour},
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  Duration{30 * time.Second},
			WriteTimeout: Duration{2 * time.Minute},
			MaxBodyBytes: 32 << 20,
		},
		Store: StoreConfig{
			Backend:    StoreMemory,
			Database:   "tubemap",
			Collection: "layouts",
		},
	}
}

// Load builds the configuration from the defaults, the file at path (when
// path is not empty) and the process environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return c.mergeTOML(path)
	case ".hcl":
		return c.mergeHCL(path)
	}
	return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, ErrUnsupportedFile, "%s (want .toml or .hcl)", path)
}

// WidthMode returns the parsed layout width mode.
func (c Config) WidthMode() vgraph.WidthMode {
	m, _ := vgraph.ParseWidthMode(c.Layout.WidthMode)
	return m
}

// Validate checks values that cannot be checked while decoding.
func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, format, args...)
	}
	if _, err := vgraph.ParseWidthMode(c.Layout.WidthMode); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "layout.width_mode")
	}
	if !slices.Contains([]string{CacheFile, CacheRedis, CacheNone}, c.Cache.Backend) {
		return invalid("cache.backend %q (must be file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheRedis && c.Cache.RedisURL == "" {
		return invalid("cache.redis_url is required for the redis backend")
	}
	if c.Cache.TTL.Duration < 0 {
		return invalid("cache.ttl must not be negative")
	}
	if !slices.Contains([]string{StoreMemory, StoreMongo}, c.Store.Backend) {
		return invalid("store.backend %q (must be memory or mongo)", c.Store.Backend)
	}
	if c.Store.Backend == StoreMongo && c.Store.MongoURI == "" {
		return invalid("store.mongo_uri is required for the mongo backend")
	}
	if c.Render.Scale <= 0 {
		return invalid("render.scale must be positive")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return invalid("server.max_body_bytes must be positive")
	}
	return nil
}

func (c Config) String() string {
	return fmt.Sprintf("layout{merge=%v width=%s pivot=%q} cache{%s ttl=%s} store{%s} server{%s}",
		c.Layout.Merge, c.Layout.WidthMode, c.Layout.Pivot, c.Cache.Backend, c.Cache.TTL, c.Store.Backend, c.Server.Addr)
}
