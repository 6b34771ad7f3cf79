package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	apperrors "github.com/matzehuels/tubemap/pkg/errors"
)

// EnvPrefix starts every environment override.
const EnvPrefix = "TUBEMAP_"

type envVar struct {
	name  string
	apply func(c *Config, v string) error
}

func str(field func(*Config) *string) func(*Config, string) error {
	return func(c *Config, v string) error { *field(c) = v; return nil }
}

var envVars = []envVar{
	{"MERGE", func(c *Config, v string) (err error) { c.Layout.Merge, err = strconv.ParseBool(v); return }},
	{"WIDTH_MODE", str(func(c *Config) *string { return &c.Layout.WidthMode })},
	{"PIVOT", str(func(c *Config) *string { return &c.Layout.Pivot })},
	{"FORMATS", func(c *Config, v string) error { c.Render.Formats = strings.Split(v, ","); return nil }},
	{"SCALE", func(c *Config, v string) (err error) { c.Render.Scale, err = strconv.ParseFloat(v, 64); return }},
	{"CACHE", str(func(c *Config) *string { return &c.Cache.Backend })},
	{"CACHE_DIR", str(func(c *Config) *string { return &c.Cache.Dir })},
	{"CACHE_TTL", func(c *Config, v string) error { return c.Cache.TTL.UnmarshalText([]byte(v)) }},
	{"REDIS_URL", str(func(c *Config) *string { return &c.Cache.RedisURL })},
	{"ADDR", str(func(c *Config) *string { return &c.Server.Addr })},
	{"STORE", str(func(c *Config) *string { return &c.Store.Backend })},
	{"MONGO_URI", str(func(c *Config) *string { return &c.Store.MongoURI })},
	{"MONGO_DATABASE", str(func(c *Config) *string { return &c.Store.Database })},
}

// ApplyEnv overrides c with TUBEMAP_* environment variables, for example
// TUBEMAP_CACHE=redis or TUBEMAP_WIDTH_MODE=log10.
func (c *Config) ApplyEnv() error {
	for _, ev := range envVars {
		v, ok := os.LookupEnv(EnvPrefix + ev.name)
		if !ok {
			continue
		}
		if err := ev.apply(c, v); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "%s%s", EnvPrefix, ev.name)
		}
	}
	return nil
}

// LoadDotEnv loads variables from .env files into the environment without
// overriding variables that are already set. Missing files are skipped.
// With no arguments it reads ./.env.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "load %s", p)
		}
	}
	return nil
}
