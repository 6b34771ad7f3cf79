package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	apperrors "github.com/matzehuels/tubemap/pkg/errors"
	"github.com/matzehuels/tubemap/pkg/vgraph"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.WidthMode() != vgraph.WidthLog2 {
		t.Errorf("WidthMode() = %v, want log2", cfg.WidthMode())
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "tubemap.toml", `
[layout]
merge = true
width_mode = "log10"

[cache]
backend = "redis"
redis_url = "redis://localhost:6379/0"
ttl = "1h"

[store]
collection = "maps"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Default()
	want.Layout.Merge = true
	want.Layout.WidthMode = "log10"
	want.Cache.Backend = CacheRedis
	want.Cache.RedisURL = "redis://localhost:6379/0"
	want.Cache.TTL = Duration{time.Hour}
	want.Store.Collection = "maps"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load (-want +got):\n%s", diff)
	}
}

func TestLoadHCL(t *testing.T) {
	t.Setenv("TEST_MONGO", "mongodb://db:27017")
	path := writeFile(t, "tubemap.hcl", `
layout {
  pivot = "ref"
}

render {
  formats = ["svg", "png"]
  scale   = 1.5
}

server {
  addr         = ":9000"
  read_timeout = "5s"
}

store {
  backend   = "mongo"
  mongo_uri = env.TEST_MONGO
}
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Default()
	want.Layout.Pivot = "ref"
	want.Render.Formats = []string{"svg", "png"}
	want.Render.Scale = 1.5
	want.Server.Addr = ":9000"
	want.Server.ReadTimeout = Duration{5 * time.Second}
	want.Store.Backend = StoreMongo
	want.Store.MongoURI = "mongodb://db:27017"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load (-want +got):\n%s", diff)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeFile(t, "tubemap.toml", "[layout]\nwidth_mode = \"linear\"\n")
	t.Setenv("TUBEMAP_WIDTH_MODE", "log10")
	t.Setenv("TUBEMAP_MERGE", "true")
	t.Setenv("TUBEMAP_CACHE", "none")
	t.Setenv("TUBEMAP_FORMATS", "svg,pdf")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Layout.WidthMode != "log10" || !cfg.Layout.Merge || cfg.Cache.Backend != CacheNone {
		t.Errorf("env not applied: %s", cfg)
	}
	if diff := cmp.Diff([]string{"svg", "pdf"}, cfg.Render.Formats); diff != "" {
		t.Errorf("Formats (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
		env  map[string]string
		code apperrors.Code
	}{
		{name: "unknown toml key", file: "c.toml", body: "[layout]\nmerged = true\n", code: apperrors.ErrCodeInvalidConfig},
		{name: "bad toml", file: "c.toml", body: "[layout\n", code: apperrors.ErrCodeInvalidConfig},
		{name: "unknown hcl block", file: "c.hcl", body: "render_opts {}\n", code: apperrors.ErrCodeInvalidConfig},
		{name: "bad hcl duration", file: "c.hcl", body: "cache {\n  ttl = \"soon\"\n}\n", code: apperrors.ErrCodeInvalidConfig},
		{name: "yaml file", file: "c.yaml", body: "layout: {}\n", code: apperrors.ErrCodeInvalidConfig},
		{name: "bad width mode", file: "c.toml", body: "[layout]\nwidth_mode = \"cubic\"\n", code: apperrors.ErrCodeInvalidConfig},
		{name: "redis without url", file: "c.toml", body: "[cache]\nbackend = \"redis\"\n", code: apperrors.ErrCodeInvalidConfig},
		{name: "mongo without uri", file: "c.toml", body: "[store]\nbackend = \"mongo\"\n", code: apperrors.ErrCodeInvalidConfig},
		{name: "bad env bool", file: "c.toml", env: map[string]string{"TUBEMAP_MERGE": "maybe"}, code: apperrors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeFile(t, tt.file, tt.body))
			if err == nil {
				t.Fatal("Load() error = nil")
			}
			if got := apperrors.GetCode(err); got != tt.code {
				t.Errorf("code = %v, want %v (%v)", got, tt.code, err)
			}
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("missing file: %v", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := writeFile(t, ".env", "TUBEMAP_TEST_DOTENV=from-file\nTUBEMAP_TEST_KEEP=from-file\n")
	t.Setenv("TUBEMAP_TEST_KEEP", "from-env")
	t.Cleanup(func() { os.Unsetenv("TUBEMAP_TEST_DOTENV") })

	if err := LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("TUBEMAP_TEST_DOTENV"); got != "from-file" {
		t.Errorf("TUBEMAP_TEST_DOTENV = %q", got)
	}
	if got := os.Getenv("TUBEMAP_TEST_KEEP"); got != "from-env" {
		t.Errorf("TUBEMAP_TEST_KEEP = %q, want existing value kept", got)
	}
}
