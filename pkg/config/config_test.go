package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/outlinegraph/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
indent = 4
strict_ids = true

[cache]
backend = "memory"
size = 32
ttl = "90m"

[render]
format = "png"
rankdir = "LR"
detailed = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Indent != 4 || !cfg.StrictIDs {
		t.Errorf("indent/strict = %d/%v, want 4/true", cfg.Indent, cfg.StrictIDs)
	}
	if cfg.Cache.Backend != "memory" || cfg.Cache.Size != 32 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Cache.TTL.Duration != 90*time.Minute {
		t.Errorf("ttl = %v, want 1h30m", cfg.Cache.TTL.Duration)
	}
	if cfg.Render.Format != "png" || cfg.Render.RankDir != "LR" || !cfg.Render.Detailed {
		t.Errorf("render = %+v", cfg.Render)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("unset server.addr = %q, want default", cfg.Server.Addr)
	}
	if cfg.Source != path {
		t.Errorf("Source = %q, want %q", cfg.Source, path)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("indent = ["), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"OUTLINEGRAPH_INDENT":        "3",
		"OUTLINEGRAPH_STRICT_IDS":    "true",
		"OUTLINEGRAPH_CACHE_BACKEND": "redis",
		"OUTLINEGRAPH_REDIS_URL":     "redis://localhost:6379/0",
		"OUTLINEGRAPH_CACHE_TTL":     "1h",
		"OUTLINEGRAPH_ADDR":          ":9000",
	}
	cfg := Default()
	if err := applyEnv(&cfg, func(k string) string { return env[k] }); err != nil {
		t.Fatalf("applyEnv() error = %v", err)
	}

	if cfg.Indent != 3 || !cfg.StrictIDs {
		t.Errorf("indent/strict = %d/%v", cfg.Indent, cfg.StrictIDs)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Cache.TTL.Duration != time.Hour {
		t.Errorf("ttl = %v", cfg.Cache.TTL.Duration)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"indent", "OUTLINEGRAPH_INDENT", "two"},
		{"strict", "OUTLINEGRAPH_STRICT_IDS", "maybe"},
		{"ttl", "OUTLINEGRAPH_CACHE_TTL", "soon"},
		{"size", "OUTLINEGRAPH_CACHE_SIZE", "big"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			err := applyEnv(&cfg, func(k string) string {
				if k == tt.key {
					return tt.val
				}
				return ""
			})
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("applyEnv(%s=%q) error = %v, want INVALID_CONFIG", tt.key, tt.val, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero indent", func(c *Config) { c.Indent = 0 }, true},
		{"huge indent", func(c *Config) { c.Indent = 9 }, true},
		{"unknown backend", func(c *Config) { c.Cache.Backend = "disk" }, true},
		{"file without dir", func(c *Config) { c.Cache.Dir = "" }, true},
		{"redis without url", func(c *Config) { c.Cache.Backend = "redis" }, true},
		{"none backend", func(c *Config) { c.Cache.Backend = "none" }, false},
		{"lowercase rankdir", func(c *Config) { c.Render.RankDir = "lr" }, true},
		{"bad rankdir", func(c *Config) { c.Render.RankDir = "UP" }, true},
		{"negative ttl", func(c *Config) { c.Cache.TTL.Duration = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCacheOptions(t *testing.T) {
	c := CacheConfig{Backend: "memory", Size: 7, Dir: "/x", RedisURL: "redis://h"}
	opts := c.CacheOptions()
	if opts.Backend != "memory" || opts.Size != 7 || opts.Dir != "/x" || opts.RedisURL != "redis://h" {
		t.Errorf("CacheOptions() = %+v", opts)
	}
}
