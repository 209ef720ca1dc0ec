// Package config loads outlinegraph settings.
//
// Settings are resolved in layers, each overriding the previous one:
//
//  1. Built-in defaults ([Default])
//  2. A TOML file: the path given explicitly, otherwise outlinegraph.toml in
//     the working directory, otherwise $XDG_CONFIG_HOME/outlinegraph/config.toml
//  3. A .env file in the working directory, if present
//  4. OUTLINEGRAPH_* environment variables
//
// A minimal file:
//
//	indent = 2
//	strict_ids = true
//
//	[cache]
//	backend = "memory"
//	size = 512
//
//	[render]
//	format = "svg"
//	rankdir = "LR"
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/outlinegraph/pkg/cache"
	"github.com/matzehuels/outlinegraph/pkg/errors"
)

// FileName is the project-local config file looked up in the working directory.
const FileName = "outlinegraph.toml"

// EnvPrefix prefixes every environment variable read by [Load].
const EnvPrefix = "OUTLINEGRAPH_"

// Config holds all settings.
type Config struct {
	Indent    int          `toml:"indent"`
	StrictIDs bool         `toml:"strict_ids"`
	Cache     CacheConfig  `toml:"cache"`
	Render    RenderConfig `toml:"render"`
	Server    ServerConfig `toml:"server"`

	// Source is the TOML file that was read, empty if none.
	Source string `toml:"-"`
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	TTL      Duration `toml:"ttl"`
	Size     int      `toml:"size"`
	RedisURL string   `toml:"redis_url"`
}

// RenderConfig holds render defaults.
type RenderConfig struct {
	Format   string `toml:"format"`
	Detailed bool   `toml:"detailed"`
	RankDir  string `toml:"rankdir"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration decoded from strings like "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// CacheOptions converts the cache section to backend options.
func (c CacheConfig) CacheOptions() cache.Options {
	return cache.Options{
		Backend:  c.Backend,
		Dir:      c.Dir,
		Size:     c.Size,
		RedisURL: c.RedisURL,
	}
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Indent: 2,
		Cache: CacheConfig{
			Backend: cache.BackendFile,
			Dir:     defaultCacheDir(),
			TTL:     Duration{24 * time.Hour},
			Size:    cache.DefaultMemorySize,
		},
		Render: RenderConfig{
			Format:  "svg",
			RankDir: "TB",
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Load resolves the configuration. If path is non-empty the file must
// exist; otherwise the default locations are tried and may be absent.
func Load(path string) (Config, error) {
	cfg := Default()

	file, err := locate(path)
	if err != nil {
		return cfg, err
	}
	if file != "" {
		if _, err := toml.DecodeFile(file, &cfg); err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", file)
		}
		cfg.Source = file
	}

	_ = godotenv.Load()
	if err := applyEnv(&cfg, os.Getenv); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

func locate(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return path, nil
	}
	candidates := []string{FileName}
	if dir := userConfigDir(); dir != "" {
		candidates = append(candidates, filepath.Join(dir, "outlinegraph", "config.toml"))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	get := func(name string) (string, bool) {
		v := strings.TrimSpace(getenv(EnvPrefix + name))
		return v, v != ""
	}

	if v, ok := get("INDENT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%sINDENT", EnvPrefix)
		}
		cfg.Indent = n
	}
	if v, ok := get("STRICT_IDS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%sSTRICT_IDS", EnvPrefix)
		}
		cfg.StrictIDs = b
	}
	if v, ok := get("CACHE_BACKEND"); ok {
		cfg.Cache.Backend = v
	}
	if v, ok := get("CACHE_DIR"); ok {
		cfg.Cache.Dir = v
	}
	if v, ok := get("CACHE_TTL"); ok {
		if err := cfg.Cache.TTL.UnmarshalText([]byte(v)); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%sCACHE_TTL", EnvPrefix)
		}
	}
	if v, ok := get("CACHE_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%sCACHE_SIZE", EnvPrefix)
		}
		cfg.Cache.Size = n
	}
	if v, ok := get("REDIS_URL"); ok {
		cfg.Cache.RedisURL = v
	}
	if v, ok := get("FORMAT"); ok {
		cfg.Render.Format = v
	}
	if v, ok := get("RANKDIR"); ok {
		cfg.Render.RankDir = v
	}
	if v, ok := get("ADDR"); ok {
		cfg.Server.Addr = v
	}
	return nil
}

// Validate checks that all settings are usable.
func (c Config) Validate() error {
	if c.Indent < 1 || c.Indent > 8 {
		return errors.New(errors.ErrCodeInvalidConfig, "indent must be between 1 and 8, got %d", c.Indent)
	}
	switch c.Cache.Backend {
	case cache.BackendNone, cache.BackendMemory:
	case cache.BackendFile:
		if c.Cache.Dir == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "file cache requires cache.dir")
		}
	case cache.BackendRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "redis cache requires cache.redis_url")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	switch c.Render.RankDir {
	case "", "TB", "LR", "BT", "RL":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "render.rankdir must be TB, LR, BT or RL, got %q", c.Render.RankDir)
	}
	return nil
}

func userConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config")
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "outlinegraph")
	}
	return filepath.Join(os.TempDir(), "outlinegraph-cache")
}
