// Package config loads deckeditor settings.
//
// Settings are layered, later layers winning:
//
//  1. built-in defaults ([Default])
//  2. TOML files, in the order given to [Load] (see [DefaultPaths])
//  3. .env files, which only fill variables not already in the environment
//  4. DECKEDITOR_* environment variables
//
// Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	errs "github.com/mikecinchan/tcg-deck-editor/pkg/errors"
)

const (
	appName  = "deckeditor"
	fileName = appName + ".toml"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the full application configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Catalog CatalogConfig `toml:"catalog"`
	Source  SourceConfig  `toml:"source"`
	Cache   CacheConfig   `toml:"cache"`
	Mongo   MongoConfig   `toml:"mongo"`
	Auth    AuthConfig    `toml:"auth"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// CatalogConfig tunes catalog fetching and caching.
type CatalogConfig struct {
	TTL        Duration `toml:"ttl"`
	Timeout    Duration `toml:"timeout"`
	Attempts   int      `toml:"attempts"`
	BatchSize  int      `toml:"batch_size"`
	SkipEnrich bool     `toml:"skip_enrich"`
	Seed       bool     `toml:"seed"`
}

// SourceConfig points at the TCGdex API.
type SourceConfig struct {
	BaseURL  string  `toml:"base_url"`
	Language string  `toml:"language"`
	Serie    string  `toml:"serie"`
	RPS      float64 `toml:"rps"`
	Burst    int     `toml:"burst"`
}

// CacheConfig selects the response cache backend.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	TTL           Duration `toml:"ttl"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
}

// MongoConfig configures deck persistence. An empty URI keeps decks in memory.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// AuthConfig configures bearer token verification.
type AuthConfig struct {
	Secret string `toml:"secret"`
	Issuer string `toml:"issuer"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     Duration(15 * time.Second),
			WriteTimeout:    Duration(60 * time.Second),
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Catalog: CatalogConfig{
			TTL:       Duration(24 * time.Hour),
			Timeout:   Duration(30 * time.Second),
			Attempts:  3,
			BatchSize: 10,
			Seed:      true,
		},
		Source: SourceConfig{
			BaseURL:  "https://api.tcgdex.net/v2",
			Language: "en",
			Serie:    "tcgp",
			RPS:      20,
			Burst:    10,
		},
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     Duration(24 * time.Hour),
		},
		Mongo: MongoConfig{Database: appName},
	}
}

// DefaultPaths returns the config files read by default: the user file
// (~/.config/deckeditor/config.toml, honoring XDG_CONFIG_HOME) and
// ./deckeditor.toml.
func DefaultPaths() []string {
	var paths []string
	if dir, err := configDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "config.toml"))
	}
	return append(paths, fileName)
}

// Load builds a Config from defaults, the TOML files in paths, the .env
// files in envFiles and the environment. Missing files are skipped.
func Load(paths, envFiles []string) (*Config, error) {
	cfg := Default()
	for _, p := range paths {
		if err := cfg.decodeFile(p); err != nil {
			return nil, err
		}
	}
	for _, p := range envFiles {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", p, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("parse %s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

// Validate reports the first inconsistent setting.
func (c *Config) Validate() error {
	if err := errs.ValidateAddr(c.Server.Addr); err != nil {
		return fmt.Errorf("server: addr: %s", errs.UserMessage(err))
	}
	if err := errs.ValidateURL(c.Source.BaseURL); err != nil {
		return fmt.Errorf("source: base_url: %s", errs.UserMessage(err))
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New("cache: redis backend requires redis_addr")
		}
		if err := errs.ValidateAddr(c.Cache.RedisAddr); err != nil {
			return fmt.Errorf("cache: redis_addr: %s", errs.UserMessage(err))
		}
	default:
		return fmt.Errorf("cache: unknown backend %q", c.Cache.Backend)
	}
	if c.Catalog.Attempts < 1 {
		return errors.New("catalog: attempts must be at least 1")
	}
	if c.Catalog.BatchSize < 1 {
		return errors.New("catalog: batch_size must be at least 1")
	}
	if c.Source.RPS < 0 {
		return errors.New("source: rps must not be negative")
	}
	return nil
}

// CacheDir returns the response cache directory: the configured dir, or
// $XDG_CACHE_HOME/deckeditor, or ~/.cache/deckeditor.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// Duration is a time.Duration written as a string ("30s", "24h") in TOML.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}
