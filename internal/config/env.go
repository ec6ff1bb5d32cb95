package config

import (
	"fmt"
	"strconv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DECKEDITOR_"

type envVar struct {
	name string
	set  func(c *Config, v string) error
}

// envVars maps DECKEDITOR_<NAME> to the field it overrides.
var envVars = []envVar{
	{"SERVER_ADDR", str(func(c *Config) *string { return &c.Server.Addr })},
	{"CATALOG_TTL", dur(func(c *Config) *Duration { return &c.Catalog.TTL })},
	{"CATALOG_TIMEOUT", dur(func(c *Config) *Duration { return &c.Catalog.Timeout })},
	{"CATALOG_ATTEMPTS", integer(func(c *Config) *int { return &c.Catalog.Attempts })},
	{"CATALOG_BATCH_SIZE", integer(func(c *Config) *int { return &c.Catalog.BatchSize })},
	{"CATALOG_SKIP_ENRICH", boolean(func(c *Config) *bool { return &c.Catalog.SkipEnrich })},
	{"CATALOG_SEED", boolean(func(c *Config) *bool { return &c.Catalog.Seed })},
	{"SOURCE_BASE_URL", str(func(c *Config) *string { return &c.Source.BaseURL })},
	{"SOURCE_LANGUAGE", str(func(c *Config) *string { return &c.Source.Language })},
	{"SOURCE_RPS", float(func(c *Config) *float64 { return &c.Source.RPS })},
	{"CACHE_BACKEND", str(func(c *Config) *string { return &c.Cache.Backend })},
	{"CACHE_DIR", str(func(c *Config) *string { return &c.Cache.Dir })},
	{"REDIS_ADDR", str(func(c *Config) *string { return &c.Cache.RedisAddr })},
	{"REDIS_PASSWORD", str(func(c *Config) *string { return &c.Cache.RedisPassword })},
	{"MONGO_URI", str(func(c *Config) *string { return &c.Mongo.URI })},
	{"MONGO_DATABASE", str(func(c *Config) *string { return &c.Mongo.Database })},
	{"AUTH_SECRET", str(func(c *Config) *string { return &c.Auth.Secret })},
	{"AUTH_ISSUER", str(func(c *Config) *string { return &c.Auth.Issuer })},
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	for _, e := range envVars {
		v, ok := lookup(EnvPrefix + e.name)
		if !ok {
			continue
		}
		if err := e.set(c, v); err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, e.name, err)
		}
	}
	return nil
}

func str(field func(*Config) *string) func(*Config, string) error {
	return func(c *Config, v string) error {
		*field(c) = v
		return nil
	}
}

func integer(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func float(field func(*Config) *float64) func(*Config, string) error {
	return func(c *Config, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		*field(c) = f
		return nil
	}
}

func boolean(field func(*Config) *bool) func(*Config, string) error {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}

func dur(field func(*Config) *Duration) func(*Config, string) error {
	return func(c *Config, v string) error {
		return field(c).UnmarshalText([]byte(v))
	}
}
