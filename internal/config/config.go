// Package config loads turnstile settings from a config file, the environment and flags.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/turnstile"
	"github.com/aretw0/turnstile/pkg/adapters/file"
	"github.com/aretw0/turnstile/pkg/adapters/memory"
	"github.com/aretw0/turnstile/pkg/adapters/redis"
	"github.com/aretw0/turnstile/pkg/codec"
	"github.com/aretw0/turnstile/pkg/ports"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. TURNSTILE_STORE_DRIVER.
const EnvPrefix = "TURNSTILE"

// Store drivers.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

// ErrUnknownDriver is returned for store drivers other than memory, file and redis.
var ErrUnknownDriver = errors.New("unknown store driver")

// Config holds every setting of the CLI and servers.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Store  StoreConfig  `mapstructure:"store"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Server ServerConfig `mapstructure:"server"`

	// Automata are descriptions declared inline, stored at startup.
	// Viper lowercases map keys, so names declared here are lowercase.
	Automata map[string]map[string]any `mapstructure:"automata"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type ServerConfig struct {
	Addr    string `mapstructure:"addr"`
	Metrics bool   `mapstructure:"metrics"`
}

// SetDefaults registers every key with its default, which also makes each key
// visible to environment overrides.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("store.driver", DriverFile)
	v.SetDefault("store.path", file.DefaultPath)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", redis.DefaultPrefix)
	v.SetDefault("redis.ttl", time.Duration(0))
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.metrics", true)
}

// New prepares a viper instance reading path, or turnstile.yaml from the working
// directory or home directory when path is empty, plus TURNSTILE_* variables.
func New(path string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("turnstile")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Read loads the config file, if any, and decodes the settings.
// A missing file is only an error when it was named explicitly.
func Read(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return Decode(v)
}

// Decode unmarshals the current settings without reading files.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// OpenStore builds the AutomatonStore selected by Store.Driver.
// The returned func releases the store's connections.
func (c *Config) OpenStore(ctx context.Context) (ports.AutomatonStore, func() error, error) {
	noop := func() error { return nil }
	switch strings.ToLower(c.Store.Driver) {
	case DriverMemory:
		return memory.NewStore(), noop, nil
	case DriverFile, "":
		return file.NewStore(c.Store.Path), noop, nil
	case DriverRedis:
		opts := []redis.Option{redis.WithTTL(c.Redis.TTL)}
		if c.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(c.Redis.Prefix))
		}
		store := redis.New(c.Redis.Addr, c.Redis.Password, c.Redis.DB, opts...)
		if err := store.Ping(ctx); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("redis %s unreachable: %w", c.Redis.Addr, err)
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownDriver, c.Store.Driver)
	}
}

// Preload stores every inline automaton in the registry, in name order.
func (c *Config) Preload(ctx context.Context, reg *turnstile.Registry) error {
	names := make([]string, 0, len(c.Automata))
	for name := range c.Automata {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		desc, err := codec.DecodeMap(c.Automata[name])
		if err != nil {
			return fmt.Errorf("automata.%s: %w", name, err)
		}
		if _, err := reg.PutDescription(ctx, name, desc); err != nil {
			return fmt.Errorf("automata.%s: %w", name, err)
		}
	}
	return nil
}
