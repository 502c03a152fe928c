package cli

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jinwoohan/plotgrid/pkg/cache"
	"github.com/jinwoohan/plotgrid/pkg/errors"
	"github.com/jinwoohan/plotgrid/pkg/zoning"
)

// redisConnectTimeout bounds the startup ping to a configured Redis backend.
const redisConnectTimeout = 5 * time.Second

// Config is the CLI configuration, loaded from a TOML file.
//
// All fields are optional; zero values fall back to the pipeline defaults.
type Config struct {
	Grid   GridConfig   `toml:"grid"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Zones  ZonesConfig  `toml:"zones"`
}

// GridConfig overrides the construction grid parameters.
type GridConfig struct {
	Size  float64 `toml:"size"`
	Steps int     `toml:"steps"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	// Backend is one of "file", "redis", or "none". Empty means "file".
	Backend string `toml:"backend"`

	// Dir is the FileCache directory. Empty means ~/.cache/plotgrid/.
	Dir string `toml:"dir"`

	// Redis connection settings, used when Backend is "redis".
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// ZonesConfig points at a regulation table override file.
type ZonesConfig struct {
	Table string `toml:"table"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Cache:  CacheConfig{Backend: "file"},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// defaultConfigPath returns ~/.config/plotgrid/config.toml, honoring
// XDG_CONFIG_HOME.
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads the config file at path, layered over the defaults.
// An empty path means the default location; a missing file at the default
// location is not an error, but an explicitly named missing file is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		var err error
		path, err = defaultConfigPath()
		if err != nil {
			return cfg, nil
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return cfg, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	switch cfg.Cache.Backend {
	case "", "file", "redis", "none":
	default:
		return cfg, errors.New(errors.ErrCodeInvalidConfig,
			"invalid cache backend %q (must be file, redis, or none)", cfg.Cache.Backend)
	}

	return cfg, nil
}

// OpenCache opens the configured cache backend.
func (c Config) OpenCache() (cache.Cache, error) {
	switch c.Cache.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), redisConnectTimeout)
		defer cancel()
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
		})
	default:
		dir := c.Cache.Dir
		if dir == "" {
			var err error
			dir, err = cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	}
}

// Table loads the regulation table, applying the configured override file
// when one is set.
func (c Config) Table() (zoning.Table, error) {
	if c.Zones.Table == "" {
		return zoning.DefaultTable(), nil
	}
	return zoning.LoadTable(c.Zones.Table)
}
