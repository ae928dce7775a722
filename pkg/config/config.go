// Package config loads optional defaults for the hobohm CLI from a TOML or
// YAML file. Command-line flags always win over file values.
//
// The file is located by, in order: an explicit path, $HOBOHM_CONFIG, and
// $XDG_CONFIG_HOME/hobohm/config.toml (or ~/.config/hobohm/config.toml).
// A missing default file is not an error.
//
// Example config.toml:
//
//	relation = "dist"
//	cutoff = 0.3
//	skip_malformed = true
//
//	[cache]
//	redis_url = "redis://localhost:6379/0"
//	ttl = "72h"
//
//	[server]
//	addr = ":8080"
package config

import (
	goerrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/hobohm/pkg/errors"
	"github.com/matzehuels/hobohm/pkg/neighbor"
)

// EnvConfig names the environment variable holding a config file path.
const EnvConfig = "HOBOHM_CONFIG"

// EnvRedisURL names the environment variable that enables the Redis cache.
const EnvRedisURL = "HOBOHM_REDIS_URL"

// Config holds file-provided defaults. Pointer fields distinguish "unset"
// from zero values.
type Config struct {
	Relation      string   `toml:"relation" yaml:"relation"`
	Cutoff        *float64 `toml:"cutoff" yaml:"cutoff"`
	KeepFile      string   `toml:"keep_file" yaml:"keep_file"`
	SkipMalformed bool     `toml:"skip_malformed" yaml:"skip_malformed"`
	Trace         bool     `toml:"trace" yaml:"trace"`

	Cache  CacheConfig  `toml:"cache" yaml:"cache"`
	Server ServerConfig `toml:"server" yaml:"server"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-" yaml:"-"`
}

// CacheConfig selects and tunes the result cache.
type CacheConfig struct {
	Dir      string        `toml:"dir" yaml:"dir"`
	RedisURL string        `toml:"redis_url" yaml:"redis_url"`
	TTL      time.Duration `toml:"ttl" yaml:"ttl"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr" yaml:"addr"`
}

// DefaultServerAddr is used when no server address is configured.
const DefaultServerAddr = ":8080"

// Load reads the config file at path. An empty path falls back to
// $HOBOHM_CONFIG and then the XDG default location; only an explicitly
// named file must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfig)
		explicit = path != ""
	}
	if !explicit {
		path = DefaultPath()
	}

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := decode(path, data, cfg); err != nil {
				return nil, err
			}
			cfg.Path = path
		case goerrors.Is(err, fs.ErrNotExist) && !explicit:
		case goerrors.Is(err, fs.ErrNotExist):
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		default:
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
		}
	}

	if cfg.Cache.RedisURL == "" {
		cfg.Cache.RedisURL = os.Getenv(EnvRedisURL)
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultServerAddr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml", "":
		_, err = toml.Decode(string(data), cfg)
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (use .toml or .yaml)", filepath.Ext(path))
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return nil
}

// Validate checks the values a config file may set.
func (c *Config) Validate() error {
	if c.Relation != "" {
		if _, err := neighbor.ParseRelation(c.Relation); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "relation")
		}
	}
	if c.Cutoff != nil {
		if err := errors.ValidateCutoff(*c.Cutoff); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "cutoff")
		}
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return nil
}

// DefaultPath returns the XDG config file location, or "" when no home
// directory can be determined.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "hobohm", "config.toml")
}

// DefaultCacheDir returns the XDG cache directory for hobohm.
func DefaultCacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "hobohm"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "hobohm"), nil
}
