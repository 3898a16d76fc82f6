// Package config loads application settings from flags, WORDIZ_ environment
// variables, an optional YAML file and built-in defaults, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. WORDIZ_BACKEND.
const EnvPrefix = "WORDIZ"

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Keys usable with viper.BindPFlag.
const (
	KeyBackend       = "backend"
	KeyDB            = "db"
	KeyContent       = "content"
	KeyRedisAddr     = "redis.addr"
	KeyRedisPassword = "redis.password"
	KeyRedisDB       = "redis.db"
	KeyRedisPrefix   = "redis.prefix"
	KeyLogLevel      = "log.level"
	KeyLogFile       = "log.file"
	KeyTokenTTL      = "auth.token_ttl"
)

// Config holds all application configuration.
type Config struct {
	Backend string      `mapstructure:"backend" validate:"required,oneof=sqlite redis memory"`
	DBPath  string      `mapstructure:"db"`
	Content string      `mapstructure:"content"`
	Redis   RedisConfig `mapstructure:"redis"`
	Log     LogConfig   `mapstructure:"log"`
	Auth    AuthConfig  `mapstructure:"auth"`
}

// RedisConfig is used when Backend is "redis".
type RedisConfig struct {
	Addr     string `mapstructure:"addr" validate:"omitempty,hostname_port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0,lte=15"`
	Prefix   string `mapstructure:"prefix"`
}

// LogConfig selects the log level and file. An empty File puts the log next
// to the data directory.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	File  string `mapstructure:"file"`
}

// AuthConfig controls session tokens.
type AuthConfig struct {
	TokenTTL time.Duration `mapstructure:"token_ttl" validate:"gt=0"`
}

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// NewViper returns a viper instance with defaults and environment binding
// set up. Callers bind flags to it before calling Load.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyBackend, BackendSQLite)
	v.SetDefault(KeyDB, "")
	v.SetDefault(KeyContent, "")
	v.SetDefault(KeyRedisAddr, "localhost:6379")
	v.SetDefault(KeyRedisPassword, "")
	v.SetDefault(KeyRedisDB, 0)
	v.SetDefault(KeyRedisPrefix, "wordiz:")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyTokenTTL, 30*24*time.Hour)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file, if any, and returns the validated settings.
// An explicit path must exist; otherwise config.yaml in DefaultDir is used
// when present.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if dir, err := DefaultDir(); err == nil {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Backend = strings.ToLower(cfg.Backend)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field rules and the redis address requirement.
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Backend == BackendRedis && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis backend needs redis.addr", ErrInvalid)
	}
	return nil
}

// DefaultDir returns $XDG_CONFIG_HOME/wordiz, falling back to
// ~/.config/wordiz.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "wordiz"), nil
}
