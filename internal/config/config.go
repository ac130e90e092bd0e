// Package config loads circlet settings from flags, CIRCLET_* environment
// variables, an optional circlet.yaml and an optional .env file.
//
// Priority is flag > env > file > default.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Viper keys.
const (
	KeyConfigFile    = "config"
	KeyDB            = "db"
	KeyStore         = "store"
	KeyRedisAddr     = "redis.addr"
	KeyRedisPassword = "redis.password"
	KeyRedisDB       = "redis.db"
	KeyRedisPrefix   = "redis.prefix"
	KeyLogLevel      = "log.level"
	KeyLogFile       = "log.file"
	KeyStartGuard    = "tutorial.start_guard"
	KeyMetricsAddr   = "metrics.addr"
)

const envPrefix = "CIRCLET"

// Config is the resolved configuration.
type Config struct {
	DB    string
	Store string `validate:"oneof=sqlite memory redis"`
	Redis Redis
	Log   Log

	StartGuard  time.Duration `validate:"gte=0"`
	MetricsAddr string        `validate:"omitempty,hostname_port"`

	// ConfigFile is the file that was read, empty when none was found.
	ConfigFile string
}

type Redis struct {
	Addr     string `validate:"required_if=Enabled true"`
	Password string
	DB       int `validate:"gte=0"`
	Prefix   string

	Enabled bool
}

type Log struct {
	Level string `validate:"omitempty,oneof=debug info warn error"`
	File  string
}

var validate = validator.New()

// NewViper returns a viper instance with defaults and environment binding.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyStore, StoreSQLite)
	v.SetDefault(KeyRedisAddr, "localhost:6379")
	v.SetDefault(KeyRedisDB, 0)
	v.SetDefault(KeyRedisPrefix, "circlet:")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyStartGuard, time.Second)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("circlet")
	v.SetConfigType("yaml")
	if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")
	return v
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are skipped and existing variables win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load reads the optional config file and resolves v into a Config.
func Load(v *viper.Viper) (Config, error) {
	if f := v.GetString(KeyConfigFile); f != "" {
		v.SetConfigFile(f)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		DB:    v.GetString(KeyDB),
		Store: strings.ToLower(v.GetString(KeyStore)),
		Redis: Redis{
			Addr:     v.GetString(KeyRedisAddr),
			Password: v.GetString(KeyRedisPassword),
			DB:       v.GetInt(KeyRedisDB),
			Prefix:   v.GetString(KeyRedisPrefix),
		},
		Log: Log{
			Level: strings.ToLower(v.GetString(KeyLogLevel)),
			File:  v.GetString(KeyLogFile),
		},
		StartGuard:  v.GetDuration(KeyStartGuard),
		MetricsAddr: v.GetString(KeyMetricsAddr),
		ConfigFile:  v.ConfigFileUsed(),
	}
	cfg.Redis.Enabled = cfg.Store == StoreRedis

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func configDir() (string, error) {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "circlet"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "circlet"), nil
}
