package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Geocoder GeocoderConfig
	Locator  LocatorConfig
	Session  SessionConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type LogConfig struct {
	Level string
}

// DatabaseConfig is the optional directory source. When Host is empty the
// service runs on the built-in seed directories.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig is the optional reverse-geocode cache. Disabled when Host is empty.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	GeocodeCacheTTL time.Duration
}

type GeocoderConfig struct {
	BaseURL        string
	UserAgent      string
	RequestTimeout int // seconds
}

// LocatorConfig points at the current-position provider. An empty BaseURL
// means the geolocation capability is unsupported.
type LocatorConfig struct {
	BaseURL        string
	RequestTimeout int // seconds
	FixTimeout     time.Duration
}

type SessionConfig struct {
	IdleTTL time.Duration
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Running without a .env file is fine; env vars and defaults apply.
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetInt("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			GeocodeCacheTTL: time.Duration(viper.GetInt("GEOCODE_CACHE_TTL")) * time.Second,
		},
		Geocoder: GeocoderConfig{
			BaseURL:        viper.GetString("GEOCODER_BASE_URL"),
			UserAgent:      viper.GetString("GEOCODER_USER_AGENT"),
			RequestTimeout: viper.GetInt("GEOCODER_TIMEOUT"),
		},
		Locator: LocatorConfig{
			BaseURL:        viper.GetString("LOCATOR_BASE_URL"),
			RequestTimeout: viper.GetInt("LOCATOR_TIMEOUT"),
			FixTimeout:     time.Duration(viper.GetInt("GEOLOCATION_FIX_TIMEOUT")) * time.Second,
		},
		Session: SessionConfig{
			IdleTTL: time.Duration(viper.GetInt("SESSION_IDLE_TTL")) * time.Second,
		},
	}

	// Defaults for the POC: everything runs locally with no external config.
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Cache.GeocodeCacheTTL == 0 {
		cfg.Cache.GeocodeCacheTTL = 24 * time.Hour
	}
	if cfg.Geocoder.BaseURL == "" {
		cfg.Geocoder.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.Geocoder.UserAgent == "" {
		cfg.Geocoder.UserAgent = "poc-address-finder/1.0"
	}
	if cfg.Geocoder.RequestTimeout == 0 {
		cfg.Geocoder.RequestTimeout = 10
	}
	if cfg.Locator.RequestTimeout == 0 {
		cfg.Locator.RequestTimeout = 10
	}
	if cfg.Locator.FixTimeout == 0 {
		cfg.Locator.FixTimeout = 10 * time.Second
	}
	if cfg.Session.IdleTTL == 0 {
		cfg.Session.IdleTTL = 30 * time.Minute
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// DirectorySourceConfigured reports whether a database directory source is set.
func (c *Config) DirectorySourceConfigured() bool {
	return c.Database.Host != ""
}

// CacheConfigured reports whether the redis geocode cache is set.
func (c *Config) CacheConfigured() bool {
	return c.Redis.Host != ""
}

// LocatorConfigured reports whether the current-position capability is set.
func (c *Config) LocatorConfigured() bool {
	return c.Locator.BaseURL != ""
}
