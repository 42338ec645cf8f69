package utils

import (
	"errors"
	"io/fs"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Redis    RedisConfig
	Feed     FeedConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type SessionConfig struct {
	ExpiryHours int
}

// RedisConfig points at the notification stream store. An empty URL disables it.
type RedisConfig struct {
	URL          string
	StreamMaxLen int64
}

type FeedConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "picky-feed")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24*7)
	viper.SetDefault("REDIS_STREAM_MAXLEN", 1000)
	viper.SetDefault("FEED_DEFAULT_PAGE_SIZE", 10)
	viper.SetDefault("FEED_MAX_PAGE_SIZE", 100)

	// .env is optional, the environment wins either way
	if err := viper.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Redis: RedisConfig{
			URL:          viper.GetString("REDIS_URL"),
			StreamMaxLen: viper.GetInt64("REDIS_STREAM_MAXLEN"),
		},
		Feed: FeedConfig{
			DefaultPageSize: viper.GetInt("FEED_DEFAULT_PAGE_SIZE"),
			MaxPageSize:     viper.GetInt("FEED_MAX_PAGE_SIZE"),
		},
	}

	return config, nil
}
