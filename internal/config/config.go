package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config captures all runtime configuration. Values come from the
// environment, optionally seeded by a .env file in the working directory.
type Config struct {
	Port             string
	IMDBAPIURL       string
	IMDBAPIHost      string
	IMDBAPIKey       string
	IMDBTimeoutSecs  int
	ReadTimeoutSecs  int
	WriteTimeoutSecs int
	IdleTimeoutSecs  int
	Debug            bool
	LogPath          string
}

// Load reads configuration, applying defaults and validation.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	v.SetDefault("PORT", "8080")
	v.SetDefault("IMDB_TIMEOUT_SECS", 10)
	v.SetDefault("SERVER_READ_TIMEOUT", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 15)
	v.SetDefault("SERVER_IDLE_TIMEOUT", 60)
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")

	// The .env file is a local-dev convenience; absence is not an error.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	v.AutomaticEnv()

	cfg := Config{
		Port:             v.GetString("PORT"),
		IMDBAPIURL:       v.GetString("IMDB_API_URL"),
		IMDBAPIHost:      v.GetString("IMDB_API_HOST"),
		IMDBAPIKey:       v.GetString("IMDB_API_KEY"),
		IMDBTimeoutSecs:  v.GetInt("IMDB_TIMEOUT_SECS"),
		ReadTimeoutSecs:  v.GetInt("SERVER_READ_TIMEOUT"),
		WriteTimeoutSecs: v.GetInt("SERVER_WRITE_TIMEOUT"),
		IdleTimeoutSecs:  v.GetInt("SERVER_IDLE_TIMEOUT"),
		Debug:            v.GetBool("DEBUG"),
		LogPath:          v.GetString("LOG_PATH"),
	}

	if cfg.IMDBAPIURL == "" {
		return Config{}, fmt.Errorf("IMDB_API_URL is required")
	}
	if cfg.IMDBAPIHost == "" {
		return Config{}, fmt.Errorf("IMDB_API_HOST is required")
	}
	if cfg.IMDBAPIKey == "" {
		return Config{}, fmt.Errorf("IMDB_API_KEY is required")
	}
	if cfg.IMDBTimeoutSecs <= 0 {
		return Config{}, fmt.Errorf("IMDB_TIMEOUT_SECS must be positive")
	}
	if cfg.ReadTimeoutSecs <= 0 || cfg.WriteTimeoutSecs <= 0 || cfg.IdleTimeoutSecs <= 0 {
		return Config{}, fmt.Errorf("server timeouts must be positive")
	}

	return cfg, nil
}
