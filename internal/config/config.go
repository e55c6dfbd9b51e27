package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config is the client configuration.
type Config struct {
	API     APIConfig    `json:"api"`
	DataDir string       `json:"data_dir"`
	Log     LogConfig    `json:"log"`
	Server  ServerConfig `json:"server"`
}

// APIConfig points the client at a planning backend.
type APIConfig struct {
	BaseURL string        `json:"base_url"`
	Timeout time.Duration `json:"timeout"`
}

// LogConfig controls log verbosity.
type LogConfig struct {
	Level string `json:"level"`
}

// ServerConfig configures the development stub backend (planitd).
type ServerConfig struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	JWTSecret string `json:"jwt_secret"`
}

// Load reads configuration from ./config.json or ~/.planit/config.json, with
// PLANIT_* environment overrides. Missing files fall back to defaults.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.AddConfigPath(".")

	homeDir, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(filepath.Join(homeDir, ".planit"))
	}

	viper.SetDefault("api.base_url", "http://localhost:8080")
	viper.SetDefault("api.timeout", 60*time.Second)
	viper.SetDefault("data_dir", defaultDataDir(homeDir))
	viper.SetDefault("log.level", "info")
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.jwt_secret", "")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	loadEnvOverrides(&cfg)

	return &cfg, nil
}

func defaultDataDir(homeDir string) string {
	if homeDir == "" {
		return ".planit"
	}
	return filepath.Join(homeDir, ".planit")
}

func loadEnvOverrides(cfg *Config) {
	if v := os.Getenv("PLANIT_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("PLANIT_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("PLANIT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PLANIT_JWT_SECRET"); v != "" {
		cfg.Server.JWTSecret = v
	}
}
