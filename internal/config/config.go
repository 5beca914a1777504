package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Backend   string          `yaml:"backend"`
	DB        DBConfig        `yaml:"db"`
	Postgrest PostgrestConfig `yaml:"postgrest"`
	Log       LogConfig       `yaml:"log"`
	Transport TransportConfig `yaml:"transport"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DBConfig configures the embedded sqlite backend.
type DBConfig struct {
	Path string `yaml:"path"`
}

// PostgrestConfig configures the hosted backend.
type PostgrestConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Backend: "sqlite",
		DB: DBConfig{
			Path: "atelier.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Transport: TransportConfig{
			Mode: "stdio",
		},
	}

	if path := os.Getenv("ATELIER_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("ATELIER_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("ATELIER_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ATELIER_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if backend := os.Getenv("ATELIER_BACKEND"); backend != "" {
		cfg.Backend = backend
	}
	if dbPath := os.Getenv("ATELIER_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if url := os.Getenv("ATELIER_POSTGREST_URL"); url != "" {
		cfg.Postgrest.URL = url
	}
	if key := os.Getenv("ATELIER_POSTGREST_API_KEY"); key != "" {
		cfg.Postgrest.APIKey = key
	}
	if level := os.Getenv("ATELIER_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if mode := os.Getenv("ATELIER_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}

	if cfg.Backend != "sqlite" && cfg.Backend != "postgrest" {
		return Config{}, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	if cfg.Backend == "postgrest" && cfg.Postgrest.URL == "" {
		return Config{}, fmt.Errorf("postgrest backend requires ATELIER_POSTGREST_URL")
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
