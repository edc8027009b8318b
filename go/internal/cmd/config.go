package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the server settings. Values from the yaml file are the
// defaults; PORT and STORAGE_BACKEND env vars override.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Storage struct {
		// Backend selects session persistence: "memory" or "postgres".
		Backend string `yaml:"backend"`
	} `yaml:"storage"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
}

func defaultConfig() *Config {
	var config Config
	config.Server.Port = "8081"
	config.Storage.Backend = "memory"
	config.CORS.AllowedOrigins = []string{"http://localhost:5173"}
	return &config
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	config.Server.Port = getEnv("PORT", config.Server.Port)
	config.Storage.Backend = getEnv("STORAGE_BACKEND", config.Storage.Backend)

	return config, nil
}
