package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a config.yaml file and returns a Config with environment
// variables resolved, defaults applied, and required fields validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	resolveEnvVars(&cfg)
	setDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func resolveEnvVars(cfg *Config) {
	cfg.Search.APIKey = ResolveEnvVar(cfg.Search.APIKey)
	cfg.AI.APIKey = ResolveEnvVar(cfg.AI.APIKey)
	cfg.Cache.RedisAddr = ResolveEnvVar(cfg.Cache.RedisAddr)
	cfg.Cache.RedisPassword = ResolveEnvVar(cfg.Cache.RedisPassword)
}

func setDefaults(cfg *Config) {
	if cfg.Environment == "" {
		cfg.Environment = "production"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Cache.Type == "" {
		cfg.Cache.Type = "memory"
	}
	if cfg.Cache.ResultTTLSeconds == 0 {
		cfg.Cache.ResultTTLSeconds = 7200
	}
	if cfg.Cache.ExtractTTLSeconds == 0 {
		cfg.Cache.ExtractTTLSeconds = 7200
	}
	if cfg.Search.TimeoutSeconds == 0 {
		cfg.Search.TimeoutSeconds = 30
	}
	if cfg.Search.MaxResults == 0 {
		cfg.Search.MaxResults = 100
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gemini-1.5-flash"
	}
}

// Validate checks the fields the pipeline cannot run without.
func Validate(cfg *Config) error {
	if cfg.Search.APIKey == "" {
		return fmt.Errorf("search.api_key is required (set SERPAPI_KEY)")
	}
	if cfg.AI.APIKey == "" {
		return fmt.Errorf("ai.api_key is required (set GEMINI_API_KEY)")
	}
	if cfg.Cache.Type == "redis" && cfg.Cache.RedisAddr == "" {
		return fmt.Errorf("cache.redis_addr is required for cache.type redis")
	}
	return nil
}
