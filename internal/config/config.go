package config

// Config represents the top-level config.yaml structure.
type Config struct {
	Environment string        `yaml:"environment"`
	Server      ServerConfig  `yaml:"server"`
	Metrics     MetricsConfig `yaml:"metrics"`
	Cache       CacheConfig   `yaml:"cache"`
	Search      SearchConfig  `yaml:"search"`
	AI          AIConfig      `yaml:"ai"`
}

// ServerConfig holds the HTTP front-door settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// MetricsConfig holds the dedicated Prometheus listener settings. An explicit
// port of 0 disables the listener.
type MetricsConfig struct {
	Port *int `yaml:"port,omitempty"`
}

// CacheConfig selects the cache backend and the per-namespace TTLs.
type CacheConfig struct {
	Type              string `yaml:"type"`
	RedisAddr         string `yaml:"redis_addr,omitempty"`
	RedisPassword     string `yaml:"redis_password,omitempty"`
	ResultTTLSeconds  int    `yaml:"result_ttl_seconds"`
	ExtractTTLSeconds int    `yaml:"extract_ttl_seconds"`
}

// SearchConfig holds the shopping-search provider settings.
type SearchConfig struct {
	APIKey         string `yaml:"api_key"`
	APIBase        string `yaml:"api_base,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxResults     int    `yaml:"max_results"`
}

// AIConfig holds the generative text model settings.
type AIConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// IsProduction gates error detail in 500 responses.
func (c *Config) IsProduction() bool {
	return c.Environment != "development"
}
