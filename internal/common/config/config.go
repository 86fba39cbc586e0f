package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Backend BackendConfig `mapstructure:"backend"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// BackendConfig holds connection settings for the prompt-generation backend.
// The base URL stored in the user's settings always wins; these values only
// apply when that field is empty.
type BackendConfig struct {
	DefaultBaseURL string `mapstructure:"default_base_url"`
	FallbackHost   string `mapstructure:"fallback_host"`
	FallbackPort   int    `mapstructure:"fallback_port"`
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds, 0 = unbounded
}

type StorageConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
	File  FileConfig  `mapstructure:"file"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Enabled reports whether a Redis backend is configured at all.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

type FileConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// MetricsConfig controls the optional Prometheus listener.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// FallbackAddr returns the host:port used to infer a backend URL when the
// user has not configured one.
func (b BackendConfig) FallbackAddr() string {
	return fmt.Sprintf("http://%s:%d", b.FallbackHost, b.FallbackPort)
}
