// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultBaseURL is the public Streamtape API endpoint.
const DefaultBaseURL = "https://api.streamtape.com"

type Config struct {
	Server     ServerConfig
	Log        LogConfig
	Streamtape StreamtapeConfig
	Metrics    MetricsConfig
}

type ServerConfig struct {
	Port            string
	Mode            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
	AllowedOrigins  []string
}

type LogConfig struct {
	Level  string
	Format string
}

// StreamtapeConfig holds the upstream credentials and connection pool tuning.
type StreamtapeConfig struct {
	Login        string
	Key          string
	BaseURL      string
	Timeout      time.Duration
	MaxIdleConns int
}

type MetricsConfig struct {
	Enabled bool
}

var (
	once     sync.Once
	instance *Config
	loadErr  error
)

// Load reads the process configuration once. Later calls return the same
// result, including a load error.
func Load() (*Config, error) {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()
		instance, loadErr = Read(viper.New())
	})

	return instance, loadErr
}

// Read builds a Config from the environment through v.
func Read(v *viper.Viper) (*Config, error) {
	// Set default values
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_MODE", "debug")
	v.SetDefault("SERVER_READ_TIMEOUT", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 60)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 5)
	v.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("STREAMTAPE_BASE_URL", DefaultBaseURL)
	v.SetDefault("STREAMTAPE_TIMEOUT", "30s")
	v.SetDefault("STREAMTAPE_MAX_IDLE_CONNS", 100)
	v.SetDefault("METRICS_ENABLED", true)

	// Required keys have no default, so they must be bound explicitly for
	// AutomaticEnv to see them.
	_ = v.BindEnv("STREAMTAPE_API_LOGIN")
	_ = v.BindEnv("STREAMTAPE_API_KEY")

	// Read from environment variables
	v.AutomaticEnv()

	timeout, err := durationOrSeconds(v, "STREAMTAPE_TIMEOUT")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("SERVER_PORT"),
			Mode:            v.GetString("SERVER_MODE"),
			ReadTimeout:     v.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:    v.GetInt("SERVER_WRITE_TIMEOUT"),
			ShutdownTimeout: v.GetInt("SERVER_SHUTDOWN_TIMEOUT"),
			AllowedOrigins:  v.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Streamtape: StreamtapeConfig{
			Login:        strings.TrimSpace(v.GetString("STREAMTAPE_API_LOGIN")),
			Key:          strings.TrimSpace(v.GetString("STREAMTAPE_API_KEY")),
			BaseURL:      strings.TrimSpace(v.GetString("STREAMTAPE_BASE_URL")),
			Timeout:      timeout,
			MaxIdleConns: v.GetInt("STREAMTAPE_MAX_IDLE_CONNS"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// durationOrSeconds reads key as a Go duration ("30s", "1m"). A bare number
// is taken as seconds, like the SERVER_*_TIMEOUT keys.
func durationOrSeconds(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if secs, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsInf(secs, 0) && !math.IsNaN(secs) {
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s %q is not a duration", key, raw)
	}
	return d, nil
}

// Validate reports missing credentials and malformed upstream settings.
func (c *Config) Validate() error {
	var errs []error
	if c.Streamtape.Login == "" {
		errs = append(errs, errors.New("STREAMTAPE_API_LOGIN is required"))
	}
	if c.Streamtape.Key == "" {
		errs = append(errs, errors.New("STREAMTAPE_API_KEY is required"))
	}
	if c.Streamtape.BaseURL == "" {
		c.Streamtape.BaseURL = DefaultBaseURL
	}
	if u, err := url.Parse(c.Streamtape.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("STREAMTAPE_BASE_URL %q is not an absolute URL", c.Streamtape.BaseURL))
	}
	if c.Streamtape.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("STREAMTAPE_TIMEOUT must be positive, got %s", c.Streamtape.Timeout))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
