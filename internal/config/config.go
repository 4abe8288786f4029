package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Session  SessionConfig  `mapstructure:"session"`
	Listing  ListingConfig  `mapstructure:"listing"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	RateLimit struct {
		Enabled bool    `mapstructure:"enabled"`
		RPS     float64 `mapstructure:"requests_per_second"`
		Burst   int     `mapstructure:"burst"`
	} `mapstructure:"rate_limit"`
	Monitoring struct {
		PrometheusEnabled bool   `mapstructure:"prometheus_enabled"`
		MetricsPath       string `mapstructure:"metrics_path"`
	} `mapstructure:"monitoring"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type UpstreamConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Breaker struct {
		MaxFailures int           `mapstructure:"max_failures"`
		Timeout     time.Duration `mapstructure:"timeout"`
	} `mapstructure:"breaker"`
}

type SessionConfig struct {
	// File holding the token and user profile across restarts.
	File string `mapstructure:"file"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type ListingConfig struct {
	// ReversePatients flips the server order of the patient list. A display
	// preference, not a correctness requirement.
	ReversePatients bool `mapstructure:"reverse_patients"`
}

// envOverrides are applied on top of the config file, ENVCONFIG style.
type envOverrides struct {
	Port            int    `envconfig:"PORT"`
	UpstreamBaseURL string `envconfig:"UPSTREAM_BASE_URL"`
	SessionFile     string `envconfig:"SESSION_FILE"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process("CHW", &env); err != nil {
		return nil, fmt.Errorf("failed to read environment overrides: %w", err)
	}
	if env.Port != 0 {
		config.Server.Port = env.Port
	}
	if env.UpstreamBaseURL != "" {
		config.Upstream.BaseURL = env.UpstreamBaseURL
	}
	if env.SessionFile != "" {
		config.Session.File = env.SessionFile
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 3000
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Upstream.BaseURL == "" {
		c.Upstream.BaseURL = "http://127.0.0.1:8000"
	}
	if c.Upstream.Timeout == 0 {
		c.Upstream.Timeout = 15 * time.Second
	}
	if c.Session.File == "" {
		c.Session.File = ".community-health-session.json"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}
