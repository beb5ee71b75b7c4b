package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Store struct {
		DataFile string `yaml:"data_file"`
		UsersDSN string `yaml:"users_dsn"`
	} `yaml:"store"`
	Auth struct {
		JWTSecret      string        `yaml:"jwt_secret"`
		TokenTTL       time.Duration `yaml:"token_ttl"`
		BcryptCost     int           `yaml:"bcrypt_cost"`
		LoginBurst     float64       `yaml:"login_burst"`
		LoginPerSecond float64       `yaml:"login_per_second"`
	} `yaml:"auth"`
	Weather struct {
		BaseURL  string        `yaml:"base_url"`
		Timezone string        `yaml:"timezone"`
		Timeout  time.Duration `yaml:"timeout"`
		CacheTTL time.Duration `yaml:"cache_ttl"`
		Redis    struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"weather"`
	Predictor struct {
		MinSamples   int     `yaml:"min_samples"`
		RecentWindow int     `yaml:"recent_window"`
		TestFraction float64 `yaml:"test_fraction"`
		SplitSeed    int64   `yaml:"split_seed"`
	} `yaml:"predictor"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("FARMPULSE_JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("FARMPULSE_DATA_FILE"); v != "" {
		c.Store.DataFile = v
	}
	if v := os.Getenv("FARMPULSE_USERS_DSN"); v != "" {
		c.Store.UsersDSN = v
	}
	if v := os.Getenv("FARMPULSE_WEATHER_URL"); v != "" {
		c.Weather.BaseURL = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Store.DataFile == "" {
		c.Store.DataFile = "market_data.json"
	}
	if c.Store.UsersDSN == "" {
		c.Store.UsersDSN = "file:users.db?_busy_timeout=5000"
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}
	if c.Auth.LoginBurst == 0 {
		c.Auth.LoginBurst = 5
	}
	if c.Auth.LoginPerSecond == 0 {
		c.Auth.LoginPerSecond = 0.5
	}
	if c.Weather.BaseURL == "" {
		c.Weather.BaseURL = "https://api.open-meteo.com/v1/forecast"
	}
	if c.Weather.Timezone == "" {
		c.Weather.Timezone = "Asia/Colombo"
	}
	if c.Weather.Timeout == 0 {
		c.Weather.Timeout = 10 * time.Second
	}
	if c.Weather.CacheTTL == 0 {
		c.Weather.CacheTTL = 10 * time.Minute
	}
	if c.Predictor.MinSamples == 0 {
		c.Predictor.MinSamples = 3
	}
	if c.Predictor.RecentWindow == 0 {
		c.Predictor.RecentWindow = 5
	}
	if c.Predictor.TestFraction == 0 {
		c.Predictor.TestFraction = 0.2
	}
	if c.Predictor.SplitSeed == 0 {
		c.Predictor.SplitSeed = 42
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Auth.JWTSecret == "" && c.Environment == "production" {
		return fmt.Errorf("auth.jwt_secret is required in production")
	}
	if c.Predictor.TestFraction <= 0 || c.Predictor.TestFraction >= 1 {
		return fmt.Errorf("predictor.test_fraction must be in (0, 1)")
	}
	return nil
}
