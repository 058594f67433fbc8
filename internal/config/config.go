package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// RedisConfig holds connection settings for the redis store backend.
type RedisConfig struct {
	Address   string `yaml:"address"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		Debug    bool   `yaml:"debug"`
	} `yaml:"telegram"`

	Store struct {
		Backend string      `yaml:"backend"` // "file" or "redis"
		Path    string      `yaml:"path"`
		Redis   RedisConfig `yaml:"redis"`
	} `yaml:"store"`

	Hours struct {
		Open  int `yaml:"open"`
		Close int `yaml:"close"`
	} `yaml:"hours"`

	Booking struct {
		LockTimeoutSeconds int `yaml:"lock_timeout_seconds"`
		MaxSuggestions     int `yaml:"max_suggestions"`
	} `yaml:"booking"`

	Audit struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"audit"`

	Monitoring struct {
		StatusPort        int  `yaml:"status_port"`
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
	} `yaml:"monitoring"`

	Managers []int64 `yaml:"managers"`
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = "configs/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Support ${ENV_VAR} placeholders in YAML config.
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if cfg.Hours.Open < 0 || cfg.Hours.Close > 24 || cfg.Hours.Open >= cfg.Hours.Close {
		return nil, fmt.Errorf("invalid business hours %d-%d", cfg.Hours.Open, cfg.Hours.Close)
	}

	for _, p := range []string{cfg.Store.Path, cfg.Audit.Path} {
		if p == "" {
			continue
		}
		if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Store.Backend == "" {
		c.Store.Backend = "file"
	}
	if c.Store.Path == "" {
		c.Store.Path = "data/rooms.json"
	}
	if c.Hours.Open == 0 && c.Hours.Close == 0 {
		c.Hours.Open, c.Hours.Close = 9, 18
	}
	if c.Audit.Path == "" {
		c.Audit.Path = "data/audit.db"
	}
	if c.Monitoring.StatusPort == 0 {
		c.Monitoring.StatusPort = 8090
	}
	if c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
}

func (c *Config) LockTimeout() time.Duration {
	if c.Booking.LockTimeoutSeconds <= 0 {
		return 2 * time.Second
	}
	return time.Duration(c.Booking.LockTimeoutSeconds) * time.Second
}
