// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/codr1/leaguedesk/internal/validation"
)

// EnvPrefix namespaces secrets read from the environment, e.g.
// LEAGUEDESK_ACCESS_TOKEN.
const EnvPrefix = "LEAGUEDESK"

type DatabaseConfig struct {
	Driver   string `yaml:"driver" validate:"required,oneof=sqlite"`
	Filename string `yaml:"filename" validate:"required"`
}

// APIConfig points the client at the league backend.
type APIConfig struct {
	BaseURL            string `yaml:"base_url" validate:"required,http_url"`
	TimeoutSeconds     int    `yaml:"timeout_seconds" validate:"gte=1"`
	RefreshPath        string `yaml:"refresh_path"`
	UserAgent          string `yaml:"user_agent"`
	DefaultPhoneRegion string `yaml:"default_phone_region" validate:"len=2"`
}

type DraftsConfig struct {
	TTLHours  int    `yaml:"ttl_hours" validate:"gte=1"`
	PruneCron string `yaml:"prune_cron" validate:"required"`
}

type TokensConfig struct {
	RefreshCron        string `yaml:"refresh_cron" validate:"required"`
	RefreshSkewSeconds int    `yaml:"refresh_skew_seconds" validate:"gte=0"`
}

type LimitsConfig struct {
	SaveMaxPerHour     int  `yaml:"save_max_per_hour" validate:"gte=1"`
	GenerateMaxPerHour int  `yaml:"generate_max_per_hour" validate:"gte=1"`
	TrustProxy         bool `yaml:"trust_proxy"`
}

// Secrets never live in the YAML file.
type Secrets struct {
	AccessToken  string `envconfig:"ACCESS_TOKEN"`
	RefreshToken string `envconfig:"REFRESH_TOKEN"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name" validate:"required"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port" validate:"gte=1,lte=65535"`
	} `yaml:"app"`

	API      APIConfig      `yaml:"api"`
	Database DatabaseConfig `yaml:"database"`
	Drafts   DraftsConfig   `yaml:"drafts"`
	Tokens   TokensConfig   `yaml:"tokens"`
	Limits   LimitsConfig   `yaml:"limits"`

	Secrets Secrets `yaml:"-"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	cfg.applyDefaults()

	if err := envconfig.Process(EnvPrefix, &cfg.Secrets); err != nil {
		return nil, fmt.Errorf("error reading environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Port == 0 {
		c.App.Port = 8080
	}
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = 15
	}
	if c.API.DefaultPhoneRegion == "" {
		c.API.DefaultPhoneRegion = "US"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Drafts.TTLHours == 0 {
		c.Drafts.TTLHours = 72
	}
	if c.Drafts.PruneCron == "" {
		c.Drafts.PruneCron = "15 * * * *"
	}
	if c.Tokens.RefreshCron == "" {
		c.Tokens.RefreshCron = "*/5 * * * *"
	}
	if c.Tokens.RefreshSkewSeconds == 0 {
		c.Tokens.RefreshSkewSeconds = 120
	}
	if c.Limits.SaveMaxPerHour == 0 {
		c.Limits.SaveMaxPerHour = 30
	}
	if c.Limits.GenerateMaxPerHour == 0 {
		c.Limits.GenerateMaxPerHour = 60
	}
}

func (c *Config) Validate() error {
	var errs validation.Errors
	if err := validation.Struct(c); err != nil {
		fieldErrs, ok := validation.As(err)
		if !ok {
			return err
		}
		errs = append(errs, fieldErrs...)
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	schedules := []struct{ field, spec string }{
		{"drafts.prune_cron", c.Drafts.PruneCron},
		{"tokens.refresh_cron", c.Tokens.RefreshCron},
	}
	for _, s := range schedules {
		if s.spec == "" {
			continue
		}
		if _, err := parser.Parse(s.spec); err != nil {
			errs.Add(s.field, fmt.Sprintf("is not a valid cron expression: %v", err))
		}
	}

	return errs.Err()
}

func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

func (c *Config) DraftTTL() time.Duration {
	return time.Duration(c.Drafts.TTLHours) * time.Hour
}

func (c *Config) RefreshSkew() time.Duration {
	return time.Duration(c.Tokens.RefreshSkewSeconds) * time.Second
}
