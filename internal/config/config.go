package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"

	"productform/pkg/productapi"
)

// Config holds the application settings.
type Config struct {
	AppPort           string
	ProductAPIURL     string
	ProductAPITimeout time.Duration
	RabbitMQURL       string
	FormIdleTTL       time.Duration
	SessionTTL        time.Duration
}

// SetDefaults registers the default of every setting on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("PRODUCT_API_URL", productapi.DefaultEndpoint)
	v.SetDefault("PRODUCT_API_TIMEOUT", "10s")
	// Empty disables product created events.
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("FORM_IDLE_TTL", "1h")
	v.SetDefault("SESSION_TTL", "24h")
}

// Load reads the settings from the environment, falling back to defaults.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		AppPort:           v.GetString("APP_PORT"),
		ProductAPIURL:     v.GetString("PRODUCT_API_URL"),
		ProductAPITimeout: v.GetDuration("PRODUCT_API_TIMEOUT"),
		RabbitMQURL:       v.GetString("RABBITMQ_URL"),
		FormIdleTTL:       v.GetDuration("FORM_IDLE_TTL"),
		SessionTTL:        v.GetDuration("SESSION_TTL"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings for values the application cannot run with.
func (c *Config) Validate() error {
	if c.AppPort == "" {
		return fmt.Errorf("APP_PORT must not be empty")
	}
	u, err := url.Parse(c.ProductAPIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("PRODUCT_API_URL must be an absolute URL, got %q", c.ProductAPIURL)
	}
	if c.ProductAPITimeout < 0 {
		return fmt.Errorf("PRODUCT_API_TIMEOUT must not be negative")
	}
	if c.FormIdleTTL <= 0 {
		return fmt.Errorf("FORM_IDLE_TTL must be positive")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	return nil
}
