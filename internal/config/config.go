/**
 * @description
 * This file handles the configuration management for the accounts-service.
 * It uses the Viper library to read settings from environment variables or
 * a .env file.
 *
 * @dependencies
 * - github.com/spf13/viper: For configuration management.
 */
package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
type Config struct {
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	RabbitMQURL string `mapstructure:"RABBITMQ_URL"`
	// RedisURL is optional; when set, the env-info rate limiter is shared
	// across replicas through Redis.
	RedisURL   string `mapstructure:"REDIS_URL"`
	ServerPort string `mapstructure:"SERVER_PORT"`

	// Exchange is the broker exchange all service channels live on.
	Exchange string `mapstructure:"EVENT_EXCHANGE"`

	BuildVersion string `mapstructure:"BUILD_VERSION"`
	// EnvInfoKey names the environment variable exposed by the env-info
	// diagnostic endpoint. The value is opaque to the service.
	EnvInfoKey string `mapstructure:"ENV_INFO_KEY"`

	RetryMaxAttempts int `mapstructure:"RETRY_MAX_ATTEMPTS"`
	RetryDelayMs     int `mapstructure:"RETRY_DELAY_MS"`

	RateLimit              int `mapstructure:"RATE_LIMIT"`
	RateLimitWindowSeconds int `mapstructure:"RATE_LIMIT_WINDOW_SECONDS"`

	// SweepSchedule is the cron expression for the pending-communication
	// sweep.
	SweepSchedule string `mapstructure:"SWEEP_SCHEDULE"`

	ContactMessage string `mapstructure:"CONTACT_MESSAGE"`
	ContactName    string `mapstructure:"CONTACT_NAME"`
	ContactEmail   string `mapstructure:"CONTACT_EMAIL"`
	OnCallPhone    string `mapstructure:"ON_CALL_PHONE"`
}

// RetryDelay returns the configured retry delay as a duration.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMs) * time.Millisecond
}

// RateLimitWindow returns the configured rate-limit window as a duration.
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("EVENT_EXCHANGE", "eazybank_events")
	viper.SetDefault("BUILD_VERSION", "1.0")
	viper.SetDefault("ENV_INFO_KEY", "GO_VERSION")
	viper.SetDefault("RETRY_MAX_ATTEMPTS", 3)
	viper.SetDefault("RETRY_DELAY_MS", 500)
	viper.SetDefault("RATE_LIMIT", 1)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 5)
	viper.SetDefault("SWEEP_SCHEDULE", "@hourly")
	viper.SetDefault("CONTACT_MESSAGE", "Welcome to EazyBank accounts related docker APIs")
	viper.SetDefault("CONTACT_NAME", "John Doe")
	viper.SetDefault("CONTACT_EMAIL", "john@eazybank.com")
	viper.SetDefault("ON_CALL_PHONE", "(555) 555-1234")

	// Bind envs explicitly so containers pick them up reliably
	for _, key := range []string{
		"DATABASE_URL", "RABBITMQ_URL", "REDIS_URL", "SERVER_PORT",
		"EVENT_EXCHANGE", "BUILD_VERSION", "ENV_INFO_KEY",
		"RETRY_MAX_ATTEMPTS", "RETRY_DELAY_MS",
		"RATE_LIMIT", "RATE_LIMIT_WINDOW_SECONDS", "SWEEP_SCHEDULE",
		"CONTACT_MESSAGE", "CONTACT_NAME", "CONTACT_EMAIL", "ON_CALL_PHONE",
	} {
		_ = viper.BindEnv(key)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Warning: Error reading config file: %s", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
