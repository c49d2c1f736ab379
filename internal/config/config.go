// Package config loads and validates process configuration from the
// environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultSecretKey is the insecure development fallback. Validate warns
// about it but does not reject it, matching the legacy deployment.
const DefaultSecretKey = "chave_secreta_padrao_desenvolvimento"

// DefaultAdminName is the single display name allowed into the user
// listing view.
const DefaultAdminName = "lusiane gomes simão"

type Config struct {
	// HTTP server
	Port string

	// Database: DATABASE_URL may be a plain path or a sqlite:// URL;
	// when unset a local file under ./data is used.
	DatabasePath string

	// Sessions
	SecretKey  string
	SessionTTL time.Duration

	// Admin allow-list of size one
	AdminName string

	// AMQP event publishing (optional, disabled when URL is empty)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Logging
	LogFormat string
}

func Load() *Config {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		DatabasePath: databasePath(),
		SecretKey:    getEnv("SECRET_KEY", DefaultSecretKey),
		SessionTTL:   getEnvDuration("SESSION_TTL", 30*24*time.Hour),
		AdminName:    getEnv("ADMIN_NAME", DefaultAdminName),
		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "comissoes"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "record_events"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
	}
	return cfg
}

// databasePath resolves the storage location from DATABASE_URL,
// falling back to a local file-backed store.
func databasePath() string {
	raw := os.Getenv("DATABASE_URL")
	if raw == "" {
		return filepath.Join("data", "comissoes.db")
	}
	if strings.HasPrefix(raw, "sqlite://") {
		return strings.TrimPrefix(raw, "sqlite://")
	}
	return raw
}

// Validate checks the configuration, collecting every problem into one
// error. Warnings (insecure secret key) are returned separately so the
// caller can log them without refusing to start.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DatabasePath == "" {
		errs = append(errs, "database path cannot be empty")
	}

	if c.SecretKey == "" {
		errs = append(errs, "secret key cannot be empty")
	}

	if c.SessionTTL < time.Minute {
		errs = append(errs, fmt.Sprintf("invalid session TTL %v: must be at least 1 minute", c.SessionTTL))
	}

	if strings.TrimSpace(c.AdminName) == "" {
		errs = append(errs, "admin name cannot be empty")
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	switch c.LogFormat {
	case "text", "json", "pretty":
	default:
		errs = append(errs, fmt.Sprintf("invalid log format '%s': must be text, json or pretty", c.LogFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// InsecureSecret reports whether the hardcoded development secret is in
// use.
func (c *Config) InsecureSecret() bool {
	return c.SecretKey == DefaultSecretKey
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
