// Package config reads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Zachkp/portfolio/internal/mailer"
)

type Config struct {
	Port             string
	Mode             string
	LogLevel         string
	DatabasePath     string
	ContentPath      string
	SessionTTL       time.Duration
	PipelinePeriod   time.Duration
	RadarFrame       time.Duration
	PlaygroundDelay  time.Duration
	VisitorRetention time.Duration
	SecureCookies    bool
	AdminUsername    string
	AdminPassword    string
	SMTP             mailer.Config
}

// Load reads the environment, filling in defaults for anything unset.
func Load() (Config, error) {
	c := Config{
		Port:          envOr("PORT", "8080"),
		Mode:          envOr("GIN_MODE", "debug"),
		LogLevel:      envOr("LOG_LEVEL", "info"),
		DatabasePath:  envOr("DATABASE_PATH", "data/portfolio.db"),
		ContentPath:   os.Getenv("CONTENT_PATH"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		SMTP: mailer.Config{
			Host: envOr("SMTP_HOST", "smtp.gmail.com"),
			Port: envOr("SMTP_PORT", "587"),
			User: os.Getenv("SMTP_USER"),
			Pass: os.Getenv("SMTP_PASS"),
			To:   os.Getenv("TO_EMAIL"),
		},
	}
	if c.SMTP.To == "" {
		c.SMTP.To = c.SMTP.User
	}

	durations := []struct {
		key string
		def time.Duration
		dst *time.Duration
	}{
		{"SESSION_TTL", 30 * time.Minute, &c.SessionTTL},
		{"PIPELINE_PERIOD", 2 * time.Second, &c.PipelinePeriod},
		{"RADAR_FRAME", 50 * time.Millisecond, &c.RadarFrame},
		{"PLAYGROUND_DELAY", 1500 * time.Millisecond, &c.PlaygroundDelay},
		{"VISITOR_RETENTION", 365 * 24 * time.Hour, &c.VisitorRetention},
	}
	for _, d := range durations {
		v, err := durationOr(d.key, d.def)
		if err != nil {
			return Config{}, err
		}
		*d.dst = v
	}

	secure, err := boolOr("SECURE_COOKIES", false)
	if err != nil {
		return Config{}, err
	}
	c.SecureCookies = secure
	return c, nil
}

// Addr is the listen address.
func (c Config) Addr() string { return ":" + c.Port }

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("config: %s must not be negative", key)
	}
	return d, nil
}

func boolOr(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s: %w", key, err)
	}
	return b, nil
}
