package config

import (
	"os"
	"strconv"
)

// Config holds the environment-driven settings.
type Config struct {
	Port                    string
	StaticDir               string
	FirebaseCredentialsPath string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	NotifyFrom   string
	NotifyTo     string
}

// Load reads configuration from the environment with sane defaults.
// Nothing is required: push and email degrade to disabled when their
// settings are absent.
func Load() Config {
	return Config{
		Port:                    envOr("PORT", "8080"),
		StaticDir:               envOr("STATIC_DIR", "static"),
		FirebaseCredentialsPath: os.Getenv("FIREBASE_CREDENTIALS_PATH"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     envInt("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		NotifyFrom:   envOr("NOTIFY_FROM", "noreply@buceofeliz.com"),
		NotifyTo:     envOr("NOTIFY_TO", "shop@buceofeliz.com"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
