package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds everything the process needs from the environment.
// Loaded once in main and passed down explicitly; nothing reads env vars
// after startup.
type Config struct {
	Env      string
	HTTPAddr string

	DBDSN string

	PaystackSecretKey string
	// BaseURL is used to build the post-payment redirect callback.
	BaseURL  string
	Currency string

	AdminAPIToken string
}

func Load() (Config, error) {
	cfg := Config{
		Env:      optionalString("APP_ENV", "development"),
		HTTPAddr: optionalString("HTTP_ADDR", ":8080"),
		BaseURL:  optionalString("BASE_URL", "http://localhost:8080"),
		Currency: strings.ToUpper(optionalString("CURRENCY", "NGN")),

		AdminAPIToken: strings.TrimSpace(os.Getenv("ADMIN_API_TOKEN")),
	}

	var err error
	if cfg.DBDSN, err = requiredString("DB_DSN"); err != nil {
		return cfg, err
	}
	if cfg.PaystackSecretKey, err = requiredString("PAYSTACK_SECRET_KEY"); err != nil {
		return cfg, err
	}

	if len(cfg.Currency) != 3 {
		return cfg, fmt.Errorf("CURRENCY must be a 3-letter code, got %q", cfg.Currency)
	}

	return cfg, nil
}

func (c Config) IsDevelopment() bool { return c.Env == "development" }

func requiredString(key string) (string, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return "", fmt.Errorf("%s environment variable is required", key)
	}
	return v, nil
}

func optionalString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
