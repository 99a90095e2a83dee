package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const devSessionSecret = "dev_secret_change_me"

// Config is the application-wide configuration, read from the environment.
type Config struct {
	Port  string // listen port (8080)
	GoEnv string // dev/prod

	SessionSecret string        // HS256 key for the session cookie
	SessionTTL    time.Duration // session cookie lifetime
	CookieSecure  bool          // Secure flag on the session cookie

	CatalogPath  string        // YAML catalog; empty uses the built-in one
	PaymentDelay time.Duration // mock payment processing time

	FEURL string // allowed CORS origin; empty disables CORS
}

func (c Config) IsProd() bool {
	return c.GoEnv == "prod"
}

// Addr is the listen address for Port.
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// Load reads the environment. Unset keys fall back to dev defaults, except
// SESSION_SECRET which is required in prod.
func Load() (Config, error) {
	cfg := Config{
		Port:          getenv("PORT", "8080"),
		GoEnv:         getenv("GO_ENV", "dev"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		CatalogPath:   os.Getenv("CATALOG_PATH"),
		FEURL:         os.Getenv("FE_URL"),
	}

	if cfg.GoEnv != "dev" && cfg.GoEnv != "prod" {
		return Config{}, fmt.Errorf("GO_ENV must be dev or prod: %q", cfg.GoEnv)
	}

	if cfg.SessionSecret == "" {
		if cfg.IsProd() {
			return Config{}, fmt.Errorf("SESSION_SECRET is required")
		}
		cfg.SessionSecret = devSessionSecret
	}

	var err error
	if cfg.SessionTTL, err = durationEnv("SESSION_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.PaymentDelay, err = durationEnv("PAYMENT_DELAY", 2*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.CookieSecure, err = boolEnv("COOKIE_SECURE", cfg.IsProd()); err != nil {
		return Config{}, err
	}

	if _, err := strconv.Atoi(strings.TrimPrefix(cfg.Port, ":")); err != nil {
		return Config{}, fmt.Errorf("PORT must be number: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL must be positive")
	}
	if cfg.PaymentDelay < 0 {
		return Config{}, fmt.Errorf("PAYMENT_DELAY must not be negative")
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	return d, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be bool: %w", key, err)
	}
	return b, nil
}
