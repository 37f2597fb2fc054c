package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/samhotchkiss/sindicato-comms/internal/generation"
	"github.com/samhotchkiss/sindicato-comms/internal/models"
	"github.com/samhotchkiss/sindicato-comms/internal/share"
)

func init() {
	// Auto-load .env file if present (existing env vars win)
	_ = godotenv.Load(".env")
}

const (
	defaultPort        = "4200"
	defaultEnvironment = "development"
	defaultActing      = models.SecretariatGeneral
)

type GenerationConfig struct {
	APIKey string
	Model  string
}

type Config struct {
	Port              string
	DatabaseURL       string
	Environment       string
	Generation        GenerationConfig
	SeedDemoData      bool
	ShareSiteURL      string
	ActingSecretariat models.Secretariat
	WSAllowedOrigins  []string
}

func Load() (Config, error) {
	cfg := Config{
		Port:        firstNonEmpty(strings.TrimSpace(os.Getenv("PORT")), defaultPort),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		Environment: resolveEnvironment(),
		Generation: GenerationConfig{
			APIKey: firstNonEmpty(
				strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
				strings.TrimSpace(os.Getenv("API_KEY")),
			),
			Model: firstNonEmpty(
				strings.TrimSpace(os.Getenv("GEMINI_MODEL")),
				generation.DefaultModel,
			),
		},
		ShareSiteURL:     firstNonEmpty(strings.TrimSpace(os.Getenv("SHARE_SITE_URL")), share.DefaultSiteURL),
		WSAllowedOrigins: splitList(os.Getenv("WS_ALLOWED_ORIGINS")),
	}

	seed, err := parseBool("SEED_DEMO_DATA", !isNonDevelopment(cfg.Environment))
	if err != nil {
		return Config{}, err
	}
	cfg.SeedDemoData = seed

	acting := defaultActing
	if raw := strings.TrimSpace(os.Getenv("ACTING_SECRETARIAT")); raw != "" {
		acting, err = models.ParseSecretariat(raw)
		if err != nil {
			return Config{}, fmt.Errorf("ACTING_SECRETARIAT: %w", err)
		}
	}
	cfg.ActingSecretariat = acting

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if !c.ActingSecretariat.Valid() {
		return fmt.Errorf("ACTING_SECRETARIAT %q is not a known secretariat", c.ActingSecretariat)
	}
	if strings.TrimSpace(c.Generation.Model) == "" {
		return fmt.Errorf("GEMINI_MODEL must not be empty")
	}
	siteURL, err := url.Parse(c.ShareSiteURL)
	if err != nil || (siteURL.Scheme != "http" && siteURL.Scheme != "https") || siteURL.Host == "" {
		return fmt.Errorf("SHARE_SITE_URL must be an absolute http(s) URL")
	}
	if c.DatabaseURL == "" && isNonDevelopment(c.Environment) {
		return fmt.Errorf("DATABASE_URL is required in non-development environments")
	}
	return nil
}

// GenerationEnabled reports whether a Gemini API key is configured.
func (c Config) GenerationEnabled() bool {
	return c.Generation.APIKey != ""
}

func resolveEnvironment() string {
	return strings.ToLower(firstNonEmpty(
		strings.TrimSpace(os.Getenv("APP_ENV")),
		strings.TrimSpace(os.Getenv("ENVIRONMENT")),
		strings.TrimSpace(os.Getenv("GO_ENV")),
		defaultEnvironment,
	))
}

func isNonDevelopment(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "", "dev", "development", "local", "test":
		return false
	default:
		return true
	}
}

func parseBool(name string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return defaultValue, nil
	}

	switch strings.ToLower(raw) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s must be a boolean value", name)
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
