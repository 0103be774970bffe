package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultIssueLabel is applied to filed proposals when GITHUB_ISSUE_LABELS is unset.
const DefaultIssueLabel = "speaker"

// Config holds all configuration for the community site backend
type Config struct {
	// Server settings
	Port           int
	Environment    string // "development" or "production"
	LogLevel       string
	AllowedOrigins []string

	// GitHub App settings
	GitHub GitHubConfig

	// Static content
	EventsFile string // Optional: overrides the embedded events catalog
}

// GitHubConfig groups the GitHub App identity and issue routing options.
type GitHubConfig struct {
	AppID          string
	InstallationID string
	PrivateKey     string
	APIURL         string // Optional: GitHub Enterprise or test endpoint

	Labels    []string
	Assignees []string
}

// HasCredentials reports whether every value needed to authenticate as the
// GitHub App installation is present.
func (g GitHubConfig) HasCredentials() bool {
	return g.AppID != "" && g.InstallationID != "" && g.PrivateKey != ""
}

// Load loads configuration from environment variables.
//
// Missing GitHub credentials are not an error here: the intake endpoint
// reports them per request so the rest of the site keeps serving.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnvInt("PORT", 8000),
		Environment:    getEnv("GO_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		GitHub: GitHubConfig{
			AppID:          strings.TrimSpace(os.Getenv("GITHUB_APP_ID")),
			InstallationID: strings.TrimSpace(os.Getenv("GITHUB_INSTALLATION_ID")),
			PrivateKey:     normalizePrivateKey(os.Getenv("GITHUB_PRIVATE_KEY")),
			APIURL:         os.Getenv("GITHUB_API_URL"),
			Labels:         listOrDefault("GITHUB_ISSUE_LABELS", []string{DefaultIssueLabel}),
			Assignees:      listOrDefault("GITHUB_ASSIGNEES", []string{}),
		},
		EventsFile: os.Getenv("EVENTS_FILE"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func normalizePrivateKey(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "\"") && strings.HasSuffix(trimmed, "\"") {
		trimmed = strings.TrimPrefix(trimmed, "\"")
		trimmed = strings.TrimSuffix(trimmed, "\"")
	}
	if strings.HasPrefix(trimmed, "'") && strings.HasSuffix(trimmed, "'") {
		trimmed = strings.TrimPrefix(trimmed, "'")
		trimmed = strings.TrimSuffix(trimmed, "'")
	}

	trimmed = strings.ReplaceAll(trimmed, "\r\n", "\n")
	trimmed = strings.ReplaceAll(trimmed, "\r", "\n")
	if strings.Contains(trimmed, "\\n") {
		trimmed = strings.ReplaceAll(trimmed, "\\r", "")
		trimmed = strings.ReplaceAll(trimmed, "\\n", "\n")
	}

	return trimmed
}

// validate rejects values that are present but unusable
func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if err := validateNumericID("GITHUB_APP_ID", c.GitHub.AppID); err != nil {
		return err
	}
	if err := validateNumericID("GITHUB_INSTALLATION_ID", c.GitHub.InstallationID); err != nil {
		return err
	}
	switch c.Environment {
	case "development", "production", "test":
	default:
		return fmt.Errorf("invalid GO_ENV: %s (must be 'development', 'production' or 'test')", c.Environment)
	}
	return nil
}

func validateNumericID(key, value string) error {
	if value == "" {
		return nil
	}
	if _, err := strconv.ParseInt(value, 10, 64); err != nil {
		return fmt.Errorf("%s must be numeric: %w", key, err)
	}
	return nil
}

// listOrDefault parses a comma-separated override list. An unset variable
// yields def; a set variable always wins, even if it parses to nothing.
func listOrDefault(key string, def []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return def
	}
	return splitList(value)
}

func splitList(value string) []string {
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnv gets environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets environment variable as int with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
