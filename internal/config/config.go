// Package config loads the settings the CLI needs from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/naka-gawa/pr-agent/internal/domain"
	"github.com/naka-gawa/pr-agent/internal/remote"
	"github.com/naka-gawa/pr-agent/internal/sla"
)

const DefaultTimeout = 30 * time.Second

type Config struct {
	Token   string
	Host    string
	GitHub  GitHubConfig
	SLA     sla.Policy
	Timeout time.Duration
}

type GitHubConfig struct {
	APIURL     string
	GraphQLURL string
}

// Load reads .env (if present) and the process environment.
// A missing GITHUB_TOKEN or malformed setting is a configuration error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return nil, domain.NewConfigurationError("GITHUB_TOKEN not found in .env file or environment", nil)
	}

	attention, err := getEnvInt("PR_AGENT_ATTENTION_DAYS", sla.DefaultAttentionDays)
	if err != nil {
		return nil, err
	}
	critical, err := getEnvInt("PR_AGENT_CRITICAL_DAYS", sla.DefaultCriticalDays)
	if err != nil {
		return nil, err
	}
	timeout, err := getEnvDuration("PR_AGENT_TIMEOUT", DefaultTimeout)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Token: token,
		Host:  getEnv("GITHUB_HOST", remote.DefaultHost),
		GitHub: GitHubConfig{
			APIURL:     os.Getenv("GITHUB_API_URL"),
			GraphQLURL: os.Getenv("GITHUB_GRAPHQL_URL"),
		},
		SLA:     sla.Policy{AttentionDays: attention, CriticalDays: critical},
		Timeout: timeout,
	}
	return cfg, nil
}

// Validate checks settings after command-line overrides have been applied.
func (c *Config) Validate() error {
	if err := c.SLA.Validate(); err != nil {
		return domain.NewConfigurationError("invalid SLA policy", err)
	}
	if c.Timeout < 0 {
		return domain.NewConfigurationError(fmt.Sprintf("timeout must not be negative, got %s", c.Timeout), nil)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, domain.NewConfigurationError(fmt.Sprintf("%s must be a whole number of days", key), err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, domain.NewConfigurationError(fmt.Sprintf("%s must be a duration such as 30s", key), err)
	}
	return d, nil
}
