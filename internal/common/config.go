package common

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string         `toml:"environment"` // "development" or "production"
	Logging     LoggingConfig  `toml:"logging"`
	Finviz      FinvizConfig   `toml:"finviz"`
	Barchart    BarchartConfig `toml:"barchart"`
	Reddit      RedditConfig   `toml:"reddit"`
	Claude      ClaudeConfig   `toml:"claude"`
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// FinvizConfig configures the quote/screener page source.
type FinvizConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"` // e.g. "10s"
}

// BarchartConfig configures the options-ratio page source.
type BarchartConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
}

// RedditConfig holds script-app credentials for the social discussion API.
// All four credential fields must be present together for the social
// sentiment tool to be advertised.
type RedditConfig struct {
	ClientID     string `toml:"client_id" validate:"required_with=ClientSecret Username Password"`
	ClientSecret string `toml:"client_secret" validate:"required_with=ClientID Username Password"`
	Username     string `toml:"username" validate:"required_with=ClientID ClientSecret Password"`
	Password     string `toml:"password" validate:"required_with=ClientID ClientSecret Username"`
	UserAgent    string `toml:"user_agent"`
}

// ClaudeConfig holds the generative-text API settings.
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float32 `toml:"temperature"`
	Timeout     string  `toml:"timeout"`
}

// Capabilities describes which optional tools can be offered, computed
// once at startup from credential presence and passed into the tool
// registration layer. Tools gated off here are never advertised.
type Capabilities struct {
	SocialSentiment bool // Reddit credentials configured
	Summarize       bool // Anthropic API key configured
}

// Capabilities derives the capability set from configured credentials.
func (c *Config) Capabilities() Capabilities {
	return Capabilities{
		SocialSentiment: c.Reddit.ClientID != "" && c.Reddit.ClientSecret != "" &&
			c.Reddit.Username != "" && c.Reddit.Password != "",
		Summarize: c.Claude.APIKey != "",
	}
}

// DefaultConfig returns a config populated with defaults.
func DefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Logging: LoggingConfig{
			Level:  "warn",
			Output: []string{"stdout"},
		},
		Finviz: FinvizConfig{
			BaseURL: "https://finviz.com",
			Timeout: "10s",
		},
		Barchart: BarchartConfig{
			BaseURL: "https://www.barchart.com",
			Timeout: "15s",
		},
		Claude: ClaudeConfig{
			Model:       "claude-sonnet-4-20250514",
			MaxTokens:   1024,
			Temperature: 0.2,
			Timeout:     "15s",
		},
	}
}

// LoadFromFile loads configuration from a TOML file, applies environment
// variable overrides, and validates the result. A missing file is not an
// error: defaults plus env overrides apply.
func LoadFromFile(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := toml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// applyEnvOverrides applies SPECULOR_* environment variables over the
// file-derived configuration. Env always wins.
func applyEnvOverrides(config *Config) {
	overrides := map[string]*string{
		"SPECULOR_LOG_LEVEL":            &config.Logging.Level,
		"SPECULOR_FINVIZ_BASE_URL":      &config.Finviz.BaseURL,
		"SPECULOR_BARCHART_BASE_URL":    &config.Barchart.BaseURL,
		"SPECULOR_REDDIT_CLIENT_ID":     &config.Reddit.ClientID,
		"SPECULOR_REDDIT_CLIENT_SECRET": &config.Reddit.ClientSecret,
		"SPECULOR_REDDIT_USERNAME":      &config.Reddit.Username,
		"SPECULOR_REDDIT_PASSWORD":      &config.Reddit.Password,
		"SPECULOR_REDDIT_USER_AGENT":    &config.Reddit.UserAgent,
		"SPECULOR_CLAUDE_API_KEY":       &config.Claude.APIKey,
		"SPECULOR_CLAUDE_MODEL":         &config.Claude.Model,
	}
	for key, target := range overrides {
		if value := os.Getenv(key); value != "" {
			*target = value
		}
	}

	// Conventional fallback for the Anthropic key.
	if config.Claude.APIKey == "" {
		config.Claude.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
}
