package components

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Provider identifies a model provider.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
)

// ProviderConfig is the process-level configuration for one provider:
// credentials and model overrides supplied at construction time. The run
// loop never re-reads it.
type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url,omitempty"`
	Model   string `yaml:"model,omitempty"`
}

// Config holds provider configurations keyed by provider name.
type Config struct {
	Providers map[Provider]ProviderConfig `yaml:"providers"`
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (*Config, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := new(Config)
	if err := yaml.Unmarshal(bs, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ConfigFromEnv builds a Config from conventional environment variables.
func ConfigFromEnv() *Config {
	cfg := &Config{Providers: make(map[Provider]ProviderConfig, 3)}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.Providers[ProviderOpenAI] = ProviderConfig{
			APIKey:  key,
			BaseURL: os.Getenv("OPENAI_API_BASE_URL"),
			Model:   os.Getenv("OPENAI_MODEL"),
		}
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		cfg.Providers[ProviderAnthropic] = ProviderConfig{
			APIKey:  key,
			BaseURL: os.Getenv("ANTHROPIC_API_BASE_URL"),
			Model:   os.Getenv("ANTHROPIC_MODEL"),
		}
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.Providers[ProviderGemini] = ProviderConfig{
			APIKey: key,
			Model:  os.Getenv("GEMINI_MODEL"),
		}
	}
	return cfg
}

// Provider returns the configuration for a provider.
func (c *Config) Provider(name Provider) (ProviderConfig, bool) {
	if c == nil || c.Providers == nil {
		return ProviderConfig{}, false
	}
	v, ok := c.Providers[name]
	return v, ok
}
