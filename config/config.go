// Package config handles bingo configuration loading.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Generator Generator `yaml:"generator"`
	Retry     Retry     `yaml:"retry"`
	Render    Render    `yaml:"render"`
	Logging   Logging   `yaml:"logging"`
}

// Generator holds the external text generator settings.
// APIKey 非空时使用 Gemini API；否则使用 Project/Location 走 Vertex AI（应用默认凭据）。
type Generator struct {
	APIKey      string        `yaml:"api_key"`
	Project     string        `yaml:"project"`
	Location    string        `yaml:"location"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Enabled reports whether enough credentials are configured to call the generator.
func (g Generator) Enabled() bool {
	return g.APIKey != "" || g.Project != ""
}

// Retry holds the bounded retry policy of the extractor.
type Retry struct {
	MaxAttempts int           `yaml:"max_attempts"`
	Backoff     time.Duration `yaml:"backoff"`
}

// Render holds defaults for PDF output.
type Render struct {
	FontPath      string `yaml:"font_path"`
	TitleFontPath string `yaml:"title_font_path"`
	PageSize      string `yaml:"page_size"`
	Author        string `yaml:"author"`
}

// Logging holds logger settings.
type Logging struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Generator: Generator{
			Location:    "europe-west1",
			Model:       "gemini-2.5-flash",
			Temperature: 0.7,
			Timeout:     30 * time.Second,
		},
		Retry: Retry{
			MaxAttempts: 3,
			Backoff:     time.Second,
		},
		Render: Render{
			PageSize: "A4",
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// Load loads configuration from a file and applies environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// LoadOrDefault loads config from path, or returns default if path is empty or missing.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config: %w", err)
		}
	}
	cfg := Default()
	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overrides credentials from the environment.
func (c *Config) ApplyEnv() {
	for _, key := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if v := os.Getenv(key); v != "" {
			c.Generator.APIKey = v
			break
		}
	}
	if v := os.Getenv("GCP_PROJECT_ID"); v != "" {
		c.Generator.Project = v
	}
	if v := os.Getenv("GCP_REGION"); v != "" {
		c.Generator.Location = v
	}
}

// Save saves configuration to a file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
