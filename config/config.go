package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the runtime configuration for the deck generation pipeline.
type Config struct {
	LLMProvider  string `json:"llmProvider"`  // "OpenAI" or "OpenAI-Compatible"
	APIKey       string `json:"apiKey"`       // API key for the completion endpoint
	BaseURL      string `json:"baseUrl"`      // Override endpoint for OpenAI-compatible providers
	ModelName    string `json:"modelName"`    // Model identifier sent with each request
	MaxTokens    int    `json:"maxTokens"`    // Completion token cap (0 = provider default)
	TemplatesDir string `json:"templatesDir"` // Directory scanned for theme files
	ChartsDir    string `json:"chartsDir"`    // Directory chart images are written into
	DetailedLog  bool   `json:"detailedLog"`  // Log full prompts and responses
}

// Default returns the baseline configuration used when no config file exists.
func Default() Config {
	return Config{
		LLMProvider:  "OpenAI",
		ModelName:    "gpt-4o-mini",
		MaxTokens:    2048,
		TemplatesDir: "templates",
		ChartsDir:    "charts",
	}
}

// DefaultPath returns the config file location (~/.deckgen/config.json).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home dir: %w", err)
	}
	return filepath.Join(home, ".deckgen", "config.json"), nil
}

// Load reads the config file at path, falling back to defaults when the file
// is absent. Environment variables DECKGEN_API_KEY, DECKGEN_BASE_URL and
// DECKGEN_MODEL override the file so keys never need to live on disk.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if v := os.Getenv("DECKGEN_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("DECKGEN_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("DECKGEN_MODEL"); v != "" {
		cfg.ModelName = v
	}

	if cfg.TemplatesDir == "" {
		cfg.TemplatesDir = "templates"
	}
	if cfg.ChartsDir == "" {
		cfg.ChartsDir = "charts"
	}
	return cfg, nil
}

// Save writes the config as indented JSON, creating parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
