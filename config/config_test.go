package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	def := Default()
	if cfg.ModelName != def.ModelName || cfg.MaxTokens != def.MaxTokens {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"llmProvider": "OpenAI-Compatible", "baseUrl": "http://localhost:11434/v1", "modelName": "llama3", "maxTokens": 512}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LLMProvider != "OpenAI-Compatible" || cfg.ModelName != "llama3" || cfg.MaxTokens != 512 {
		t.Errorf("cfg = %+v", cfg)
	}
	// Unset dirs fall back to defaults.
	if cfg.TemplatesDir != "templates" || cfg.ChartsDir != "charts" {
		t.Errorf("dirs = %q %q", cfg.TemplatesDir, cfg.ChartsDir)
	}
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DECKGEN_API_KEY", "sk-test")
	t.Setenv("DECKGEN_MODEL", "gpt-4o")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIKey != "sk-test" || cfg.ModelName != "gpt-4o" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	want := Default()
	want.APIKey = "sk-roundtrip"
	want.DetailedLog = true

	if err := Save(path, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.APIKey != want.APIKey || got.DetailedLog != want.DetailedLog {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
