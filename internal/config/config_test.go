package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
debug: true
server:
  host: 0.0.0.0
  port: 9090
documents:
  directory: ./policies
retrieval:
  top_k: 3
llm:
  model: gemini-1.5-pro
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Debug {
		t.Error("debug should be true")
	}
	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 9090 {
		t.Errorf("server: got %+v", cfg.Server)
	}
	if cfg.Documents.Directory != filepath.Join(dir, "policies") {
		t.Errorf("documents dir not expanded: %s", cfg.Documents.Directory)
	}
	if cfg.Retrieval.TopK != 3 {
		t.Errorf("top_k: got %d", cfg.Retrieval.TopK)
	}
	if cfg.LLM.Model != "gemini-1.5-pro" {
		t.Errorf("model: got %s", cfg.LLM.Model)
	}
	// Defaults fill the rest.
	if cfg.Embedding.Dimensions != 384 {
		t.Errorf("default dimensions: got %d", cfg.Embedding.Dimensions)
	}
	if cfg.LLM.APIKeyEnv != "GEMINI_API_KEY" {
		t.Errorf("default api key env: got %s", cfg.LLM.APIKeyEnv)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Server.Port != 8080 {
		t.Errorf("port: got %d", cfg.Server.Port)
	}
	if cfg.Retrieval.TopK != 5 {
		t.Errorf("top_k: got %d", cfg.Retrieval.TopK)
	}
	if cfg.LLM.Model != "gemini-1.5-flash-latest" {
		t.Errorf("model: got %s", cfg.LLM.Model)
	}
	if cfg.LLM.TimeoutSeconds != 60 {
		t.Errorf("timeout: got %d", cfg.LLM.TimeoutSeconds)
	}
}

func TestAPIKeyFallback(t *testing.T) {
	l := &LLMConfig{APIKeyEnv: "CLAIMLENS_TEST_KEY"}
	t.Setenv("CLAIMLENS_TEST_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "fallback-key")
	if got := l.APIKey(); got != "fallback-key" {
		t.Errorf("fallback: got %q", got)
	}
	t.Setenv("CLAIMLENS_TEST_KEY", "primary-key")
	if got := l.APIKey(); got != "primary-key" {
		t.Errorf("primary: got %q", got)
	}
}
