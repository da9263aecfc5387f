package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := LoadWithFile("")

	if cfg.APIPort != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.APIPort)
	}
	if cfg.OllamaEmbedModel != "nomic-embed-text" {
		t.Fatalf("unexpected default embed model %q", cfg.OllamaEmbedModel)
	}
	if cfg.OCRLanguages != "eng+msa" {
		t.Fatalf("unexpected default OCR languages %q", cfg.OCRLanguages)
	}
	if cfg.MaxUploadBytes != 32<<20 {
		t.Fatalf("unexpected default upload limit %d", cfg.MaxUploadBytes)
	}
	if cfg.APIRateLimitRPS != 10 || cfg.APIRateLimitBurst != 20 || cfg.APIMaxInFlight != 4 {
		t.Fatalf("unexpected default traffic knobs: %+v", cfg)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("OLLAMA_EMBED_MODEL", "bge-m3")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("API_RATE_LIMIT_RPS", "3")

	cfg := LoadWithFile("")

	if cfg.APIPort != "9090" {
		t.Fatalf("expected env port 9090, got %q", cfg.APIPort)
	}
	if cfg.OllamaEmbedModel != "bge-m3" {
		t.Fatalf("expected env embed model, got %q", cfg.OllamaEmbedModel)
	}
	if cfg.MaxUploadBytes != 1048576 {
		t.Fatalf("expected env upload limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.APIRateLimitRPS != 3 {
		t.Fatalf("expected env rate limit, got %d", cfg.APIRateLimitRPS)
	}
}

func TestLoadInvalidIntFallsBack(t *testing.T) {
	t.Setenv("TEXT_ECHO_LIMIT", "not-a-number")

	cfg := LoadWithFile("")
	if cfg.TextEchoLimit != 20000 {
		t.Fatalf("invalid integer must keep the default, got %d", cfg.TextEchoLimit)
	}
}

func TestLoadYAMLFileThenEnvWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte("api_port: \"7000\"\nocr_url: http://ocr.internal:8884\ntext_echo_limit: 500\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("API_PORT", "7100")

	cfg := LoadWithFile(path)

	if cfg.APIPort != "7100" {
		t.Fatalf("env must override the file, got %q", cfg.APIPort)
	}
	if cfg.OCRURL != "http://ocr.internal:8884" {
		t.Fatalf("expected file OCR URL, got %q", cfg.OCRURL)
	}
	if cfg.TextEchoLimit != 500 {
		t.Fatalf("expected file echo limit 500, got %d", cfg.TextEchoLimit)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("untouched keys keep defaults, got %q", cfg.LogLevel)
	}
}

func TestLoadMissingFileIsIgnored(t *testing.T) {
	cfg := LoadWithFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if cfg.APIPort != "8080" {
		t.Fatalf("missing file must fall back to defaults, got %q", cfg.APIPort)
	}
}
