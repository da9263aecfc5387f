package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	APIPort  string `yaml:"api_port"`
	LogLevel string `yaml:"log_level"`

	OllamaURL        string `yaml:"ollama_url"`
	OllamaEmbedModel string `yaml:"ollama_embed_model"`

	OCRURL       string `yaml:"ocr_url"`
	OCRLanguages string `yaml:"ocr_languages"`

	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
	TextEchoLimit  int   `yaml:"text_echo_limit"`

	APIRateLimitRPS   int `yaml:"api_rate_limit_rps"`
	APIRateLimitBurst int `yaml:"api_rate_limit_burst"`
	APIMaxInFlight    int `yaml:"api_max_in_flight"`
}

func defaults() Config {
	return Config{
		APIPort:  "8080",
		LogLevel: "info",

		OllamaURL:        "http://localhost:11434",
		OllamaEmbedModel: "nomic-embed-text",

		OCRURL:       "http://localhost:8884",
		OCRLanguages: "eng+msa",

		MaxUploadBytes: 32 << 20,
		TextEchoLimit:  20000,

		APIRateLimitRPS:   10,
		APIRateLimitBurst: 20,
		APIMaxInFlight:    4,
	}
}

// Load resolves configuration in three layers: built-in defaults, an
// optional YAML file named by CONFIG_PATH, then environment overrides.
func Load() Config {
	return LoadWithFile(os.Getenv("CONFIG_PATH"))
}

func LoadWithFile(path string) Config {
	cfg := defaults()
	if path != "" {
		if raw, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(raw, &cfg)
		}
	}
	applyEnv(&cfg)
	return cfg
}

func applyEnv(cfg *Config) {
	cfg.APIPort = envStr("API_PORT", cfg.APIPort)
	cfg.LogLevel = envStr("LOG_LEVEL", cfg.LogLevel)

	cfg.OllamaURL = envStr("OLLAMA_URL", cfg.OllamaURL)
	cfg.OllamaEmbedModel = envStr("OLLAMA_EMBED_MODEL", cfg.OllamaEmbedModel)

	cfg.OCRURL = envStr("OCR_URL", cfg.OCRURL)
	cfg.OCRLanguages = envStr("OCR_LANGUAGES", cfg.OCRLanguages)

	cfg.MaxUploadBytes = envInt64("MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)
	cfg.TextEchoLimit = envInt("TEXT_ECHO_LIMIT", cfg.TextEchoLimit)

	cfg.APIRateLimitRPS = envInt("API_RATE_LIMIT_RPS", cfg.APIRateLimitRPS)
	cfg.APIRateLimitBurst = envInt("API_RATE_LIMIT_BURST", cfg.APIRateLimitBurst)
	cfg.APIMaxInFlight = envInt("API_MAX_IN_FLIGHT", cfg.APIMaxInFlight)
}

func envStr(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
