package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	Upload UploadConfig
	Ai     AIConfig
	Otel   OtelConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	BodyLimitBytes     int
	NatsURL            string
}

type UploadConfig struct {
	MaxBytes           int64
	ExtractionCacheTTL time.Duration
}

type AIConfig struct {
	LLMProvider     string // "ollama", "huggingface", "openai", "anthropic", "gemini"
	LLMModel        string
	LLMBaseURL      string
	LLMAPIKey       string
	LLMMaxTokens    int
	Timeout         time.Duration
	ContextMaxChars int // 0 keeps documents verbatim
}

type OtelConfig struct {
	Enabled  bool
	Endpoint string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			BodyLimitBytes:     getEnvAsInt("BODY_LIMIT_BYTES", 10*1024*1024),
			NatsURL:            getEnv("NATS_URL", ""),
		},
		Upload: UploadConfig{
			MaxBytes:           getEnvAsInt64("MAX_UPLOAD_BYTES", 1024*1024),
			ExtractionCacheTTL: getEnvAsDuration("EXTRACTION_CACHE_TTL", time.Hour),
		},
		Ai: AIConfig{
			LLMProvider:     getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:        getEnv("LLM_MODEL", "llama3.1:8b"),
			LLMBaseURL:      getEnv("LLM_BASE_URL", ""),
			LLMAPIKey:       getEnv("LLM_API_KEY", ""),
			LLMMaxTokens:    getEnvAsInt("LLM_MAX_TOKENS", 1024),
			Timeout:         getEnvAsDuration("AI_TIMEOUT", 60*time.Second),
			ContextMaxChars: getEnvAsInt("CONTEXT_MAX_CHARS", 0),
		},
		Otel: OtelConfig{
			Enabled:  getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseInt(strValue, 10, 64); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go duration strings ("90s", "2m") or plain seconds.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	if seconds, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}
