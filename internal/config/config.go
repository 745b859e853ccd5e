package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Keys       APIKeys
	Ai         AIConfig
	Events     EventsConfig
	Pipeline   PipelineConfig
	Classifier ClassifierConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	CorsAllowedHeaders string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
	HuggingFace  string
}

// ModelConfig describes one remote model endpoint. An empty Provider disables it.
type ModelConfig struct {
	Provider    string // "gemini", "huggingface", "ollama" or ""
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int
}

type AIConfig struct {
	Classifier     ModelConfig
	Generator      ModelConfig
	RequestTimeout time.Duration
	MaxRetries     int
	InitialBackoff time.Duration
}

type EventsConfig struct {
	Bus               string // "nats", "kafka" or "none"
	NatsURL           string
	KafkaBrokers      []string
	AnalyzedTopic     string
	InteractionsTopic string
}

type PipelineConfig struct {
	TopK               int
	CandidatePool      int
	HistoryTail        int
	ProfileCacheTTL    time.Duration
	SearchCacheTTL     time.Duration
	SearchDefaultLimit int
	SearchMaxLimit     int
}

type ClassifierConfig struct {
	LexiconPath string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			CorsAllowedHeaders: getEnv("CORS_ALLOWED_HEADERS", "authorization, x-client-info, apikey, content-type"),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			HuggingFace:  getEnv("HUGGINGFACE_API_KEY", ""),
		},
		Ai: AIConfig{
			Classifier: ModelConfig{
				Provider:    getEnv("CLASSIFIER_PROVIDER", "huggingface"),
				Model:       getEnv("CLASSIFIER_MODEL", "google/gemma-2-9b-it"),
				BaseURL:     getEnv("CLASSIFIER_BASE_URL", ""),
				Temperature: getEnvAsFloat("CLASSIFIER_TEMPERATURE", 0.1),
				MaxTokens:   getEnvAsInt("CLASSIFIER_MAX_TOKENS", 512),
			},
			Generator: ModelConfig{
				Provider:    getEnv("GENERATOR_PROVIDER", "gemini"),
				Model:       getEnv("GENERATOR_MODEL", "gemini-1.5-flash"),
				BaseURL:     getEnv("GENERATOR_BASE_URL", ""),
				Temperature: getEnvAsFloat("GENERATOR_TEMPERATURE", 0.7),
				MaxTokens:   getEnvAsInt("GENERATOR_MAX_TOKENS", 1024),
			},
			RequestTimeout: getEnvAsDuration("AI_REQUEST_TIMEOUT", 15*time.Second),
			MaxRetries:     getEnvAsInt("AI_MAX_RETRIES", 1),
			InitialBackoff: getEnvAsDuration("AI_INITIAL_BACKOFF", 500*time.Millisecond),
		},
		Events: EventsConfig{
			Bus:               getEnv("EVENT_BUS", "none"),
			NatsURL:           getEnv("NATS_URL", "nats://localhost:4222"),
			KafkaBrokers:      getEnvAsList("KAFKA_BROKERS", []string{"localhost:9092"}),
			AnalyzedTopic:     getEnv("COMPLAINT_ANALYZED_TOPIC", "complaint.analyzed"),
			InteractionsTopic: getEnv("INTERACTIONS_TOPIC", "complaint.interactions"),
		},
		Pipeline: PipelineConfig{
			TopK:               getEnvAsInt("PIPELINE_TOP_K", 3),
			CandidatePool:      getEnvAsInt("PIPELINE_CANDIDATE_POOL", 10),
			HistoryTail:        getEnvAsInt("PIPELINE_HISTORY_TAIL", 6),
			ProfileCacheTTL:    getEnvAsDuration("PROFILE_CACHE_TTL", 5*time.Minute),
			SearchCacheTTL:     getEnvAsDuration("SEARCH_CACHE_TTL", 30*time.Second),
			SearchDefaultLimit: getEnvAsInt("SEARCH_DEFAULT_LIMIT", 20),
			SearchMaxLimit:     getEnvAsInt("SEARCH_MAX_LIMIT", 100),
		},
		Classifier: ClassifierConfig{
			LexiconPath: getEnv("CLASSIFIER_LEXICON_PATH", "classifier.yaml"),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(strValue, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
