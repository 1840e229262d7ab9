// Package config centralises all environment configuration for the server.
// It should be imported only by `cmd/server` (and test code). Business-logic
// layers receive already-built dependencies via dependency-injection.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime option the server needs.
// Keep it flat and simple—prefer primitive types over embedding structs.
type Config struct {
	// Network
	Port string

	// GitHub
	GitHubToken string

	// Agent backend: "vertex", "openai", or "dummy"
	LLMProvider string

	// Vertex AI
	ProjectID   string
	Location    string
	VertexModel string

	// OpenAI-compatible endpoint
	OpenAIBaseURL string
	OpenAIAPIKey  string
	OpenAIModel   string

	// Portfolio store: "file" or "mongo"
	StoreBackend string
	MongoURI     string
	DBName       string
	OutputDir    string
	OutputName   string

	// Server tuning
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	PipelineTimeout time.Duration
}

// Load parses the environment (and an optional .env file) into Config.
// It terminates on missing critical variables so mis-configurations fail fast.
func Load() Config {
	// godotenv.Load() is a no-op if .env doesn't exist—safe in production.
	_ = godotenv.Load()

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		GitHubToken: must("GITHUB_TOKEN"),

		LLMProvider: getEnv("LLM_PROVIDER", "vertex"),
		ProjectID:   os.Getenv("GCP_PROJECT_ID"),
		Location:    getEnv("GCP_LOCATION", "us-central1"),
		VertexModel: getEnv("VERTEX_MODEL", "gemini-2.0-flash-lite-001"),

		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		StoreBackend: getEnv("PORTFOLIO_STORE", "file"),
		MongoURI:     os.Getenv("MONGODB_URI"),
		DBName:       getEnv("MONGODB_DB", "popolo"),
		OutputDir:    getEnv("OUTPUT_DIR", "."),
		OutputName:   getEnv("OUTPUT_NAME", "PORTFOLIO.md"),

		ReadTimeout:     getDuration("READ_TIMEOUT_SEC", 5),
		WriteTimeout:    getDuration("WRITE_TIMEOUT_SEC", 10),
		PipelineTimeout: getDuration("PIPELINE_TIMEOUT_SEC", 600),
	}

	switch cfg.LLMProvider {
	case "vertex":
		if cfg.ProjectID == "" {
			log.Fatalf("env var GCP_PROJECT_ID is required when LLM_PROVIDER=vertex")
		}
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			log.Fatalf("env var OPENAI_API_KEY is required when LLM_PROVIDER=openai")
		}
	}
	if cfg.StoreBackend == "mongo" && cfg.MongoURI == "" {
		log.Fatalf("env var MONGODB_URI is required when PORTFOLIO_STORE=mongo")
	}

	return cfg
}

// must fetches a required env var or terminates the program.
func must(key string) string {
	val := os.Getenv(key)
	if val == "" {
		log.Fatalf("env var %s is required", key)
	}
	return val
}

// getEnv returns env[key] if set, otherwise defaultVal.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getDuration reads an integer (seconds) from env, falling back to defaultSec.
func getDuration(key string, defaultSec int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if sec, err := strconv.Atoi(v); err == nil {
			return time.Duration(sec) * time.Second
		}
		log.Printf("invalid %s=%q; using default %ds", key, v, defaultSec)
	}
	return time.Duration(defaultSec) * time.Second
}
