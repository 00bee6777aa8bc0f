package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all process configuration, loaded from the environment.
type Config struct {
	Server  ServerConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Shopify ShopifyConfig
	Groq    GroqConfig
	Sync    SyncConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type ShopifyConfig struct {
	APISecret  string
	APIVersion string
}

type GroqConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type SyncConfig struct {
	// MaxCatalogProducts is the in-memory buffering ceiling for a catalog
	// fetch; larger catalogs fail explicitly rather than truncate.
	MaxCatalogProducts int
	// GenerationDelayMS spaces consecutive generation calls within a pass.
	GenerationDelayMS int
}

// Load reads configuration from the environment, applying defaults.
func Load() *Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	maxCatalog, _ := strconv.Atoi(getEnv("MAX_CATALOG_PRODUCTS", "10000"))
	generationDelay, _ := strconv.Atoi(getEnv("GENERATION_DELAY_MS", "500"))

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "shopify_summary_sync"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Shopify: ShopifyConfig{
			APISecret:  getEnv("SHOPIFY_API_SECRET", ""),
			APIVersion: getEnv("SHOPIFY_API_VERSION", "2026-01"),
		},
		Groq: GroqConfig{
			APIKey:  getEnv("GROQ_API_KEY", ""),
			Model:   getEnv("GROQ_MODEL", "meta-llama/llama-4-scout-17b-16e-instruct"),
			BaseURL: getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		},
		Sync: SyncConfig{
			MaxCatalogProducts: maxCatalog,
			GenerationDelayMS:  generationDelay,
		},
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
