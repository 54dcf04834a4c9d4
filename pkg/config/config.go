package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// App
	Port string
	Env  string

	// Neo4j
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	Neo4jDatabase string

	// Neo4j Query API (HTTP fallback for the bolt driver)
	QueryAPIURL string

	// Embeddings
	EmbeddingURL    string
	EmbeddingAPIKey string
	EmbeddingModel  string

	// Duplicate detection
	DuplicateThreshold float64
	SimilarityLimit    int

	// Reporting windows
	DigestDays int
	EntityDays int

	// Optional YAML file with articles to ingest instead of the built-in batch
	SeedFile string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		Neo4jURI:           getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:          getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:      getEnv("NEO4J_PASSWORD", "password"),
		Neo4jDatabase:      getEnv("NEO4J_DATABASE", "neo4j"),
		QueryAPIURL:        getEnv("NEO4J_QUERY_API_URL", ""),
		EmbeddingURL:       getEnv("EMBEDDING_URL", "http://localhost:4000"),
		EmbeddingAPIKey:    getEnv("EMBEDDING_API_KEY", ""),
		EmbeddingModel:     getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		DuplicateThreshold: getEnvFloat("DUPLICATE_THRESHOLD", 0.4),
		SimilarityLimit:    getEnvInt("SIMILARITY_LIMIT", 5),
		DigestDays:         getEnvInt("DIGEST_DAYS", 7),
		EntityDays:         getEnvInt("ENTITY_DAYS", 14),
		SeedFile:           getEnv("SEED_FILE", ""),
	}

	if cfg.QueryAPIURL == "" {
		derived, err := deriveQueryAPIURL(cfg.Neo4jURI, cfg.Neo4jDatabase)
		if err != nil {
			return nil, fmt.Errorf("config validation failed: %w", err)
		}
		cfg.QueryAPIURL = derived
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	if c.Neo4jURI == "" {
		return fmt.Errorf("NEO4J_URI is required")
	}
	if c.Neo4jUser == "" {
		return fmt.Errorf("NEO4J_USER is required")
	}
	if c.Neo4jPassword == "" {
		return fmt.Errorf("NEO4J_PASSWORD is required")
	}
	if c.Neo4jDatabase == "" {
		return fmt.Errorf("NEO4J_DATABASE is required")
	}
	if c.EmbeddingModel == "" {
		return fmt.Errorf("EMBEDDING_MODEL is required")
	}
	if c.DuplicateThreshold < 0 || c.DuplicateThreshold > 1 {
		return fmt.Errorf("DUPLICATE_THRESHOLD must be within [0,1]")
	}
	// Embedding API key is optional: the pipeline falls back to the
	// deterministic hash embedder when the remote provider is unreachable.
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// deriveQueryAPIURL builds the Neo4j Query API v2 endpoint from the bolt URI
// host when no explicit template is configured.
func deriveQueryAPIURL(neo4jURI, database string) (string, error) {
	parsed, err := url.Parse(neo4jURI)
	if err != nil {
		return "", fmt.Errorf("NEO4J_URI is not a valid URI: %w", err)
	}
	if parsed.Hostname() == "" {
		return "", fmt.Errorf("NEO4J_URI must include a hostname")
	}
	return fmt.Sprintf("https://%s/db/%s/query/v2", parsed.Hostname(), database), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var result float64
		if _, err := fmt.Sscanf(value, "%f", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
