package config

import (
	"fmt"
	"time"

	"github.com/oakmoss/platon/internal/configs/env"
)

// Config holds all configuration for the application.
type Config struct {
	// MongoDB
	MongoURI    string
	MongoDBName string

	// Redis
	RedisHost               string
	RedisPassword           string
	RedisStreamKey          string
	RedisConsumerGroup      string
	RedisDeadLetterKey      string
	StreamRetentionDuration time.Duration

	// JWT
	JWTSecret string
	JWTIssuer string

	// Rate Limiting
	RateLimitRPS float64

	// Concurrency
	MaxConcurrentCompute int

	// Engine parameters (syntactic similarity detector)
	KGramSize       int
	WindowSize      int
	SyntacticWeight float64

	// Batch handling: batches at or under this size run synchronously over
	// HTTP; larger batches are queued to Redis and picked up by the stream
	// consumer, with the caller polling /report/:id.
	InlineBatchLimit int
	MaxFileSize      int64

	// Logging
	LogLevel string

	// Server
	ServerPort string
}

func Load() (*Config, error) {
	cfg := &Config{}

	// MongoDB
	cfg.MongoURI = env.GetEnv("MONGO_URI", "")
	cfg.MongoDBName = env.GetEnv("MONGO_DB_NAME", "")

	// Redis
	cfg.RedisHost = env.GetEnv("REDIS_HOST", "localhost:6379")
	cfg.RedisPassword = env.GetEnv("REDIS_PASSWORD", "")
	cfg.RedisStreamKey = env.GetEnv("REDIS_STREAM_KEY", "platon:batch-stream")
	cfg.RedisConsumerGroup = env.GetEnv("REDIS_CONSUMER_GROUP", "platon:batch-group")
	cfg.RedisDeadLetterKey = env.GetEnv("REDIS_DEAD_LETTER_KEY", "platon:batch-dlq")
	retentionHours := env.GetEnvInt("STREAM_RETENTION_DURATION", 24)
	cfg.StreamRetentionDuration = time.Duration(retentionHours) * time.Hour

	// JWT
	cfg.JWTSecret = env.GetEnv("JWT_SECRET", "")
	cfg.JWTIssuer = env.GetEnv("JWT_ISSUER", "platon")

	// Rate Limiting
	cfg.RateLimitRPS = env.GetEnvFloat("RATE_LIMIT_RPS", 10.0)

	// Concurrency
	cfg.MaxConcurrentCompute = env.GetEnvInt("MAX_CONCURRENT_COMPUTE", 5)

	// Engine parameters
	cfg.KGramSize = env.GetEnvInt("KGRAM_SIZE", 8)
	cfg.WindowSize = env.GetEnvInt("WINDOW_SIZE", 15)
	cfg.SyntacticWeight = env.GetEnvFloat("SYNTACTIC_WEIGHT", 1.0)

	cfg.InlineBatchLimit = env.GetEnvInt("INLINE_BATCH_LIMIT", 10)
	cfg.MaxFileSize = int64(env.GetEnvInt("MAX_FILE_SIZE_BYTES", 10*1024*1024))

	// Logging
	cfg.LogLevel = env.GetEnv("LOG_LEVEL", "info")

	// Server
	cfg.ServerPort = env.GetEnv("SERVER_PORT", "8080")

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if c.MongoDBName == "" {
		return fmt.Errorf("MONGO_DB_NAME is required")
	}
	if c.RedisHost == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.MaxConcurrentCompute <= 0 {
		return fmt.Errorf("MAX_CONCURRENT_COMPUTE must be greater than 0")
	}
	if c.StreamRetentionDuration <= 0 {
		return fmt.Errorf("STREAM_RETENTION_DURATION must be greater than 0")
	}
	if c.KGramSize < 2 {
		return fmt.Errorf("KGRAM_SIZE must be >= 2")
	}
	if c.WindowSize < 1 {
		return fmt.Errorf("WINDOW_SIZE must be >= 1")
	}
	if c.InlineBatchLimit <= 0 {
		return fmt.Errorf("INLINE_BATCH_LIMIT must be greater than 0")
	}
	return nil
}
