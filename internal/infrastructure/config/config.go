package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type RuleSourceConfig struct {
	// BaseURL of the product configuration API serving credit rules.
	// Empty means the built-in stub is used.
	BaseURL        string
	APIKey         string
	TimeoutSeconds int
	MaxRetries     int
	RetryBackoffMs int
}

type DocumentStoreConfig struct {
	StagingDir string
	StoreDir   string
}

type AuthConfig struct {
	// JWTSecret enables HMAC validation; JWTPublicKeyPath enables RSA.
	JWTSecret        string
	JWTPublicKeyPath string
}

type ObservabilityConfig struct {
	LogLevel     string
	LogFormat    string
	OTLPEndpoint string
}

type Config struct {
	GRPCPort      int
	HTTPPort      int
	DB            DatabaseConfig
	Kafka         KafkaConfig
	RuleSource    RuleSourceConfig
	Documents     DocumentStoreConfig
	Auth          AuthConfig
	Observability ObservabilityConfig
	ServiceName   string
}

func (c Config) Validate() {
	if c.DB.Password == "" {
		panic("DB_PASSWORD environment variable is required")
	}
	if c.Auth.JWTSecret == "" && c.Auth.JWTPublicKeyPath == "" {
		panic("JWT_SECRET or JWT_PUBLIC_KEY_PATH environment variable is required")
	}
}

func Load() Config {
	return Config{
		GRPCPort: getEnvInt("GRPC_PORT", 9095),
		HTTPPort: getEnvInt("HTTP_PORT", 8095),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "credit"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "credit_dossier"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:   getEnv("KAFKA_TOPIC", "credit-dossier-events"),
		},
		RuleSource: RuleSourceConfig{
			BaseURL:        getEnv("RULE_SOURCE_URL", ""),
			APIKey:         getEnv("RULE_SOURCE_API_KEY", ""),
			TimeoutSeconds: getEnvInt("RULE_SOURCE_TIMEOUT_SECONDS", 10),
			MaxRetries:     getEnvInt("RULE_SOURCE_MAX_RETRIES", 3),
			RetryBackoffMs: getEnvInt("RULE_SOURCE_RETRY_BACKOFF_MS", 200),
		},
		Documents: DocumentStoreConfig{
			StagingDir: getEnv("DOCUMENT_STAGING_DIR", "/var/lib/credit-dossier/staging"),
			StoreDir:   getEnv("DOCUMENT_STORE_DIR", "/var/lib/credit-dossier/store"),
		},
		Auth: AuthConfig{
			JWTSecret:        getEnv("JWT_SECRET", ""),
			JWTPublicKeyPath: getEnv("JWT_PUBLIC_KEY_PATH", ""),
		},
		Observability: ObservabilityConfig{
			LogLevel:     getEnv("LOG_LEVEL", "info"),
			LogFormat:    getEnv("LOG_FORMAT", "json"),
			OTLPEndpoint: getEnv("OTLP_ENDPOINT", ""),
		},
		ServiceName: "credit-dossier-service",
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
