package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Stream   StreamConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	EventTopic         string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	TokenURL     string
	UserInfoURL  string
	JWTSecret    string
	// CredentialKey is the 32-byte hex key sealing stored API keys.
	CredentialKey string
}

type StorageConfig struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
	UploadDir       string
}

type StreamConfig struct {
	// BufferTTL bounds how long a finished stream stays replayable in Redis.
	BufferTTL time.Duration
	// CheckpointTTL is the janitor's expiry for abandoned checkpoints.
	CheckpointTTL time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			EventTopic:         getEnv("EVENT_TOPIC_NAME", "CHAT_DOMAIN_EVENTS"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			ClientID:      getEnv("OIDC_CLIENT_ID", ""),
			ClientSecret:  getEnv("OIDC_CLIENT_SECRET", ""),
			RedirectURL:   getEnv("OIDC_REDIRECT_URL", "http://localhost:3000/auth/v1/callback"),
			AuthURL:       getEnv("OIDC_AUTH_URL", "https://accounts.google.com/o/oauth2/auth"),
			TokenURL:      getEnv("OIDC_TOKEN_URL", "https://oauth2.googleapis.com/token"),
			UserInfoURL:   getEnv("OIDC_USERINFO_URL", "https://www.googleapis.com/oauth2/v2/userinfo"),
			JWTSecret:     getEnv("JWT_SECRET", ""),
			CredentialKey: getEnv("CREDENTIAL_SEAL_KEY", ""),
		},
		Storage: StorageConfig{
			Region:          getEnv("S3_REGION", "us-east-1"),
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			Bucket:          getEnv("S3_BUCKET", "chathub"),
			PublicURL:       getEnv("S3_PUBLIC_URL", ""),
			UploadDir:       getEnv("S3_UPLOAD_DIR", "uploads"),
		},
		Stream: StreamConfig{
			BufferTTL:     getEnvAsDuration("STREAM_BUFFER_TTL", 30*time.Minute),
			CheckpointTTL: getEnvAsDuration("STREAM_CHECKPOINT_TTL", 30*time.Minute),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	if secs, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
