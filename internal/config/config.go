// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	API         APIConfig
	Uploads     UploadConfig
	AWS         AWSConfig
	RateLimit   RateLimitConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	URI            string
	Name           string
	ConnectTimeout int // in seconds
}

type JWTConfig struct {
	SecretKey string
	TokenTTL  int // in hours
}

type APIConfig struct {
	BasePath string
}

type UploadConfig struct {
	Dir        string
	PublicPath string
	MaxSizeMB  int64
}

type RateLimitConfig struct {
	GeneralRPS      int
	GeneralBurst    int
	AuthPerMinute   int
	UploadPerMinute int
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	CloudFrontURL   string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "3000"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			URI:            getEnv("CONNECTION_STRING", "mongodb://localhost:27017"),
			Name:           getEnv("DB_NAME", "eshop"),
			ConnectTimeout: getEnvAsInt("DB_CONNECT_TIMEOUT", 10),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			TokenTTL:  getEnvAsInt("JWT_TOKEN_TTL", 24), // 1 day
		},
		API: APIConfig{
			BasePath: getEnv("API_URL", "/api/v1"),
		},
		Uploads: UploadConfig{
			Dir:        getEnv("UPLOAD_DIR", "./public/uploads"),
			PublicPath: getEnv("UPLOAD_PUBLIC_PATH", "/public/uploads"),
			MaxSizeMB:  int64(getEnvAsInt("UPLOAD_MAX_SIZE_MB", 10)),
		},
		RateLimit: RateLimitConfig{
			GeneralRPS:      getEnvAsInt("RATE_LIMIT_GENERAL_RPS", 20),
			GeneralBurst:    getEnvAsInt("RATE_LIMIT_GENERAL_BURST", 20),
			AuthPerMinute:   getEnvAsInt("RATE_LIMIT_AUTH_PER_MINUTE", 5),
			UploadPerMinute: getEnvAsInt("RATE_LIMIT_UPLOAD_PER_MINUTE", 10),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        getEnv("AWS_S3_BUCKET", ""),
			CloudFrontURL:   getEnv("AWS_CLOUDFRONT_URL", ""),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.JWT.SecretKey == "your-secret-key-change-in-production" && c.Environment == "production" {
		return fmt.Errorf("JWT secret key must be changed in production")
	}

	if c.Database.URI == "" {
		return fmt.Errorf("database connection string is required")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
