package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	AutoMigrate        bool
}

// MinIOConfig holds object storage settings for MinIO.
// Trace-log archiving is disabled when Endpoint is empty.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool

	// RetentionDays expires archived trace logs; 0 keeps them.
	RetentionDays int
}

// Enabled reports whether an object store endpoint was configured.
func (c MinIOConfig) Enabled() bool {
	return c.Endpoint != ""
}

// HostConfig describes how events from the host platform are recognized.
type HostConfig struct {
	// EntityName is the logical name of the watched record type.
	EntityName string
	// PostImageName is the name of the post-update snapshot registered with the update step.
	PostImageName string
	// WebhookKey, when set, must accompany every inbound event.
	WebhookKey string
}

// ExternalAPIConfig holds the settings of the external REST service records are pushed to.
type ExternalAPIConfig struct {
	CreateURL      string
	UpdateURL      string
	CreateResponse string
	TimeoutSec     int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost     string
	Port        string
	Timezone    string
	Database    DatabaseConfig
	MinIO       MinIOConfig
	Host        HostConfig
	ExternalAPI ExternalAPIConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:  getEnv("APP_HOST", "localhost:8080"),
		Port:     getEnv("PORT", "8080"),
		Timezone: getEnv("APP_TIMEZONE", "UTC"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			AutoMigrate:        getEnvBool("DB_AUTO_MIGRATE", true),
		},
		MinIO: MinIOConfig{
			Endpoint:      getEnv("MINIO_ENDPOINT", ""),
			AccessKey:     getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:     getEnv("MINIO_SECRET_KEY", ""),
			Bucket:        getEnv("MINIO_BUCKET", ""),
			UseSSL:        getEnvBool("MINIO_USE_SSL", false),
			RetentionDays: getEnvInt("MINIO_RETENTION_DAYS", 0),
		},
		Host: HostConfig{
			EntityName:    getEnv("HOST_ENTITY_NAME", "sa_inquiry"),
			PostImageName: getEnv("HOST_POST_IMAGE_NAME", "postInquiry"),
			WebhookKey:    getEnv("WEBHOOK_KEY", ""),
		},
		ExternalAPI: ExternalAPIConfig{
			CreateURL:      getEnv("EXTERNAL_API_CREATE_URL", "http://rest.learncode.academy/api/student2/inquiries/"),
			UpdateURL:      getEnv("EXTERNAL_API_UPDATE_URL", "http://rest.learncode.academy/api/myapi/inquiries/"),
			CreateResponse: getEnv("EXTERNAL_API_CREATE_RESPONSE", "frederick"),
			TimeoutSec:     getEnvInt("EXTERNAL_API_TIMEOUT_SEC", 30),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
