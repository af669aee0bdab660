package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"cv-forge/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Env             string
	Port            string
	CORSAllowOrigin []string

	DataFile         string
	BuildDir         string
	JobTitle         string
	PDFCommand       string
	BuildConcurrency int

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string
	MinIOEndpoint   string
	MinIOAccessKey  string
	MinIOSecretKey  string
	MinIOUseSSL     bool
	MinIOBucket     string

	DatabaseURL     string
	RedisAddr       string
	PreviewCacheTTL time.Duration

	LogLevel  string
	LogFormat string
}

// Defaults applied when the environment leaves a value unset.
const (
	DefaultJobTitle         = "Java developer"
	DefaultPDFCommand       = "pdflatex"
	DefaultBuildConcurrency = 4
	DefaultPreviewCacheTTL  = 5 * time.Minute
)

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	storeType := normalizeStoreType(getEnv("OBJECT_STORE", "local"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		telemetry.Warn("DATABASE_URL is not set in production, build registry is in-memory", nil)
	}

	return Config{
		Env:             env,
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),

		DataFile:         getEnv("DATA_FILE", "./data.yaml"),
		BuildDir:         getEnv("BUILD_DIR", "./build"),
		JobTitle:         getEnv("JOB_TITLE", DefaultJobTitle),
		PDFCommand:       getEnv("PDF_COMMAND", DefaultPDFCommand),
		BuildConcurrency: getEnvInt("BUILD_CONCURRENCY", DefaultBuildConcurrency),

		ObjectStoreType: storeType,
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", getEnv("BUILD_DIR", "./build")),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:     getEnv("SSE_KMS_KEY_ID", ""),
		MinIOEndpoint:   getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:  getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:  getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:     getEnvBool("MINIO_USE_SSL", false),
		MinIOBucket:     getEnv("MINIO_BUCKET", "cv-artifacts"),

		DatabaseURL:     dbURL,
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		PreviewCacheTTL: getEnvDuration("PREVIEW_CACHE_TTL", DefaultPreviewCacheTTL),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", defaultLogFormat(env)),
	}
}

// Validate reports settings that make the chosen backends unusable.
func (c Config) Validate() error {
	switch c.ObjectStoreType {
	case "s3":
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when OBJECT_STORE=s3")
		}
	case "minio":
		if c.MinIOEndpoint == "" {
			return fmt.Errorf("MINIO_ENDPOINT is required when OBJECT_STORE=minio")
		}
	}
	if c.BuildConcurrency <= 0 {
		return fmt.Errorf("BUILD_CONCURRENCY must be positive, got %d", c.BuildConcurrency)
	}
	return nil
}

// Logging returns the logger settings.
func (c Config) Logging() telemetry.Config {
	return telemetry.Config{Level: c.LogLevel, Format: c.LogFormat}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		telemetry.Warn("invalid integer env value", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
}

func getEnvBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		telemetry.Warn("invalid boolean env value", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		telemetry.Warn("invalid duration env value", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	case "minio":
		return "minio"
	default:
		return "local"
	}
}

func defaultLogFormat(env string) string {
	if env == "dev" || env == "local" {
		return "pretty"
	}
	return "json"
}
