// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Asset host backends selectable through ASSET_BACKEND.
const (
	BackendCloudinary = "cloudinary"
	BackendMinio      = "minio"
	BackendMemory     = "memory"
)

// Config holds all runtime configuration for the service.
type Config struct {
	Port      string
	AppEnv    string
	LogFormat string

	AssetBackend string
	AssetFolder  string

	// Cloudinary credentials. All three are required for the cloudinary backend;
	// when any is missing asset operations fail at call time.
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	// Object storage (S3-compatible: MinIO locally, any S3 provider in production)
	StorageEndpoint   string
	StorageAccessKey  string
	StorageSecretKey  string
	StorageBucket     string
	StoragePublicBase string // browser-accessible base URL, e.g. "http://localhost:9000/assets"

	// ReadHeaderTimeout bounds only the request line and headers. Upload
	// bodies are not bounded by the server; the upstream call is.
	ReadHeaderTimeout time.Duration
	UpstreamTimeout   time.Duration
	ShutdownTimeout   time.Duration
	MaxUploadBytes    int64

	CORSAllowedOrigins []string
}

// Load reads configuration from the given .env files (or ".env" when none are
// given) if present, then from environment variables.
func Load(envFiles ...string) *Config {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Println("no .env file found, reading from environment")
	}

	appEnv := getEnv("APP_ENV", "development")
	logFormat := "text"
	if appEnv == "production" {
		logFormat = "json"
	}

	return &Config{
		Port:      getEnv("PORT", "8080"),
		AppEnv:    appEnv,
		LogFormat: getEnv("LOG_FORMAT", logFormat),

		AssetBackend: strings.ToLower(getEnv("ASSET_BACKEND", BackendCloudinary)),
		AssetFolder:  getEnv("ASSET_FOLDER", "portfolio_uploads"),

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),

		StorageEndpoint:   getEnv("STORAGE_ENDPOINT", "localhost:9000"),
		StorageAccessKey:  getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
		StorageSecretKey:  getEnv("STORAGE_SECRET_KEY", "minioadmin"),
		StorageBucket:     getEnv("STORAGE_BUCKET", "assets"),
		StoragePublicBase: getEnv("STORAGE_PUBLIC_BASE", "http://localhost:9000/assets"),

		ReadHeaderTimeout: getDuration("READ_HEADER_TIMEOUT", 5*time.Second),
		UpstreamTimeout:   getDuration("UPSTREAM_TIMEOUT", 60*time.Second),
		ShutdownTimeout:   getDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		MaxUploadBytes:    getInt64("MAX_UPLOAD_BYTES", 32<<20),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}
}

// IsProduction returns true when the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// CloudinaryConfigured reports whether all three Cloudinary secrets are set.
func (c *Config) CloudinaryConfigured() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("config: invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}

func getInt64(key string, fallback int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		log.Printf("config: invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return n
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
