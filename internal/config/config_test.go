package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

var configKeys = []string{
	"PORT", "APP_ENV", "LOG_FORMAT", "ASSET_BACKEND", "ASSET_FOLDER",
	"CLOUDINARY_CLOUD_NAME", "CLOUDINARY_API_KEY", "CLOUDINARY_API_SECRET",
	"READ_HEADER_TIMEOUT", "UPSTREAM_TIMEOUT", "SHUTDOWN_TIMEOUT", "MAX_UPLOAD_BYTES", "CORS_ALLOWED_ORIGINS",
}

// clearEnv unsets every key Load reads. godotenv never overrides a variable
// that is present, even when empty, so the keys must be removed outright.
// t.Setenv registers the restore.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.AssetBackend != BackendCloudinary {
		t.Errorf("AssetBackend = %q, want %q", cfg.AssetBackend, BackendCloudinary)
	}
	if cfg.AssetFolder != "portfolio_uploads" {
		t.Errorf("AssetFolder = %q, want portfolio_uploads", cfg.AssetFolder)
	}
	if cfg.UpstreamTimeout != 60*time.Second {
		t.Errorf("UpstreamTimeout = %s, want 60s", cfg.UpstreamTimeout)
	}
	if cfg.ReadHeaderTimeout != 5*time.Second {
		t.Errorf("ReadHeaderTimeout = %s, want 5s", cfg.ReadHeaderTimeout)
	}
	if cfg.MaxUploadBytes != 32<<20 {
		t.Errorf("MaxUploadBytes = %d, want %d", cfg.MaxUploadBytes, 32<<20)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want text", cfg.LogFormat)
	}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, []string{"*"}) {
		t.Errorf("CORSAllowedOrigins = %v, want [*]", cfg.CORSAllowedOrigins)
	}
	if cfg.CloudinaryConfigured() {
		t.Error("CloudinaryConfigured() = true with no secrets set")
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	content := "PORT=9090\nAPP_ENV=production\nCLOUDINARY_CLOUD_NAME=demo\nCLOUDINARY_API_KEY=key\nCLOUDINARY_API_SECRET=secret\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := Load(path)

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false, want true")
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want json in production", cfg.LogFormat)
	}
	if !cfg.CloudinaryConfigured() {
		t.Error("CloudinaryConfigured() = false with all secrets set")
	}
}

func TestInvalidNumbersFallBack(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		checkFn func(*Config) bool
	}{
		{"bad duration", "UPSTREAM_TIMEOUT", "soon", func(c *Config) bool { return c.UpstreamTimeout == 60*time.Second }},
		{"negative duration", "SHUTDOWN_TIMEOUT", "-5s", func(c *Config) bool { return c.ShutdownTimeout == 30*time.Second }},
		{"custom duration", "UPSTREAM_TIMEOUT", "5s", func(c *Config) bool { return c.UpstreamTimeout == 5*time.Second }},
		{"bad size", "MAX_UPLOAD_BYTES", "lots", func(c *Config) bool { return c.MaxUploadBytes == 32<<20 }},
		{"zero size", "MAX_UPLOAD_BYTES", "0", func(c *Config) bool { return c.MaxUploadBytes == 32<<20 }},
		{"custom size", "MAX_UPLOAD_BYTES", "1024", func(c *Config) bool { return c.MaxUploadBytes == 1024 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			cfg := Load(filepath.Join(t.TempDir(), "missing.env"))
			if !tt.checkFn(cfg) {
				t.Errorf("%s=%q not handled as expected", tt.key, tt.value)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" https://a.example , ,https://b.example")
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitList = %v, want %v", got, want)
	}
}
