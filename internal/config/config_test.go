package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	cfg := Load()

	if cfg.Port != 9001 {
		t.Errorf("Expected port 9001, got %d", cfg.Port)
	}
	if cfg.ConfidenceThreshold != 0.25 {
		t.Errorf("Expected threshold 0.25, got %v", cfg.ConfidenceThreshold)
	}
	if cfg.CaptureInterval != 5*time.Second {
		t.Errorf("Expected capture interval 5s, got %v", cfg.CaptureInterval)
	}
	if cfg.RetryInterval != time.Second {
		t.Errorf("Expected retry interval 1s, got %v", cfg.RetryInterval)
	}
	if cfg.ActuatorTimeout != 2*time.Second {
		t.Errorf("Expected actuator timeout 2s, got %v", cfg.ActuatorTimeout)
	}
	if cfg.MaxImagePixels != 25_000_000 {
		t.Errorf("Expected 25M pixel cap, got %d", cfg.MaxImagePixels)
	}
	if cfg.MaxUploadSize != 10<<20 {
		t.Errorf("Expected 10 MiB upload limit, got %d", cfg.MaxUploadSize)
	}
	if cfg.ActuatorURL != "" {
		t.Errorf("Expected actuator disabled by default, got %q", cfg.ActuatorURL)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("PORT", "8081")
	t.Setenv("CONFIDENCE_THRESHOLD", "0.4")
	t.Setenv("CAPTURE_INTERVAL", "250ms")
	t.Setenv("RETRY_INTERVAL", "3")
	t.Setenv("ACTUATOR_URL", "http://192.168.1.50")
	t.Setenv("MAX_UPLOAD_MB", "2")

	cfg := Load()

	if cfg.Port != 8081 {
		t.Errorf("Expected port 8081, got %d", cfg.Port)
	}
	if cfg.ConfidenceThreshold != 0.4 {
		t.Errorf("Expected threshold 0.4, got %v", cfg.ConfidenceThreshold)
	}
	if cfg.CaptureInterval != 250*time.Millisecond {
		t.Errorf("Expected 250ms, got %v", cfg.CaptureInterval)
	}
	if cfg.RetryInterval != 3*time.Second {
		t.Errorf("Expected 3s, got %v", cfg.RetryInterval)
	}
	if cfg.ActuatorURL != "http://192.168.1.50" {
		t.Errorf("Unexpected actuator URL %q", cfg.ActuatorURL)
	}
	if cfg.MaxUploadSize != 2<<20 {
		t.Errorf("Expected 2 MiB, got %d", cfg.MaxUploadSize)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("PORT", "abc")
	t.Setenv("CAPTURE_INTERVAL", "soon")
	t.Setenv("NMS_THRESHOLD", "x0.5")

	cfg := Load()

	if cfg.Port != 9001 {
		t.Errorf("Expected default port, got %d", cfg.Port)
	}
	if cfg.CaptureInterval != 5*time.Second {
		t.Errorf("Expected default interval, got %v", cfg.CaptureInterval)
	}
	if cfg.NMSThreshold != 0.45 {
		t.Errorf("Expected default NMS threshold, got %v", cfg.NMSThreshold)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	content := "CAMERA_DEVICE=2\nCORS_ORIGIN=http://localhost:3000\n"
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}
	t.Setenv("ENV_FILE", envFile)
	// godotenv does not override variables that are already set, so make
	// sure the process environment has none of them.
	os.Unsetenv("CAMERA_DEVICE")
	os.Unsetenv("CORS_ORIGIN")
	t.Cleanup(func() {
		os.Unsetenv("CAMERA_DEVICE")
		os.Unsetenv("CORS_ORIGIN")
	})

	cfg := Load()

	if cfg.CameraDevice != 2 {
		t.Errorf("Expected camera device 2 from .env, got %d", cfg.CameraDevice)
	}
	if cfg.CORSOrigin != "http://localhost:3000" {
		t.Errorf("Expected CORS origin from .env, got %q", cfg.CORSOrigin)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()

	if err := loadEnvFile(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("Missing env file should be ignored, got %v", err)
	}
	// A directory exists but cannot be parsed as an env file.
	if err := loadEnvFile(dir); err == nil {
		t.Error("Expected error for an unreadable env file")
	}
}

func TestLoad_UnreadableEnvFileFallsBack(t *testing.T) {
	t.Setenv("ENV_FILE", t.TempDir())
	t.Setenv("PORT", "")

	cfg := Load()

	if cfg.Port != 9001 {
		t.Errorf("Expected defaults when the env file fails, got port %d", cfg.Port)
	}
}
