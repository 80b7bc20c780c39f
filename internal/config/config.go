package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port int

	ModelPath           string
	ConfidenceThreshold float64 // Minimalna pewność detekcji (0-1)
	NMSThreshold        float64
	ModelInputSize      int // Rozmiar wejścia sieci (kwadrat)

	CameraDevice    int
	CaptureInterval time.Duration // Przerwa między klatkami w pętli kamery
	RetryInterval   time.Duration // Przerwa po nieudanym odczycie klatki

	ActuatorURL     string // Adres ESP32, pusty = brak powiadomień
	ActuatorTimeout time.Duration

	MaxUploadSize  int64 // W bajtach
	MaxImagePixels int   // Maksymalna liczba pikseli (szerokość × wysokość)
	CORSOrigin     string

	LogDirectory string
	LogLevel     string
}

// Load reads the configuration from the environment. Values from an optional
// .env file (ENV_FILE, default ".env") are applied first; variables already
// set in the process environment win.
func Load() *Config {
	if err := loadEnvFile(getEnv("ENV_FILE", ".env")); err != nil {
		fmt.Printf("⚠️  Ignoring env file: %v\n", err)
	}

	return &Config{
		Port:                getEnvAsInt("PORT", 9001),
		ModelPath:           getEnv("MODEL_PATH", filepath.Join(".", "models", "leather_defect.onnx")),
		ConfidenceThreshold: getEnvAsFloat("CONFIDENCE_THRESHOLD", 0.25),
		NMSThreshold:        getEnvAsFloat("NMS_THRESHOLD", 0.45),
		ModelInputSize:      getEnvAsInt("MODEL_INPUT_SIZE", 640),
		CameraDevice:        getEnvAsInt("CAMERA_DEVICE", 0),
		CaptureInterval:     getEnvAsDuration("CAPTURE_INTERVAL", 5*time.Second),
		RetryInterval:       getEnvAsDuration("RETRY_INTERVAL", time.Second),
		ActuatorURL:         getEnv("ACTUATOR_URL", ""),
		ActuatorTimeout:     getEnvAsDuration("ACTUATOR_TIMEOUT", 2*time.Second),
		MaxUploadSize:       getEnvAsInt64("MAX_UPLOAD_MB", 10) << 20,
		MaxImagePixels:      getEnvAsInt("MAX_IMAGE_PIXELS", 25_000_000),
		CORSOrigin:          getEnv("CORS_ORIGIN", "*"),
		LogDirectory:        getEnv("LOG_DIR", filepath.Join(".", "logs")),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
	}
}

// loadEnvFile applies path with godotenv. A missing file is not an error; an
// unreadable or malformed one is.
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

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

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration accepts Go duration strings ("5s", "250ms") or a bare
// number of seconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if seconds, err := strconv.ParseFloat(value, 64); err == nil {
		return time.Duration(seconds * float64(time.Second))
	}
	return defaultValue
}
