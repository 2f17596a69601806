package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Sheets     SheetsConfig
	Thresholds ThresholdConfig
	Scheduler  SchedulerConfig
	Logger     LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type SheetsConfig struct {
	CredentialsPath   string
	InventorySheetID  string
	AttendanceSheetID string
	FeedbackSheetID   string
}

type ThresholdConfig struct {
	LowStock  float64
	LowRating float64
}

type SchedulerConfig struct {
	LowStockSpec  string
	LowRatingSpec string
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// No .env file is fine, plain environment variables work too (Docker/K8s)

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	lowStock, _ := strconv.ParseFloat(getEnv("LOW_STOCK_THRESHOLD", "10"), 64)
	lowRating, _ := strconv.ParseFloat(getEnv("LOW_RATING_THRESHOLD", "2.5"), 64)

	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "8000"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Sheets: SheetsConfig{
			CredentialsPath:   getEnv("GOOGLE_SHEETS_CREDENTIALS_PATH", "service_account.json"),
			InventorySheetID:  getEnv("INVENTORY_SHEET_ID", ""),
			AttendanceSheetID: getEnv("ATTENDANCE_SHEET_ID", ""),
			FeedbackSheetID:   getEnv("FEEDBACK_SHEET_ID", ""),
		},
		Thresholds: ThresholdConfig{
			LowStock:  lowStock,
			LowRating: lowRating,
		},
		Scheduler: SchedulerConfig{
			LowStockSpec:  getEnv("LOW_STOCK_CRON", "0 8 * * *"),
			LowRatingSpec: getEnv("LOW_RATING_CRON", "0 21 * * *"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
