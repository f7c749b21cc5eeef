package config

import (
	"os"
	"strconv"
	"time"
)

// LogConfig holds logger settings.
type LogConfig struct {
	Level            string
	FilePath         string
	UseConsoleWriter bool
}

// SiteConfig holds settings of the public site renderer.
type SiteConfig struct {
	// DataDir is the directory holding the static fallback JSON files (carousel.json, menus.json, ...).
	DataDir         string
	RefreshInterval time.Duration
	ContactEmail    string
}

// SessionConfig holds admin session settings.
type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

// AppConfig is the centralized runtime configuration of the service.
// It is populated from environment variables. Credentials for the remote services live in Config
// and are resolved by Loader.
type AppConfig struct {
	AppName    string
	AppHost    string
	Port       string
	DevMode    bool
	ConfigFile string
	Log        LogConfig
	Site       SiteConfig
	Session    SessionConfig
}

// Load reads runtime configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppName:    getEnv("APP_NAME", "tearoom-cms"),
		AppHost:    getEnv("APP_HOST", "localhost:8080"),
		Port:       getEnv("PORT", "8080"),
		DevMode:    getEnvBool("DEV_MODE", false),
		ConfigFile: getEnv("CMS_CONFIG_FILE", DefaultDevConfigFile),
		Log: LogConfig{
			Level:            getEnv("LOG_LEVEL", "info"),
			FilePath:         getEnv("LOG_FILE_PATH", ""),
			UseConsoleWriter: getEnvBool("LOG_CONSOLE_PRETTY", false),
		},
		Site: SiteConfig{
			DataDir:         getEnv("DATA_DIR", "./public/data"),
			RefreshInterval: time.Duration(getEnvInt("REFRESH_INTERVAL_SEC", 300)) * time.Second,
			ContactEmail:    getEnv("CONTACT_EMAIL", "harriet@thewizardtearoom.co.uk"),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", ""),
			TTL:    time.Duration(getEnvInt("SESSION_TTL_MIN", 720)) * time.Minute,
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
