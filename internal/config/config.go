// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the client core
type Config struct {
	App         AppConfig
	Backend     BackendConfig
	Redis       RedisConfig
	JWT         JWTConfig
	Security    SecurityConfig
	Translation TranslationConfig
	Weather     WeatherConfig
	Sync        SyncConfig
	DevServer   DevServerConfig
	Logging     LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
	StoreName   string
	StorePhone  string
	StoreEmail  string
}

// BackendConfig contains remote backend configuration
type BackendConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

// RedisConfig contains configuration for the local persisted store
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	KeyPrefix    string
}

// JWTConfig contains auth token configuration
type JWTConfig struct {
	Issuer string
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	BcryptCost int
}

// TranslationConfig contains translation layer configuration
type TranslationConfig struct {
	SourceLang     string
	TargetLang     string
	RequestTimeout time.Duration
}

// WeatherConfig contains weather widget configuration
type WeatherConfig struct {
	BaseURL         string
	RequestTimeout  time.Duration
	DefaultSummary  string
	DefaultTempC    float64
	DefaultLocation string
}

// SyncConfig contains cart sync agent configuration
type SyncConfig struct {
	Interval time.Duration
}

// DevServerConfig contains development backend configuration
type DevServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "AgriMart Client"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
			StoreName:   getEnv("STORE_NAME", "AgriMart Farm Supplies"),
			StorePhone:  getEnv("STORE_PHONE", ""),
			StoreEmail:  getEnv("STORE_EMAIL", "orders@example.com"),
		},
		Backend: BackendConfig{
			BaseURL:        getEnv("BACKEND_BASE_URL", "http://localhost:8080/api/v1"),
			RequestTimeout: getEnvAsDuration("BACKEND_REQUEST_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
			KeyPrefix:    getEnv("REDIS_KEY_PREFIX", "agrimart"),
		},
		JWT: JWTConfig{
			Issuer: getEnv("JWT_ISSUER", "agrimart-backend"),
		},
		Security: SecurityConfig{
			BcryptCost: getEnvAsInt("BCRYPT_COST", 12),
		},
		Translation: TranslationConfig{
			SourceLang:     getEnv("TRANSLATION_SOURCE_LANG", "en"),
			TargetLang:     getEnv("TRANSLATION_TARGET_LANG", "kn"),
			RequestTimeout: getEnvAsDuration("TRANSLATION_REQUEST_TIMEOUT", 8*time.Second),
		},
		Weather: WeatherConfig{
			BaseURL:         getEnv("WEATHER_BASE_URL", "https://api.open-meteo.com/v1/forecast"),
			RequestTimeout:  getEnvAsDuration("WEATHER_REQUEST_TIMEOUT", 5*time.Second),
			DefaultSummary:  getEnv("WEATHER_DEFAULT_SUMMARY", "Partly cloudy"),
			DefaultTempC:    getEnvAsFloat("WEATHER_DEFAULT_TEMP_C", 27.0),
			DefaultLocation: getEnv("WEATHER_DEFAULT_LOCATION", "Bengaluru"),
		},
		Sync: SyncConfig{
			Interval: getEnvAsDuration("CART_SYNC_INTERVAL", 60*time.Second),
		},
		DevServer: DevServerConfig{
			Port:         getEnv("DEV_SERVER_PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("DEV_SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("DEV_SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvAsDuration("DEV_SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if !strings.HasPrefix(c.Backend.BaseURL, "http://") && !strings.HasPrefix(c.Backend.BaseURL, "https://") {
		return fmt.Errorf("BACKEND_BASE_URL must be an http(s) URL")
	}

	if c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}

	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31")
	}

	if c.Sync.Interval < time.Second {
		return fmt.Errorf("CART_SYNC_INTERVAL must be at least 1s")
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions for environment variable parsing

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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
