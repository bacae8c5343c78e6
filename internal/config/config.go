package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Sanitize SanitizeConfig
	Log      LogConfig
	Metrics  MetricsConfig
	Email    EmailConfig
	Init     bool
}

type ServerConfig struct {
	Port         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret      string
	TokenExpiry time.Duration
	Issuer      string
}

type AuthConfig struct {
	LoginRateLimit  float64
	LoginRateBurst  int
	MinPasswordSize int
}

// SanitizeConfig bounds inbound request payloads before any business logic
// runs. The walker ceilings apply to the parsed JSON body.
type SanitizeConfig struct {
	MaxBodyBytes   int
	MaxQueryString int
	MaxQueryParam  int
	MaxPathParam   int
	MaxDepth       int
	MaxObjectKeys  int
	MaxArrayLen    int
	MaxValueLen    int
}

type LogConfig struct {
	Level string
}

type MetricsConfig struct {
	Enabled bool
	Port    string
}

type EmailConfig struct {
	ResendAPIKey string
	FromAddress  string
}

func Load() (*Config, error) {
	// .env is optional in production
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Environment:  getEnv("ENVIRONMENT", "development"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "erp"),
			Password: getEnv("DB_PASSWORD", "erp"),
			DBName:   getEnv("DB_NAME", "erpdb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET_KEY", ""),
			TokenExpiry: getDurationEnv("JWT_TOKEN_EXPIRATION", 1*time.Hour),
			Issuer:      getEnv("JWT_ISSUER", "erp-demo"),
		},
		Auth: AuthConfig{
			LoginRateLimit:  getFloatEnv("AUTH_LOGIN_RATE_LIMIT", 1),
			LoginRateBurst:  getIntEnv("AUTH_LOGIN_RATE_BURST", 5),
			MinPasswordSize: getIntEnv("AUTH_MIN_PASSWORD_SIZE", 8),
		},
		Sanitize: SanitizeConfig{
			MaxBodyBytes:   getIntEnv("MAX_REQUEST_BODY_SIZE", 100000),
			MaxQueryString: getIntEnv("MAX_QUERY_STRING_LENGTH", 2048),
			MaxQueryParam:  getIntEnv("MAX_QUERY_PARAM_LENGTH", 255),
			MaxPathParam:   getIntEnv("MAX_PATH_PARAM_LENGTH", 100),
			MaxDepth:       getIntEnv("MAX_DEPTH", 10),
			MaxObjectKeys:  getIntEnv("MAX_OBJECT_LENGTH", 100),
			MaxArrayLen:    getIntEnv("MAX_ARRAY_LENGTH", 100),
			MaxValueLen:    getIntEnv("MAX_VALUE_LENGTH", 1000),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "INFO"),
		},
		Metrics: MetricsConfig{
			Enabled: getBoolEnv("METRICS_ENABLED", true),
			Port:    getEnv("METRICS_PORT", "9090"),
		},
		Email: EmailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			FromAddress:  getEnv("EMAIL_FROM", "no-reply@erp-demo.local"),
		},
		Init: getBoolEnv("INIT", false),
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY is required")
	}

	return cfg, nil
}

// IsDevelopment reports whether the server runs in development mode.
// Development responses may carry internal error detail.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
