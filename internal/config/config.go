package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig `json:"server"`

	// Database holds users and, with the sql store backend, relationships.
	Database DatabaseConfig `json:"database"`

	MongoDB MongoDBConfig `json:"mongodb"`

	Redis RedisConfig `json:"redis"`

	Store StoreConfig `json:"store"`

	RateLimit RateLimitConfig `json:"rate_limit"`

	Pagination PaginationConfig `json:"pagination"`

	Auth AuthConfig `json:"auth"`

	Logging LoggingConfig `json:"logging"`
}

type ServerConfig struct {
	Port            string `json:"port"`
	Host            string `json:"host"`
	ReadTimeout     int    `json:"read_timeout"`     // Seconds
	WriteTimeout    int    `json:"write_timeout"`    // Seconds
	ShutdownTimeout int    `json:"shutdown_timeout"` // Seconds
	Environment     string `json:"environment"`      // development, staging, production
}

type DatabaseConfig struct {
	Driver       string `json:"driver"` // mysql, postgres
	Host         string `json:"host"`
	Port         string `json:"port"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	DatabaseName string `json:"database_name"`
	SSLMode      string `json:"ssl_mode"`
	MaxOpenConns int    `json:"max_open_conns"`
	MaxIdleConns int    `json:"max_idle_conns"`
}

type MongoDBConfig struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	Database string `json:"database"`
}

type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

// StoreConfig selects where relationship pairs live: sql, mongo or memory.
type StoreConfig struct {
	Backend     string `json:"backend"`
	MaxAttempts int    `json:"max_attempts"`
}

// RateLimitConfig configures the admission check in front of SendRequest.
type RateLimitConfig struct {
	Enabled  bool   `json:"enabled"`
	Backend  string `json:"backend"` // local, redis
	Requests int    `json:"requests"`
	Window   int    `json:"window"` // Seconds
	Burst    int    `json:"burst"`
}

type PaginationConfig struct {
	DefaultPageSize int `json:"default_page_size"`
	MaxPageSize     int `json:"max_page_size"`
}

type AuthConfig struct {
	JWTSecret string `json:"-"`
	TokenTTL  int    `json:"token_ttl"` // Hours
	Issuer    string `json:"issuer"`
}

type LoggingConfig struct {
	Level      string `json:"level"`       // debug, info, warn, error
	Format     string `json:"format"`      // json, console
	OutputPath string `json:"output_path"` // stdout, stderr, or file path
}

const (
	StoreSQL    = "sql"
	StoreMongo  = "mongo"
	StoreMemory = "memory"

	LimiterLocal = "local"
	LimiterRedis = "redis"
)

// LoadConfig reads .env (if present) and then the environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("SERVER_PORT", "8080"),
			Host:            getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:     getEnvIntOrDefault("SERVER_READ_TIMEOUT", 15),
			WriteTimeout:    getEnvIntOrDefault("SERVER_WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvIntOrDefault("SERVER_SHUTDOWN_TIMEOUT", 30),
			Environment:     getEnvOrDefault("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Driver:       getEnvOrDefault("DB_DRIVER", "mysql"),
			Host:         getEnvOrDefault("DB_HOST", "localhost"),
			Port:         getEnvOrDefault("DB_PORT", "3306"),
			Username:     getEnvOrDefault("DB_USER", "friendgraph"),
			Password:     getEnvOrDefault("DB_PASSWORD", "friendgraph123"),
			DatabaseName: getEnvOrDefault("DB_NAME", "friendgraph"),
			SSLMode:      getEnvOrDefault("DB_SSLMODE", "disable"),
			MaxOpenConns: getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5),
		},
		MongoDB: MongoDBConfig{
			Host:     getEnvOrDefault("MONGO_HOST", "localhost"),
			Port:     getEnvOrDefault("MONGO_PORT", "27017"),
			Username: getEnvOrDefault("MONGO_USERNAME", ""),
			Password: getEnvOrDefault("MONGO_PASSWORD", ""),
			Database: getEnvOrDefault("MONGO_DATABASE", "friendgraph"),
		},
		Redis: RedisConfig{
			Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       getEnvIntOrDefault("REDIS_DB", 0),
		},
		Store: StoreConfig{
			Backend:     strings.ToLower(getEnvOrDefault("STORE_BACKEND", StoreSQL)),
			MaxAttempts: getEnvIntOrDefault("STORE_MAX_ATTEMPTS", 8),
		},
		RateLimit: RateLimitConfig{
			Enabled:  getEnvBoolOrDefault("RATE_LIMIT_ENABLED", true),
			Backend:  strings.ToLower(getEnvOrDefault("RATE_LIMIT_BACKEND", LimiterLocal)),
			Requests: getEnvIntOrDefault("RATE_LIMIT_REQUESTS", 20),
			Window:   getEnvIntOrDefault("RATE_LIMIT_WINDOW", 60),
			Burst:    getEnvIntOrDefault("RATE_LIMIT_BURST", 5),
		},
		Pagination: PaginationConfig{
			DefaultPageSize: getEnvIntOrDefault("PAGE_SIZE", 10),
			MaxPageSize:     getEnvIntOrDefault("MAX_PAGE_SIZE", 100),
		},
		Auth: AuthConfig{
			JWTSecret: getEnvOrDefault("JWT_SECRET", ""),
			TokenTTL:  getEnvIntOrDefault("JWT_TTL_HOURS", 24),
			Issuer:    getEnvOrDefault("JWT_ISSUER", "friendgraph"),
		},
		Logging: LoggingConfig{
			Level:      getEnvOrDefault("LOG_LEVEL", "info"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "stdout"),
		},
	}
	return cfg
}

// Validate reports the first setting the service cannot start with.
func (cfg *Config) Validate() error {
	switch cfg.Store.Backend {
	case StoreSQL, StoreMongo, StoreMemory:
	default:
		return fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
	switch cfg.Database.Driver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
	if cfg.RateLimit.Enabled {
		switch cfg.RateLimit.Backend {
		case LimiterLocal, LimiterRedis:
		default:
			return fmt.Errorf("unknown rate limit backend %q", cfg.RateLimit.Backend)
		}
		if cfg.RateLimit.Requests <= 0 || cfg.RateLimit.Window <= 0 {
			return fmt.Errorf("rate limit requests and window must be positive")
		}
	}
	if cfg.Pagination.DefaultPageSize <= 0 || cfg.Pagination.MaxPageSize <= 0 {
		return fmt.Errorf("page sizes must be positive")
	}
	if cfg.Pagination.DefaultPageSize > cfg.Pagination.MaxPageSize {
		return fmt.Errorf("default page size %d exceeds max page size %d",
			cfg.Pagination.DefaultPageSize, cfg.Pagination.MaxPageSize)
	}
	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is not set")
	}
	return nil
}

func (cfg *Config) DSN() string {
	if cfg.Database.Driver == "postgres" {
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.Username,
			cfg.Database.Password,
			cfg.Database.DatabaseName,
			cfg.Database.SSLMode,
		)
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DatabaseName,
	)
}

func (cfg *Config) GetMongoURI() string {
	if cfg.MongoDB.Username == "" {
		return fmt.Sprintf("mongodb://%s:%s", cfg.MongoDB.Host, cfg.MongoDB.Port)
	}
	return fmt.Sprintf("mongodb://%s:%s@%s:%s",
		cfg.MongoDB.Username,
		cfg.MongoDB.Password,
		cfg.MongoDB.Host,
		cfg.MongoDB.Port,
	)
}

func (cfg *Config) RateLimitWindow() time.Duration {
	return time.Duration(cfg.RateLimit.Window) * time.Second
}

func (cfg *Config) TokenTTL() time.Duration {
	return time.Duration(cfg.Auth.TokenTTL) * time.Hour
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid integer for %s (%q), using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Invalid boolean for %s (%q), using %t", key, value, defaultValue)
		return defaultValue
	}
	return b
}
