package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the storefront client
type Config struct {
	App     AppConfig
	API     APIConfig
	Retry   RetryConfig
	Pricing PricingConfig
	Storage StorageConfig
	Redis   RedisConfig
	DevAPI  DevAPIConfig
	Logging LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
}

// APIConfig contains the remote storefront API configuration
type APIConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

// RetryConfig contains per-resource retry budgets.
// Products carry a bigger budget than categories: the product list is the
// primary page content and is worth waiting for.
type RetryConfig struct {
	Products   ResourceRetry
	Categories ResourceRetry
	Orders     ResourceRetry
	MaxDelay   time.Duration
}

// ResourceRetry is the retry budget for one resource type
type ResourceRetry struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// PricingConfig contains checkout pricing constants
type PricingConfig struct {
	ShippingCost          string
	FreeShippingThreshold string
}

// StorageConfig selects the key-value backend for persisted session state
type StorageConfig struct {
	Backend  string // memory, file or redis
	FilePath string
}

// RedisConfig contains Redis configuration for the redis storage backend
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// DevAPIConfig configures the local development API server
type DevAPIConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	JWTSecret    string
	TokenExpiry  time.Duration
	BcryptCost   int
	DBDriver     string // sqlite or postgres
	DBHost       string
	DBPort       string
	DBName       string
	DBUser       string
	DBPassword   string
	DBSSLMode    string
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
			Name:        getEnv("APP_NAME", "Storefront Client"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
		},
		API: APIConfig{
			BaseURL:        getEnv("API_BASE_URL", "http://localhost:8080/api"),
			RequestTimeout: getEnvAsDuration("API_REQUEST_TIMEOUT", 30*time.Second),
		},
		Retry: RetryConfig{
			Products: ResourceRetry{
				MaxRetries: getEnvAsInt("RETRY_PRODUCTS_MAX", 3),
				BaseDelay:  getEnvAsDuration("RETRY_PRODUCTS_BASE_DELAY", 1*time.Second),
			},
			Categories: ResourceRetry{
				MaxRetries: getEnvAsInt("RETRY_CATEGORIES_MAX", 2),
				BaseDelay:  getEnvAsDuration("RETRY_CATEGORIES_BASE_DELAY", 500*time.Millisecond),
			},
			Orders: ResourceRetry{
				MaxRetries: getEnvAsInt("RETRY_ORDERS_MAX", 2),
				BaseDelay:  getEnvAsDuration("RETRY_ORDERS_BASE_DELAY", 500*time.Millisecond),
			},
			MaxDelay: getEnvAsDuration("RETRY_MAX_DELAY", 8*time.Second),
		},
		Pricing: PricingConfig{
			ShippingCost:          getEnv("PRICING_SHIPPING_COST", "29.99"),
			FreeShippingThreshold: getEnv("PRICING_FREE_SHIPPING_THRESHOLD", "150.00"),
		},
		Storage: StorageConfig{
			Backend:  getEnv("STORAGE_BACKEND", "file"),
			FilePath: getEnv("STORAGE_FILE_PATH", ".storefront/session.json"),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		DevAPI: DevAPIConfig{
			Port:         getEnv("DEVAPI_PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("DEVAPI_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("DEVAPI_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvAsDuration("DEVAPI_IDLE_TIMEOUT", 60*time.Second),
			JWTSecret:    getEnv("DEVAPI_JWT_SECRET", "local-development-secret-do-not-use-in-prod"),
			TokenExpiry:  getEnvAsDuration("DEVAPI_TOKEN_EXPIRY", 24*time.Hour),
			BcryptCost:   getEnvAsInt("DEVAPI_BCRYPT_COST", 10),
			DBDriver:     getEnv("DEVAPI_DB_DRIVER", "sqlite"),
			DBHost:       getEnv("DEVAPI_DB_HOST", "localhost"),
			DBPort:       getEnv("DEVAPI_DB_PORT", "5432"),
			DBName:       getEnv("DEVAPI_DB_NAME", "storefront_dev"),
			DBUser:       getEnv("DEVAPI_DB_USER", "storefront"),
			DBPassword:   getEnv("DEVAPI_DB_PASSWORD", "storefront"),
			DBSSLMode:    getEnv("DEVAPI_DB_SSL_MODE", "disable"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "text"),
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
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}

	switch c.Storage.Backend {
	case "memory", "file", "redis":
	default:
		return fmt.Errorf("STORAGE_BACKEND must be one of memory, file, redis")
	}

	if c.Storage.Backend == "file" && c.Storage.FilePath == "" {
		return fmt.Errorf("STORAGE_FILE_PATH is required for the file backend")
	}

	if c.Storage.Backend == "redis" && c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required for the redis backend")
	}

	if c.Retry.Products.MaxRetries < 0 || c.Retry.Categories.MaxRetries < 0 || c.Retry.Orders.MaxRetries < 0 {
		return fmt.Errorf("retry budgets cannot be negative")
	}

	switch c.DevAPI.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("DEVAPI_DB_DRIVER must be sqlite or postgres")
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

// GetDevAPIDSN returns the postgres connection string for the dev API
func (c *Config) GetDevAPIDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DevAPI.DBHost,
		c.DevAPI.DBPort,
		c.DevAPI.DBUser,
		c.DevAPI.DBPassword,
		c.DevAPI.DBName,
		c.DevAPI.DBSSLMode,
	)
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
