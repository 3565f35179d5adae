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

// Config holds all configuration for our application
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Redis    RedisConfig
	Security SecurityConfig
	Shop     ShopConfig
	Cart     CartConfig
	External ExternalConfig
	Logging  LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
	Maintenance bool
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	RateLimitPerMinute int
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
}

// ShopConfig contains storefront business configuration
type ShopConfig struct {
	CurrencyCode         string
	WhatsAppNumber       string
	FreeShippingMinimum  string
	BonusPromoMinimum    string
	FallbackDeliveryRate string
}

// CartConfig contains cart behavior configuration
type CartConfig struct {
	SessionTTL   time.Duration
	RemoveOnZero bool
}

// ExternalConfig contains external service configurations
type ExternalConfig struct {
	MercadoPago MercadoPagoConfig
	ViaCEP      ViaCEPConfig
}

// MercadoPagoConfig contains payment preference service configuration
type MercadoPagoConfig struct {
	BaseURL     string
	AccessToken string
	BackBaseURL string
	Timeout     time.Duration
}

// ViaCEPConfig contains postal code lookup service configuration
type ViaCEPConfig struct {
	BaseURL string
	Timeout time.Duration
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
			Name:        getEnv("APP_NAME", "Doces da Lu Storefront"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
			Maintenance: getEnvAsBool("APP_MAINTENANCE", false),
		},
		Server: ServerConfig{
			Port:         getEnv("APP_PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		Security: SecurityConfig{
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 100),
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			CORSAllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			CORSAllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept"}),
		},
		Shop: ShopConfig{
			CurrencyCode:         getEnv("SHOP_CURRENCY", "BRL"),
			WhatsAppNumber:       getEnv("SHOP_WHATSAPP_NUMBER", "5521991453401"),
			FreeShippingMinimum:  getEnv("SHOP_FREE_SHIPPING_MINIMUM", "200.00"),
			BonusPromoMinimum:    getEnv("SHOP_BONUS_PROMO_MINIMUM", "300.00"),
			FallbackDeliveryRate: getEnv("SHOP_FALLBACK_DELIVERY_RATE", "15.00"),
		},
		Cart: CartConfig{
			SessionTTL:   getEnvAsDuration("CART_SESSION_TTL", 24*time.Hour),
			RemoveOnZero: getEnvAsBool("CART_REMOVE_ON_ZERO", false),
		},
		External: ExternalConfig{
			MercadoPago: MercadoPagoConfig{
				BaseURL:     getEnv("MERCADO_PAGO_BASE_URL", "https://api.mercadopago.com"),
				AccessToken: getEnv("MERCADO_PAGO_ACCESS_TOKEN", ""),
				BackBaseURL: getEnv("MERCADO_PAGO_BACK_BASE_URL", "http://localhost:3000"),
				Timeout:     getEnvAsDuration("MERCADO_PAGO_TIMEOUT", 30*time.Second),
			},
			ViaCEP: ViaCEPConfig{
				BaseURL: getEnv("VIACEP_BASE_URL", "https://viacep.com.br"),
				Timeout: getEnvAsDuration("VIACEP_TIMEOUT", 10*time.Second),
			},
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
	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}

	if c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}

	if c.Shop.WhatsAppNumber == "" {
		return fmt.Errorf("SHOP_WHATSAPP_NUMBER is required")
	}

	if c.Shop.CurrencyCode == "" {
		return fmt.Errorf("SHOP_CURRENCY is required")
	}

	if c.Cart.SessionTTL <= 0 {
		return fmt.Errorf("CART_SESSION_TTL must be positive")
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

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
