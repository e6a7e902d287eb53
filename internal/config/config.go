package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Redis       RedisConfig
	RabbitMQ    RabbitMQConfig
	Pricing     PricingConfig
	Orders      OrdersConfig
	LogLevel    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the lib/pq connection URL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}

// RedisConfig is empty-Host when cart sessions stay in memory
type RedisConfig struct {
	Host       string
	Port       int
	Password   string
	DB         int
	SessionTTL time.Duration
}

func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

// RabbitMQConfig is empty-URL when order events are not published
type RabbitMQConfig struct {
	URL      string
	Exchange string
}

func (r RabbitMQConfig) Enabled() bool {
	return r.URL != ""
}

type PricingConfig struct {
	FreeShippingThreshold decimal.Decimal
	PreviewShippingFlat   decimal.Decimal
	CheckoutTaxRate       decimal.Decimal
	CheckoutShippingFlat  decimal.Decimal
}

type OrdersConfig struct {
	// StrictTransitions rejects status changes outside the lifecycle graph
	StrictTransitions bool
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	redisPort, err := strconv.Atoi(getEnvOrViper("REDIS_PORT", "6379"))
	if err != nil {
		return nil, fmt.Errorf("REDIS_PORT: %w", err)
	}
	redisDB, err := strconv.Atoi(getEnvOrViper("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("REDIS_DB: %w", err)
	}
	sessionTTL, err := time.ParseDuration(getEnvOrViper("CART_SESSION_TTL", "720h"))
	if err != nil {
		return nil, fmt.Errorf("CART_SESSION_TTL: %w", err)
	}
	strict, err := strconv.ParseBool(getEnvOrViper("ORDER_STRICT_TRANSITIONS", "true"))
	if err != nil {
		return nil, fmt.Errorf("ORDER_STRICT_TRANSITIONS: %w", err)
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "furnshop"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:       getEnvOrViper("REDIS_HOST", ""),
			Port:       redisPort,
			Password:   getEnvOrViper("REDIS_PASSWORD", ""),
			DB:         redisDB,
			SessionTTL: sessionTTL,
		},
		RabbitMQ: RabbitMQConfig{
			URL:      getEnvOrViper("RABBITMQ_URL", ""),
			Exchange: getEnvOrViper("RABBITMQ_EXCHANGE", "storefront.events"),
		},
		Orders: OrdersConfig{
			StrictTransitions: strict,
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	pricingValues := []struct {
		key string
		def string
		dst *decimal.Decimal
	}{
		{"FREE_SHIPPING_THRESHOLD", "750", &cfg.Pricing.FreeShippingThreshold},
		{"PREVIEW_SHIPPING_FLAT", "29", &cfg.Pricing.PreviewShippingFlat},
		{"CHECKOUT_TAX_RATE", "0.10", &cfg.Pricing.CheckoutTaxRate},
		{"CHECKOUT_SHIPPING_FLAT", "25", &cfg.Pricing.CheckoutShippingFlat},
	}
	for _, v := range pricingValues {
		d, err := decimal.NewFromString(getEnvOrViper(v.key, v.def))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", v.key, err)
		}
		if d.IsNegative() {
			return nil, fmt.Errorf("%s must not be negative", v.key)
		}
		*v.dst = d
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
