package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Rate provider kinds.
const (
	RateProviderHTTP = "http"
	RateProviderFile = "file"
)

// Config holds application configuration.
type Config struct {
	Port          string `mapstructure:"PORT" validate:"required,numeric"`
	DatabaseURL   string `mapstructure:"PGSQL_URL" validate:"required_if=StorageDriver postgres"`
	StorageDriver string `mapstructure:"STORAGE_DRIVER" validate:"oneof=postgres memory"`
	IsProduction  bool   `mapstructure:"IS_PRODUCTION"`

	JWTSecret         string        `mapstructure:"JWT_SECRET" validate:"required,min=16"`
	JWTExpiryDuration time.Duration `mapstructure:"JWT_EXPIRY_DURATION"`
	JWTIssuer         string        `mapstructure:"JWT_ISSUER"`

	BaseCurrency        string   `mapstructure:"BASE_CURRENCY" validate:"len=3,uppercase,alpha"`
	SupportedCurrencies []string `mapstructure:"SUPPORTED_CURRENCIES" validate:"dive,len=3,uppercase,alpha"`

	RateProvider              string        `mapstructure:"RATE_PROVIDER" validate:"oneof=http file"`
	RateProviderURL           string        `mapstructure:"RATE_PROVIDER_URL" validate:"required_if=RateProvider http"`
	RateProviderRatesPath     string        `mapstructure:"RATE_PROVIDER_RATES_PATH"`
	RateProviderTimestampPath string        `mapstructure:"RATE_PROVIDER_TIMESTAMP_PATH"`
	RateProviderFile          string        `mapstructure:"RATE_PROVIDER_FILE" validate:"required_if=RateProvider file"`
	RateProviderTimeout       time.Duration `mapstructure:"RATE_PROVIDER_TIMEOUT"`
	RateSyncInterval          time.Duration `mapstructure:"RATE_SYNC_INTERVAL" validate:"gt=0"`
	RateSyncOnStartup         bool          `mapstructure:"RATE_SYNC_ON_STARTUP"`

	MarketDataURL       string        `mapstructure:"MARKET_DATA_URL" validate:"omitempty,url"`
	MarketDataAPIKey    string        `mapstructure:"MARKET_DATA_API_KEY"`
	MarketDataCallDelay time.Duration `mapstructure:"MARKET_DATA_CALL_DELAY"`

	AMQPURL        string `mapstructure:"AMQP_URL"`
	AMQPExchange   string `mapstructure:"AMQP_EXCHANGE"`
	AMQPRoutingKey string `mapstructure:"AMQP_ROUTING_KEY"`

	PosthogAPIKey string `mapstructure:"POSTHOG_API_KEY"`

	APIRateLimit       string   `mapstructure:"API_RATE_LIMIT"`
	LoginRateLimit     string   `mapstructure:"LOGIN_RATE_LIMIT"`
	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "fintrack-app")
	v.SetDefault("BASE_CURRENCY", "USD")
	v.SetDefault("SUPPORTED_CURRENCIES", "")
	v.SetDefault("RATE_PROVIDER", RateProviderHTTP)
	v.SetDefault("RATE_PROVIDER_URL", "https://open.er-api.com/v6/latest/{base}")
	v.SetDefault("RATE_PROVIDER_RATES_PATH", "$.rates")
	v.SetDefault("RATE_PROVIDER_TIMESTAMP_PATH", "$.time_last_update_unix")
	v.SetDefault("RATE_PROVIDER_FILE", "")
	v.SetDefault("RATE_PROVIDER_TIMEOUT", "10s")
	v.SetDefault("RATE_SYNC_INTERVAL", "6h")
	v.SetDefault("RATE_SYNC_ON_STARTUP", true)
	v.SetDefault("MARKET_DATA_URL", "https://eodhd.com/api")
	v.SetDefault("MARKET_DATA_API_KEY", "")
	v.SetDefault("MARKET_DATA_CALL_DELAY", "1s")
	v.SetDefault("AMQP_URL", "")
	v.SetDefault("AMQP_EXCHANGE", "fintrack.events")
	v.SetDefault("AMQP_ROUTING_KEY", "records")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("API_RATE_LIMIT", "300-M")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
}

// LoadConfig loads configuration from environment variables and a .env file if present.
func LoadConfig() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:                      v.GetString("PORT"),
		DatabaseURL:               v.GetString("PGSQL_URL"),
		StorageDriver:             strings.ToLower(v.GetString("STORAGE_DRIVER")),
		IsProduction:              v.GetBool("IS_PRODUCTION"),
		JWTSecret:                 v.GetString("JWT_SECRET"),
		JWTIssuer:                 v.GetString("JWT_ISSUER"),
		BaseCurrency:              strings.ToUpper(strings.TrimSpace(v.GetString("BASE_CURRENCY"))),
		SupportedCurrencies:       splitList(v.GetString("SUPPORTED_CURRENCIES"), true),
		RateProvider:              strings.ToLower(v.GetString("RATE_PROVIDER")),
		RateProviderURL:           v.GetString("RATE_PROVIDER_URL"),
		RateProviderRatesPath:     v.GetString("RATE_PROVIDER_RATES_PATH"),
		RateProviderTimestampPath: v.GetString("RATE_PROVIDER_TIMESTAMP_PATH"),
		RateProviderFile:          v.GetString("RATE_PROVIDER_FILE"),
		RateSyncOnStartup:         v.GetBool("RATE_SYNC_ON_STARTUP"),
		MarketDataURL:             v.GetString("MARKET_DATA_URL"),
		MarketDataAPIKey:          v.GetString("MARKET_DATA_API_KEY"),
		AMQPURL:                   v.GetString("AMQP_URL"),
		AMQPExchange:              v.GetString("AMQP_EXCHANGE"),
		AMQPRoutingKey:            v.GetString("AMQP_ROUTING_KEY"),
		PosthogAPIKey:             v.GetString("POSTHOG_API_KEY"),
		APIRateLimit:              v.GetString("API_RATE_LIMIT"),
		LoginRateLimit:            v.GetString("LOGIN_RATE_LIMIT"),
		CORSAllowedOrigins:        splitList(v.GetString("CORS_ALLOWED_ORIGINS"), false),
	}

	cfg.JWTExpiryDuration = durationOrDefault(v, "JWT_EXPIRY_DURATION", time.Hour)
	cfg.RateProviderTimeout = durationOrDefault(v, "RATE_PROVIDER_TIMEOUT", 10*time.Second)
	cfg.RateSyncInterval = durationOrDefault(v, "RATE_SYNC_INTERVAL", 6*time.Hour)
	cfg.MarketDataCallDelay = durationOrDefault(v, "MARKET_DATA_CALL_DELAY", time.Second)

	if cfg.StorageDriver == StoragePostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.MarketDataAPIKey == "" {
		log.Println("Warning: MARKET_DATA_API_KEY not set. Investment price refresh will fail.")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func durationOrDefault(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func splitList(raw string, upper bool) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if upper {
			part = strings.ToUpper(part)
		}
		out = append(out, part)
	}
	return out
}
