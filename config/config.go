// Package config handles loading and validation of application configuration
// from environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/parkpal/parkpal-backend/logger"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"

	minKeyLength = 8
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT" yaml:"environment"`
	Port           string      `mapstructure:"PORT" yaml:"port"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS" yaml:"allowed_origins"`
	Version        string      `mapstructure:"VERSION" yaml:"version"`
	FrontendURL    string      `mapstructure:"FRONTEND_URL" yaml:"frontend_url"`
	// InventorySource selects where parking spaces come from: "postgres"
	// for the live database or "fixture" for the embedded snapshot.
	InventorySource string `mapstructure:"INVENTORY_SOURCE" yaml:"inventory_source"`
}

// DatabaseConfig holds PostgreSQL database connection details.
type DatabaseConfig struct {
	Host         string `mapstructure:"HOST" yaml:"host"`
	Port         int    `mapstructure:"PORT" yaml:"port"`
	User         string `mapstructure:"USER" yaml:"user"`
	Password     string `mapstructure:"PASSWORD" yaml:"password"`
	Name         string `mapstructure:"NAME" yaml:"name"`
	SSLMode      string `mapstructure:"SSL_MODE" yaml:"ssl_mode"`
	MaxOpenConns int    `mapstructure:"MAX_OPEN_CONNS" yaml:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"MAX_IDLE_CONNS" yaml:"max_idle_conns"`
}

// URL returns a postgres:// connection URL suitable for golang-migrate and
// other URL-based database tools.
func (c *DatabaseConfig) URL() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.Name,
		sslmode,
	)
}

// ConnectionString returns a keyword/value pgx connection string.
func (c *DatabaseConfig) ConnectionString() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, sslmode)
}

// RedisConfig holds Redis connection details.
type RedisConfig struct {
	Address  string `mapstructure:"ADDRESS" yaml:"address"`
	Password string `mapstructure:"PASSWORD" yaml:"password"`
	DB       int    `mapstructure:"DB" yaml:"db"`
	UseTLS   bool   `mapstructure:"USE_TLS" yaml:"use_tls"`
}

// CommerceConfig holds connection details for the hosted commerce platform
// (customers, orders, line items).
type CommerceConfig struct {
	BaseURL        string `mapstructure:"BASE_URL" yaml:"base_url"`
	StoreID        string `mapstructure:"STORE_ID" yaml:"store_id"`
	SecretKey      string `mapstructure:"SECRET_KEY" yaml:"secret_key"`
	TimeoutSeconds int    `mapstructure:"TIMEOUT_SECONDS" yaml:"timeout_seconds"`
}

// PaymentConfig holds payment processor credentials.
type PaymentConfig struct {
	StripeSecretKey string `mapstructure:"STRIPE_SECRET_KEY" yaml:"stripe_secret_key"`
	Currency        string `mapstructure:"CURRENCY" yaml:"currency"`
}

// LLMConfig holds connection details for the hosted completion endpoint used
// to frame chat replies.
type LLMConfig struct {
	APIKey         string `mapstructure:"API_KEY" yaml:"api_key"`
	BaseURL        string `mapstructure:"BASE_URL" yaml:"base_url"`
	Model          string `mapstructure:"MODEL" yaml:"model"`
	TimeoutSeconds int    `mapstructure:"TIMEOUT_SECONDS" yaml:"timeout_seconds"`
}

// EmailConfig holds configuration for sending booking confirmation emails.
type EmailConfig struct {
	FromAddress  string `mapstructure:"FROM_ADDRESS" yaml:"from_address"`
	FromName     string `mapstructure:"FROM_NAME" yaml:"from_name"`
	ResendAPIKey string `mapstructure:"RESEND_API_KEY" yaml:"resend_api_key"`
}

// RateLimitConfig holds configuration for chat endpoint rate limiting.
type RateLimitConfig struct {
	// Maximum chat requests per window per client
	ChatRequestsPerMinute int `mapstructure:"CHAT_REQUESTS_PER_MINUTE" yaml:"chat_requests_per_minute"`
	// Window duration in seconds for rate limiting
	WindowSeconds int `mapstructure:"WINDOW_SECONDS" yaml:"window_seconds"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server    ServerConfig    `mapstructure:"SERVER" yaml:"server"`
	Database  DatabaseConfig  `mapstructure:"DATABASE" yaml:"database"`
	Redis     RedisConfig     `mapstructure:"REDIS" yaml:"redis"`
	Commerce  CommerceConfig  `mapstructure:"COMMERCE" yaml:"commerce"`
	Payment   PaymentConfig   `mapstructure:"PAYMENT" yaml:"payment"`
	LLM       LLMConfig       `mapstructure:"LLM" yaml:"llm"`
	Email     EmailConfig     `mapstructure:"EMAIL" yaml:"email"`
	RateLimit RateLimitConfig `mapstructure:"RATE_LIMIT" yaml:"rate_limit"`
}

// IsDevelopment returns true if the application is running in development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// sets default values, binds environment variables to config struct fields,
// unmarshals the configuration, and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.VERSION", "dev")
	v.SetDefault("SERVER.INVENTORY_SOURCE", "postgres")
	v.SetDefault("DATABASE.HOST", "localhost")
	v.SetDefault("DATABASE.PORT", 5432)
	v.SetDefault("DATABASE.USER", "postgres")
	v.SetDefault("DATABASE.PASSWORD", "")
	v.SetDefault("DATABASE.NAME", "parkpal_dev")
	v.SetDefault("DATABASE.SSL_MODE", "disable")
	v.SetDefault("DATABASE.MAX_OPEN_CONNS", 5)
	v.SetDefault("DATABASE.MAX_IDLE_CONNS", 2)
	v.SetDefault("REDIS.ADDRESS", "localhost:6379")
	v.SetDefault("REDIS.PASSWORD", "")
	v.SetDefault("REDIS.DB", 0)
	v.SetDefault("REDIS.USE_TLS", false)
	v.SetDefault("COMMERCE.BASE_URL", "https://api.swell.store")
	v.SetDefault("COMMERCE.TIMEOUT_SECONDS", 10)
	v.SetDefault("PAYMENT.CURRENCY", "gbp")
	v.SetDefault("LLM.BASE_URL", "https://api.together.xyz/v1")
	v.SetDefault("LLM.MODEL", "meta-llama/Llama-3.3-70B-Instruct-Turbo")
	v.SetDefault("LLM.TIMEOUT_SECONDS", 30)
	v.SetDefault("RATE_LIMIT.CHAT_REQUESTS_PER_MINUTE", 30)
	v.SetDefault("RATE_LIMIT.WINDOW_SECONDS", 60)
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		{"SERVER.ENVIRONMENT", "SERVER_ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.VERSION", "VERSION"},
		{"SERVER.FRONTEND_URL", "FRONTEND_URL"},
		{"SERVER.INVENTORY_SOURCE", "INVENTORY_SOURCE"},
		{"DATABASE.HOST", "DB_HOST"},
		{"DATABASE.PORT", "DB_PORT"},
		{"DATABASE.USER", "DB_USER"},
		{"DATABASE.PASSWORD", "DB_PASSWORD"},
		{"DATABASE.NAME", "DB_NAME"},
		{"DATABASE.SSL_MODE", "DB_SSL_MODE"},
		{"REDIS.ADDRESS", "REDIS_ADDRESS"},
		{"REDIS.PASSWORD", "REDIS_PASSWORD"},
		{"REDIS.DB", "REDIS_DB"},
		{"REDIS.USE_TLS", "REDIS_USE_TLS"},
		{"COMMERCE.BASE_URL", "COMMERCE_BASE_URL"},
		{"COMMERCE.STORE_ID", "COMMERCE_STORE_ID"},
		{"COMMERCE.SECRET_KEY", "COMMERCE_SECRET_KEY"},
		{"PAYMENT.STRIPE_SECRET_KEY", "STRIPE_SECRET_KEY"},
		{"PAYMENT.CURRENCY", "PAYMENT_CURRENCY"},
		{"LLM.API_KEY", "LLM_API_KEY"},
		{"LLM.BASE_URL", "LLM_BASE_URL"},
		{"LLM.MODEL", "LLM_MODEL"},
		{"EMAIL.FROM_ADDRESS", "EMAIL_FROM_ADDRESS"},
		{"EMAIL.FROM_NAME", "EMAIL_FROM_NAME"},
		{"EMAIL.RESEND_API_KEY", "RESEND_API_KEY"},
		{"RATE_LIMIT.CHAT_REQUESTS_PER_MINUTE", "RATE_LIMIT_CHAT_REQUESTS_PER_MINUTE"},
		{"RATE_LIMIT.WINDOW_SECONDS", "RATE_LIMIT_WINDOW_SECONDS"},
	}
	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	log.Infow("Configuration loaded",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
		"dbHost", cfg.Database.Host,
		"commerceKey", logger.MaskSensitiveString(cfg.Commerce.SecretKey, 4, 2),
		"llmKey", logger.MaskSensitiveString(cfg.LLM.APIKey, 4, 2),
	)

	return &cfg, nil
}

// validateConfig enforces the minimum configuration needed to boot. External
// collaborator keys are only required in production; development runs fall
// back to the fixture inventory and templated chat replies.
func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if cfg.Server.Environment != EnvDevelopment && cfg.Server.Environment != EnvProduction {
		return fmt.Errorf("invalid environment: %s", cfg.Server.Environment)
	}

	if cfg.IsProduction() {
		if len(cfg.Commerce.SecretKey) < minKeyLength {
			return fmt.Errorf("commerce secret key is required in production")
		}
		if len(cfg.Payment.StripeSecretKey) < minKeyLength {
			return fmt.Errorf("stripe secret key is required in production")
		}
		if len(cfg.LLM.APIKey) < minKeyLength {
			return fmt.Errorf("llm api key is required in production")
		}
	}

	return nil
}
