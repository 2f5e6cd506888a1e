package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Backend names for the order store.
const (
	BackendDynamoDB = "dynamodb"
	BackendPostgres = "postgres"
)

// Config is the full service configuration, loaded from environment
// variables (a .env file is honored via godotenv autoload in main).
type Config struct {
	Port     int
	LogLevel string
	Env      string

	// AdminSecret gates the management endpoints. Exact string comparison
	// against the X-Admin-Secret header; no sessions, no per-user identity.
	AdminSecret string

	// Backend selects the order store implementation.
	Backend string

	// StoreTimeout bounds every backing-store round trip so an unreachable
	// store surfaces as an error instead of a hung request.
	StoreTimeout time.Duration

	Dynamo DynamoConfig
	DB     DBConfig
	SMTP   SMTPConfig
}

// DynamoConfig holds the document-store settings.
type DynamoConfig struct {
	Region      string
	Endpoint    string
	AccessKey   string
	SecretKey   string
	OrdersTable string
}

// DBConfig holds the Postgres (tabular backend) settings.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// SMTPConfig holds the notification mail settings. An empty Host disables
// outbound mail.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "465"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	timeoutSecs, err := strconv.Atoi(getEnv("STORE_TIMEOUT_SECONDS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_TIMEOUT_SECONDS: %w", err)
	}

	backend := getEnv("ORDERS_BACKEND", BackendDynamoDB)
	if backend != BackendDynamoDB && backend != BackendPostgres {
		return nil, fmt.Errorf("unknown ORDERS_BACKEND %q", backend)
	}

	return &Config{
		Port:         port,
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Env:          getEnv("APP_ENV", "development"),
		AdminSecret:  getEnv("ADMIN_SECRET", ""),
		Backend:      backend,
		StoreTimeout: time.Duration(timeoutSecs) * time.Second,
		Dynamo: DynamoConfig{
			Region:      getEnv("AWS_REGION", "us-east-1"),
			Endpoint:    os.Getenv("DYNAMODB_ENDPOINT"),
			AccessKey:   getEnv("AWS_ACCESS_KEY_ID", "local"),
			SecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", "local"),
			OrdersTable: getEnv("ORDERS_TABLE", "tumble_cup_orders"),
		},
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "tumblecup"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     smtpPort,
			Username: getEnv("SMTP_USERNAME", "teamtumblecup@gmail.com"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getEnv("SMTP_FROM", "teamtumblecup@gmail.com"),
		},
	}, nil
}

// GetDBConnString returns the Postgres connection string.
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Name, c.DB.SSLMode)
}
