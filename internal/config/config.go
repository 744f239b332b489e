package config

import (
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Server     ServerConfig
	Gateway    GatewayConfig
	Redis      RedisConfig
	MySQL      MySQLConfig
	Downstream DownstreamConfig
}

type ServerConfig struct {
	Port string
	Host string
}

type GatewayConfig struct {
	Port        string
	Host        string
	AccountsURL string
	LoansURL    string
	CardsURL    string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	PoolSize int
}

type MySQLConfig struct {
	Host     string
	User     string
	Password string
	Database string
}

// DownstreamConfig holds the loans/cards client endpoints and the per-call
// budget applied to each fan-out leg.
type DownstreamConfig struct {
	LoansURL string
	CardsURL string
	Timeout  time.Duration
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
		},
		Gateway: GatewayConfig{
			Port:        getEnv("GATEWAY_PORT", "8072"),
			Host:        getEnv("GATEWAY_HOST", "0.0.0.0"),
			AccountsURL: getEnv("ACCOUNTS_SERVICE_URL", "http://localhost:8080"),
			LoansURL:    getEnv("LOANS_SERVICE_URL", "http://localhost:8090"),
			CardsURL:    getEnv("CARDS_SERVICE_URL", "http://localhost:9000"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			PoolSize: getEnvAsInt("REDIS_POOL_SIZE", 100),
		},
		MySQL: MySQLConfig{
			Host:     getEnv("MYSQL_HOST", "localhost:3306"),
			User:     getEnv("MYSQL_USER", "eazybank"),
			Password: getEnv("MYSQL_PASSWORD", "eazybank123"),
			Database: getEnv("MYSQL_DATABASE", "eazybank"),
		},
		Downstream: DownstreamConfig{
			LoansURL: getEnv("LOANS_SERVICE_URL", "http://localhost:8090"),
			CardsURL: getEnv("CARDS_SERVICE_URL", "http://localhost:9000"),
			Timeout:  getEnvAsDuration("DOWNSTREAM_TIMEOUT", 2*time.Second),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
