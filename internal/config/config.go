// Package config reads the environment for the storefront and the terminal
// client.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fjod/frocone/internal/storage"
)

type Server struct {
	HTTPPort        string
	CatalogDBPath   string
	RedisAddr       string
	Postgres        storage.Credentials
	MongoURI        string
	MongoDatabase   string
	KafkaBrokers    []string
	SendGridAPIKey  string
	MailFrom        string
	MailTo          string
	LogLevel        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
}

func LoadServer() *Server {
	return &Server{
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		CatalogDBPath: getEnv("CATALOG_DB_PATH", "./frocone.db"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		Postgres: storage.Credentials{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "frocone"),
			Password: getEnv("POSTGRES_PASSWORD", "frocone"),
			DBName:   getEnv("POSTGRES_DB", "frocone"),
		},
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGO_DATABASE", "frocone"),
		KafkaBrokers:    getEnvList("KAFKA_BROKERS"),
		SendGridAPIKey:  getEnv("SENDGRID_API_KEY", ""),
		MailFrom:        getEnv("MAIL_FROM", "hello@frocone.in"),
		MailTo:          getEnv("MAIL_TO", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		MaxBodyBytes:    1 << 20,
	}
}

type Client struct {
	APIURL         string
	CartDir        string
	RedisAddr      string
	DeviceID       string
	LogLevel       string
	RequestTimeout time.Duration
}

// LoadClient reads client defaults. CartDir empty means the user config dir.
func LoadClient() *Client {
	return &Client{
		APIURL:         getEnv("FROCONE_API_URL", "http://localhost:8080"),
		CartDir:        getEnv("FROCONE_CART_DIR", ""),
		RedisAddr:      getEnv("FROCONE_REDIS_ADDR", ""),
		DeviceID:       getEnv("FROCONE_DEVICE_ID", ""),
		LogLevel:       getEnv("LOG_LEVEL", "warn"),
		RequestTimeout: getEnvDuration("FROCONE_REQUEST_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return n
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return d
	}
	return defaultValue
}

func getEnvList(key string) []string {
	var out []string
	for _, v := range strings.Split(getEnv(key, ""), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
