package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	Env  string
	Port int

	StoreBackend string
	DataFile     string
	SnapshotKey  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	DBURL string

	OTELEndpoint string

	AutosaveInterval time.Duration
	SeedSampleData   bool

	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads the environment, first merging a .env file from the working
// directory when one exists. Variables already set win over the file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:  getEnv("APP_ENV", "dev"),
		Port: getEnvInt("PORT", 8080),

		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", BackendFile)),
		DataFile:     getEnv("DATA_FILE", "event_system_data.json"),
		SnapshotKey:  getEnv("SNAPSHOT_KEY", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		DBURL: buildDBURL(),

		OTELEndpoint: getEnv("OTEL_ENDPOINT", ""),

		AutosaveInterval: time.Duration(getEnvInt("AUTOSAVE_INTERVAL_MS", 30000)) * time.Millisecond,
		SeedSampleData:   getEnvBool("SEED_SAMPLE_DATA", false),

		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 40),
	}
}

func (c Config) Validate() error {
	switch c.StoreBackend {
	case BackendFile:
		if strings.TrimSpace(c.DataFile) == "" {
			return fmt.Errorf("DATA_FILE must be set for the file backend")
		}
	case BackendRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			return fmt.Errorf("REDIS_ADDR must be set for the redis backend")
		}
	case BackendPostgres:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (want file, redis or postgres)", c.StoreBackend)
	}
	return nil
}

func buildDBURL() string {
	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "eventdesk")
	pass := getEnv("DB_PASSWORD", "eventdesk")
	name := getEnv("DB_NAME", "eventdesk")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)
		if err != nil {
			return fallback
		}
		return num
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fallback
		}
		return f
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return b
	}
	return fallback
}
