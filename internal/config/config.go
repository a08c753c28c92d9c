package config

import (
	"os"
	"strconv"
	"time"

	"taskhub/internal/logger"

	"github.com/joho/godotenv"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	AppPort     string // task board
	ProductPort string // product api
	DatabaseURL string

	StoreBackend string
	TasksKey     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ConfirmSecret  string
	ConfirmTTL     time.Duration
	RejectWhenBusy bool

	AllowedOrigin string

	APIRateLimit  int
	APIRateWindow time.Duration

	LogLevel string
	LogJSON  bool
}

// Load reads the environment (and a .env file if present) with defaults.
// It never exits; the per-service loaders below enforce what each binary needs.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:       getenv("APP_PORT", "8080"),
		ProductPort:   getenv("PORT", "8000"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		StoreBackend:  getenv("STORE_BACKEND", BackendMemory),
		TasksKey:      getenv("TASKS_KEY", "mvc_sim_tasks"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getint("REDIS_DB", 0),
		ConfirmSecret: os.Getenv("CONFIRM_SECRET"),
		ConfirmTTL:    time.Duration(getint("CONFIRM_TTL_SECONDS", 60)) * time.Second,
		AllowedOrigin: os.Getenv("ALLOWED_ORIGIN"),
		APIRateLimit:  getint("API_RATE_LIMIT", 120),
		APIRateWindow: time.Duration(getint("API_RATE_WINDOW_SECONDS", 60)) * time.Second,
		LogLevel:      getenv("LOG_LEVEL", "info"),
		LogJSON:       os.Getenv("LOG_JSON") == "true",
	}
	cfg.RejectWhenBusy = os.Getenv("REJECT_WHEN_BUSY") == "true"

	return cfg
}

// LoadTaskBoard loads config for the task board and checks the chosen store
// backend has what it needs.
func LoadTaskBoard() *Config {
	cfg := Load()

	switch cfg.StoreBackend {
	case BackendMemory:
	case BackendRedis:
		if cfg.RedisAddr == "" {
			logger.Fatal("REDIS_ADDR is not set", "store_backend", cfg.StoreBackend)
		}
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			logger.Fatal("DATABASE_URL is not set", "store_backend", cfg.StoreBackend)
		}
	default:
		logger.Fatal("unknown STORE_BACKEND", "store_backend", cfg.StoreBackend)
	}

	return cfg
}

// LoadProductAPI loads config for the product api. A missing DATABASE_URL is
// reported by the connect step, not here.
func LoadProductAPI() *Config {
	return Load()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}
