package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"timelogger/persistence"

	"github.com/joho/godotenv"
)

const (
	TimerStoreMemory = "memory"
	TimerStoreBolt   = "bolt"
)

type Config struct {
	HTTP     HTTPConfig
	Database persistence.DatabaseConfig
	Seed     bool
	Log      LogConfig
	Timer    TimerConfig
	Tracing  bool
}

type HTTPConfig struct {
	Addr             string
	GinMode          string
	RateLimitRPS     float64
	RateLimitBurst   int
	CorsAllowOrigins []string
	ShutdownTimeout  time.Duration
}

type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type TimerConfig struct {
	Store    string
	BoltPath string
}

// Load reads the optional .env file then the environment. Malformed values are reported
// instead of silently replaced by defaults.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	r := &reader{}
	cfg := &Config{
		HTTP: HTTPConfig{
			Addr:             r.getString("HTTP_ADDR", ":8080"),
			GinMode:          r.getString("GIN_MODE", "debug"),
			RateLimitRPS:     r.getFloat("RATE_LIMIT_RPS", 0),
			RateLimitBurst:   r.getInt("RATE_LIMIT_BURST", 0),
			CorsAllowOrigins: r.getList("CORS_ALLOW_ORIGINS", []string{"*"}),
			ShutdownTimeout:  r.getDuration("SHUTDOWN_TIMEOUT", 3*time.Second),
		},
		Database: persistence.DatabaseConfig{
			DriverType: r.getString("DB_DRIVER", persistence.DriverSqlite),
			DriverArgs: r.getString("DB_ARGS", persistence.DefaultSqliteArgs),
		},
		Seed: r.getBool("DB_SEED", true),
		Log: LogConfig{
			Level:      r.getString("LOG_LEVEL", "info"),
			File:       r.getString("LOG_FILE", ""),
			MaxSizeMB:  r.getInt("LOG_MAX_SIZE_MB", 10),
			MaxBackups: r.getInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: r.getInt("LOG_MAX_AGE_DAYS", 28),
		},
		Timer: TimerConfig{
			Store:    r.getString("TIMER_STORE", TimerStoreMemory),
			BoltPath: r.getString("TIMER_BOLT_PATH", "./data/timer.db"),
		},
		Tracing: r.getBool("TRACING_ENABLED", false),
	}
	if r.err != nil {
		return nil, r.err
	}

	switch cfg.Database.DriverType {
	case persistence.DriverSqlite, persistence.DriverMysql:
	default:
		return nil, fmt.Errorf("config: unsupported DB_DRIVER %q", cfg.Database.DriverType)
	}
	switch cfg.Timer.Store {
	case TimerStoreMemory, TimerStoreBolt:
	default:
		return nil, fmt.Errorf("config: unsupported TIMER_STORE %q", cfg.Timer.Store)
	}
	return cfg, nil
}

// reader keeps the first malformed value it meets.
type reader struct {
	err error
}

func (r *reader) fail(key, val string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("config: invalid %s=%q: %w", key, val, err)
	}
}

func (r *reader) getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func (r *reader) getInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		r.fail(key, val, err)
		return fallback
	}
	return parsed
}

func (r *reader) getFloat(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		r.fail(key, val, err)
		return fallback
	}
	return parsed
}

func (r *reader) getBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		r.fail(key, val, err)
		return fallback
	}
	return parsed
}

func (r *reader) getDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	if parsed, err := time.ParseDuration(val); err == nil {
		return parsed
	}
	seconds, err := strconv.Atoi(val)
	if err != nil {
		r.fail(key, val, err)
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

func (r *reader) getList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var items []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
