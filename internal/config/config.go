package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/schedule"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Переменные окружения, переопределяющие секреты из файла
const (
	EnvDBPassword    = "DB_PASSWORD"
	EnvRedisPassword = "REDIS_PASSWORD"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Redis         RedisConfig         `toml:"redis"`
	Schedule      ScheduleConfig      `toml:"schedule"`
	Notifications NotificationsConfig `toml:"notifications"`
	Catalog       CatalogConfig       `toml:"catalog"`
	RateLimit     RateLimitConfig     `toml:"rate_limit"`
	Cache         CacheConfig         `toml:"cache"`
}

// ServerConfig таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig распределенная блокировка дня мастера. Выключена - блокировки нет.
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	LockTTLMs  int    `toml:"lock_ttl_ms"`
	LockWaitMs int    `toml:"lock_wait_ms"`
}

func (c RedisConfig) LockTTL() time.Duration {
	return time.Duration(c.LockTTLMs) * time.Millisecond
}

func (c RedisConfig) LockWait() time.Duration {
	return time.Duration(c.LockWaitMs) * time.Millisecond
}

type ScheduleConfig struct {
	Timezone           string `toml:"timezone"`
	OpeningTime        string `toml:"opening_time"` // пусто - умолчания нет, день без правил закрыт
	ClosingTime        string `toml:"closing_time"`
	MaxCapacity        int    `toml:"max_capacity"`
	BookingLeadMinutes int    `toml:"booking_lead_minutes"`
	LastAvailableRule  string `toml:"last_available_rule"`
	HolidaysFile       string `toml:"holidays_file"`
	TxMaxRetries       int    `toml:"tx_max_retries"`
}

// Location часовой пояс расписания
func (c ScheduleConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Options параметры расчета расписания
func (c ScheduleConfig) Options() (schedule.Options, error) {
	opts := schedule.Options{
		MaxCapacity:       c.MaxCapacity,
		BookingLead:       time.Duration(c.BookingLeadMinutes) * time.Minute,
		LastAvailableRule: domain.LastAvailableRule(c.LastAvailableRule),
	}

	if c.OpeningTime == "" && c.ClosingTime == "" {
		return opts, nil
	}

	start, err := types.NewTimeStringFromString(c.OpeningTime)
	if err != nil {
		return schedule.Options{}, fmt.Errorf("opening_time: %w", err)
	}
	end, err := types.NewTimeStringFromString(c.ClosingTime)
	if err != nil {
		return schedule.Options{}, fmt.Errorf("closing_time: %w", err)
	}
	if !start.IsBefore(end) {
		return schedule.Options{}, fmt.Errorf("closing_time %s must be after opening_time %s", end, start)
	}
	opts.DefaultHours = &domain.Hours{Start: start, End: end}

	return opts, nil
}

// NotificationsConfig Timeout в секундах
type NotificationsConfig struct {
	URL       string `toml:"url"`
	Timeout   int    `toml:"timeout"`
	Workers   int    `toml:"workers"`
	QueueSize int    `toml:"queue_size"`
}

// CatalogConfig Timeout в секундах
type CatalogConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// RateLimitConfig ограничение запросов на изменение с одного IP
type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`
}

// CacheConfig кэш ответов недельной доступности, секунды
type CacheConfig struct {
	Enabled         bool `toml:"enabled"`
	TTL             int  `toml:"ttl"`
	CleanupInterval int  `toml:"cleanup_interval"`
}

// Default значения по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8083,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "smc_scheduleservice",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			File:  "logs/app.log",
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "scheduleservice",
		},
		Redis: RedisConfig{
			Addr:       "localhost:6379",
			LockTTLMs:  5000,
			LockWaitMs: 2000,
		},
		Schedule: ScheduleConfig{
			Timezone:           "UTC",
			OpeningTime:        domain.DefaultOpeningTime,
			ClosingTime:        domain.DefaultClosingTime,
			MaxCapacity:        domain.DefaultMaxCapacity,
			BookingLeadMinutes: domain.DefaultBookingLeadMinutes,
			LastAvailableRule:  string(domain.LastAvailableAnySlot),
			TxMaxRetries:       3,
		},
		Notifications: NotificationsConfig{
			URL:       "http://localhost:8085",
			Timeout:   5,
			Workers:   4,
			QueueSize: 100,
		},
		Catalog: CatalogConfig{
			URL:     "http://localhost:8082",
			Timeout: 5,
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     5,
			Burst:   10,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             10,
			CleanupInterval: 60,
		},
	}
}

// Load читает config.toml поверх значений по умолчанию,
// подгружает .env и применяет переменные окружения
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDBPassword); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv(EnvRedisPassword); v != "" {
		c.Redis.Password = v
	}
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}

	if c.Schedule.MaxCapacity < domain.CapacityFloor {
		return fmt.Errorf("%w: schedule.max_capacity must be at least %d", ErrInvalidConfig, domain.CapacityFloor)
	}

	if c.Schedule.BookingLeadMinutes < 0 {
		return fmt.Errorf("%w: schedule.booking_lead_minutes must not be negative", ErrInvalidConfig)
	}

	if !domain.LastAvailableRule(c.Schedule.LastAvailableRule).Valid() {
		return fmt.Errorf("%w: schedule.last_available_rule %q", ErrInvalidConfig, c.Schedule.LastAvailableRule)
	}

	if _, err := c.Schedule.Location(); err != nil {
		return fmt.Errorf("%w: schedule.timezone: %v", ErrInvalidConfig, err)
	}

	if _, err := c.Schedule.Options(); err != nil {
		return fmt.Errorf("%w: schedule: %v", ErrInvalidConfig, err)
	}

	if c.Schedule.TxMaxRetries < 0 {
		return fmt.Errorf("%w: schedule.tx_max_retries must not be negative", ErrInvalidConfig)
	}

	if c.Redis.Enabled && (c.Redis.Addr == "" || c.Redis.LockTTLMs <= 0) {
		return fmt.Errorf("%w: redis.addr and redis.lock_ttl_ms are required when redis is enabled", ErrInvalidConfig)
	}

	if c.Catalog.URL == "" {
		return fmt.Errorf("%w: catalog.url is required", ErrInvalidConfig)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit.rps and rate_limit.burst must be positive", ErrInvalidConfig)
	}

	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("%w: cache.ttl must be positive", ErrInvalidConfig)
	}

	return nil
}
