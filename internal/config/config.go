package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/Radi03825/PlaySpot-sub000/internal/domain"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server          ServerConfig          `toml:"server"`
	Database        DatabaseConfig        `toml:"database"`
	Storage         StorageConfig         `toml:"storage"`
	Logs            LogsConfig            `toml:"logs"`
	Metrics         MetricsConfig         `toml:"metrics"`
	Redis           RedisConfig           `toml:"redis"`
	FacilityService FacilityServiceConfig `toml:"facility_service"`
	Booking         BookingConfig         `toml:"booking"`
	RateLimit       RateLimitConfig       `toml:"rate_limit"`
}

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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type StorageConfig struct {
	// Driver "postgres" или "memory" (локальный запуск без БД)
	Driver string `toml:"driver"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	// TTL кэша расписания в секундах
	ScheduleTTL int `toml:"schedule_ttl"`
}

// ScheduleTTLDuration TTL кэша расписания
func (r RedisConfig) ScheduleTTLDuration() time.Duration {
	return time.Duration(r.ScheduleTTL) * time.Second
}

type FacilityServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

type BookingConfig struct {
	// Timezone часовой пояс объектов, если каталог его не вернул
	Timezone                  string  `toml:"timezone"`
	MaxRangeDays              int     `toml:"max_range_days"`
	DefaultGranularityMinutes int     `toml:"default_granularity_minutes"`
	InitialPricePerHour       float64 `toml:"initial_price_per_hour"`
}

// Location загружает часовой пояс бронирований
func (b BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

type RateLimitConfig struct {
	Enabled bool `toml:"enabled"`
	// RequestsPerMinute лимит на отправку бронирований одним пользователем
	RequestsPerMinute int `toml:"requests_per_minute"`
	Burst             int `toml:"burst"`
}

// Load читает конфигурацию из TOML файла.
// Переменные окружения (в том числе из .env) переопределяют секреты и путь к файлу.
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		path = envPath
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse разбирает конфигурацию из строки TOML
func Parse(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			DBName:          "playspot_booking",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Storage: StorageConfig{Driver: DriverPostgres},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "playspot-booking",
		},
		Redis: RedisConfig{
			Addr:        "localhost:6379",
			ScheduleTTL: 300,
		},
		FacilityService: FacilityServiceConfig{
			URL:     "http://localhost:8081",
			Timeout: 5,
		},
		Booking: BookingConfig{
			Timezone:                  "UTC",
			MaxRangeDays:              domain.DefaultMaxRangeDays,
			DefaultGranularityMinutes: domain.DefaultSlotGranularityMinutes,
			InitialPricePerHour:       domain.DefaultInitialPricePerHour,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 30,
			Burst:             5,
		},
	}
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: storage.driver=%q", ErrInvalidConfig, c.Storage.Driver)
	}

	if c.FacilityService.URL == "" {
		return fmt.Errorf("%w: facility_service.url is required", ErrInvalidConfig)
	}
	if c.Booking.MaxRangeDays <= 0 {
		return fmt.Errorf("%w: booking.max_range_days must be positive", ErrInvalidConfig)
	}
	g := c.Booking.DefaultGranularityMinutes
	if g < domain.MinSlotGranularityMinutes || g > domain.MaxSlotGranularityMinutes {
		return fmt.Errorf("%w: booking.default_granularity_minutes=%d", ErrInvalidConfig, g)
	}
	if c.Booking.InitialPricePerHour < 0 {
		return fmt.Errorf("%w: booking.initial_price_per_hour must not be negative", ErrInvalidConfig)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerMinute <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit values must be positive", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required", ErrInvalidConfig)
	}

	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("FACILITY_SERVICE_URL"); v != "" {
		cfg.FacilityService.URL = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.HTTPPort = port
		}
	}
}
