package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

var (
	ErrReadConfig    = errors.New("config: failed to read config file")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server             ServerConfig             `toml:"server"`
	Database           DatabaseConfig           `toml:"database"`
	Logs               LogsConfig               `toml:"logs"`
	Metrics            MetricsConfig            `toml:"metrics"`
	Redis              RedisConfig              `toml:"redis"`
	RateLimit          RateLimitConfig          `toml:"rate_limit"`
	CORS               CORSConfig               `toml:"cors"`
	PermissionsService PermissionsServiceConfig `toml:"permissions_service"`
	Engine             EngineConfig             `toml:"engine"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
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

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig настройки Redis (используется rate limiter'ом)
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// RateLimitConfig ограничение запросов к публичным маршрутам.
// При выключенном Redis используется локальный лимитер процесса.
type RateLimitConfig struct {
	Enabled       bool `toml:"enabled"`
	Requests      int  `toml:"requests"`
	WindowSeconds int  `toml:"window_seconds"`
	FailOpen      bool `toml:"fail_open"`
}

// CORSConfig разрешенные источники для виджета бронирования
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// PermissionsServiceConfig клиент сервиса прав доступа
type PermissionsServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// EngineConfig настройки движка доступности
type EngineConfig struct {
	SlotStepMinutes     int  `toml:"slot_step_minutes"`
	FetchTimeoutSeconds int  `toml:"fetch_timeout_seconds"`
	EnforceBuffer       bool `toml:"enforce_buffer"`
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию и переменные окружения
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	applyEnv(cfg)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default конфигурация со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "scheduling-service",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		RateLimit: RateLimitConfig{
			Requests:      60,
			WindowSeconds: 60,
			FailOpen:      true,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		PermissionsService: PermissionsServiceConfig{
			Timeout: 5,
		},
		Engine: EngineConfig{
			SlotStepMinutes:     30,
			FetchTimeoutSeconds: 10,
		},
	}
}

// applyDefaults заполняет обнуленные в файле значения
func (c *Config) applyDefaults() {
	def := Default()
	if c.Engine.SlotStepMinutes == 0 {
		c.Engine.SlotStepMinutes = def.Engine.SlotStepMinutes
	}
	if c.Engine.FetchTimeoutSeconds == 0 {
		c.Engine.FetchTimeoutSeconds = def.Engine.FetchTimeoutSeconds
	}
	if c.PermissionsService.Timeout == 0 {
		c.PermissionsService.Timeout = def.PermissionsService.Timeout
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = def.Metrics.Path
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = def.Metrics.ServiceName
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = def.Server.ShutdownTimeout
	}
}

// applyEnv переопределяет секреты из переменных окружения
func applyEnv(c *Config) {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.PermissionsService.URL == "" {
		return fmt.Errorf("%w: permissions_service.url is required", ErrInvalidConfig)
	}
	if c.Engine.SlotStepMinutes < 5 || c.Engine.SlotStepMinutes > 240 {
		return fmt.Errorf("%w: engine.slot_step_minutes=%d", ErrInvalidConfig, c.Engine.SlotStepMinutes)
	}
	if c.Engine.FetchTimeoutSeconds < 0 {
		return fmt.Errorf("%w: engine.fetch_timeout_seconds=%d", ErrInvalidConfig, c.Engine.FetchTimeoutSeconds)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.WindowSeconds <= 0) {
		return fmt.Errorf("%w: rate_limit.requests and rate_limit.window_seconds must be positive", ErrInvalidConfig)
	}
	return nil
}
