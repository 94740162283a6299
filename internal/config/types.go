package config

import (
	"errors"
	"fmt"
)

// Поддерживаемые драйверы удаленной таблицы заметок
const (
	DriverPostgREST = "postgrest"
	DriverPostgres  = "postgres"
	DriverSQLite    = "sqlite"
	DriverMemory    = "memory"
)

var (
	// ErrMissingURL возвращается, если не задан адрес сервиса данных
	ErrMissingURL = errors.New("remote.url is required (SUPABASE_URL)")
	// ErrMissingKey возвращается, если не задан ключ доступа к сервису данных
	ErrMissingKey = errors.New("remote.anon_key is required (SUPABASE_ANON_KEY)")
)

// ConfigLogger настройки логирования
type ConfigLogger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ConfigServer настройки сервера
type ConfigServer struct {
	EnableGRPC              bool `mapstructure:"enable_grpc"`
	UseReflection           bool `mapstructure:"use_reflection"`
	PortGRPC                int  `mapstructure:"port_grpc"`
	PortHTTP                int  `mapstructure:"port_http"`
	HTTPReadTimeout         int  `mapstructure:"http_read_timeout"`
	HTTPWriteTimeout        int  `mapstructure:"http_write_timeout"`
	HTTPIdleTimeout         int  `mapstructure:"http_idle_timeout"`
	HTTPReadHeaderTimeout   int  `mapstructure:"http_read_header_timeout"`
	GracefulShutdownTimeout int  `mapstructure:"graceful_shutdown_timeout"`
}

// ConfigGateway настройки HTTP слоя (CORS и rate limiting)
type ConfigGateway struct {
	CORSAllowedOrigins string `mapstructure:"cors_allowed_origins"`
	CORSMaxAge         int    `mapstructure:"cors_max_age"`
	RateLimitRPS       int    `mapstructure:"rate_limit_rps"`
	RateLimitBurst     int    `mapstructure:"rate_limit_burst"`
}

// ConfigRemote настройки удаленного хранилища заметок
type ConfigRemote struct {
	Driver  string `mapstructure:"driver"`
	URL     string `mapstructure:"url"`
	AnonKey string `mapstructure:"anon_key"`
	DSN     string `mapstructure:"dsn"`
	Path    string `mapstructure:"path"`
	Table   string `mapstructure:"table"`
	// Timeout в секундах на один удаленный вызов, 0 - без ограничения
	Timeout int `mapstructure:"timeout"`
}

// Config основная структура конфигурации
type Config struct {
	Logger  *ConfigLogger  `mapstructure:"logger"`
	Server  *ConfigServer  `mapstructure:"server"`
	Gateway *ConfigGateway `mapstructure:"gateway"`
	Remote  *ConfigRemote  `mapstructure:"remote"`
}

// Validate проверяет наличие обязательных значений для выбранного драйвера.
// Значения не проверяются дальше факта наличия.
func (c *Config) Validate() error {
	if c.Remote == nil {
		return errors.New("remote section is missing")
	}

	switch c.Remote.Driver {
	case DriverPostgREST, "":
		if c.Remote.URL == "" {
			return ErrMissingURL
		}
		if c.Remote.AnonKey == "" {
			return ErrMissingKey
		}
	case DriverPostgres:
		if c.Remote.DSN == "" {
			return errors.New("remote.dsn is required for postgres driver (DATABASE_URL)")
		}
	case DriverSQLite:
		if c.Remote.Path == "" {
			return errors.New("remote.path is required for sqlite driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown remote driver %q", c.Remote.Driver)
	}

	return nil
}
