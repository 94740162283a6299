package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandEnvWithDefaults расширяет переменные окружения с поддержкой дефолтных значений
// Формат: ${VAR:-default}
func expandEnvWithDefaults(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		// Извлекаем имя переменной и значение по умолчанию
		matches := envPattern.FindStringSubmatch(match)
		if len(matches) < 2 {
			return match
		}

		varName := matches[1]
		defaultValue := ""
		if len(matches) > 2 {
			defaultValue = matches[2]
		}

		value := os.Getenv(varName)
		if value == "" {
			return defaultValue
		}
		return value
	})
}

// Option настраивает экземпляр viper до чтения конфигурации
type Option func(v *viper.Viper)

// WithDefault задает значение по умолчанию для ключа
func WithDefault(key string, value any) Option {
	return func(v *viper.Viper) {
		v.SetDefault(key, value)
	}
}

// WithEnv привязывает ключ к переменным окружения (используется первая непустая)
func WithEnv(key string, envs ...string) Option {
	return func(v *viper.Viper) {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}
}

// InitConfig читает конфигурационный файл и возвращает экземпляр конфигурации
// Использует generic для работы с произвольным типом конфигурации.
// Отсутствующий файл не является ошибкой: остаются значения по умолчанию и окружение.
func InitConfig[C any](configFile string, opts ...Option) (*C, error) {
	v := viper.New()
	for _, opt := range opts {
		opt(v)
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			ext := strings.TrimLeft(filepath.Ext(configFile), ".")
			v.SetConfigFile(configFile)
			v.SetConfigType(ext)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("v.ReadInConfig: %w", err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("os.Stat: %w", err)
		}
	}

	// Заменяем переменные окружения формата ${VAR:-default} на их значения
	for _, k := range v.AllKeys() {
		value := v.GetString(k)
		if !strings.Contains(value, "${") {
			continue
		}
		expanded := expandEnvWithDefaults(value)

		// Если значение выглядит как число или boolean, устанавливаем его с правильным типом
		if expanded == "true" || expanded == "false" {
			boolValue, _ := strconv.ParseBool(expanded)
			v.Set(k, boolValue)
		} else if intValue, err := strconv.Atoi(expanded); err == nil {
			v.Set(k, intValue)
		} else {
			v.Set(k, expanded)
		}
	}

	cfg := new(C)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("v.Unmarshal: %w", err)
	}

	return cfg, nil
}

// Load читает конфигурацию приложения, применяя значения по умолчанию и привязки к окружению
func Load(configFile string) (*Config, error) {
	cfg, err := InitConfig[Config](configFile, Defaults()...)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Defaults возвращает значения по умолчанию и привязки переменных окружения
func Defaults() []Option {
	return []Option{
		WithDefault("logger.level", "info"),
		WithDefault("logger.format", "text"),

		WithDefault("server.port_http", 8080),
		WithDefault("server.port_grpc", 50051),
		WithDefault("server.enable_grpc", true),
		WithDefault("server.use_reflection", true),
		WithDefault("server.http_read_timeout", 15),
		WithDefault("server.http_write_timeout", 15),
		WithDefault("server.http_idle_timeout", 60),
		WithDefault("server.http_read_header_timeout", 5),
		WithDefault("server.graceful_shutdown_timeout", 10),

		WithDefault("gateway.cors_allowed_origins", "*"),
		WithDefault("gateway.cors_max_age", 86400),
		WithDefault("gateway.rate_limit_rps", 100),
		WithDefault("gateway.rate_limit_burst", 10),

		WithDefault("remote.driver", DriverPostgREST),
		WithDefault("remote.table", "notes"),
		WithDefault("remote.timeout", 0),
		WithEnv("remote.url", "SUPABASE_URL", "NEXT_PUBLIC_SUPABASE_URL"),
		WithEnv("remote.anon_key", "SUPABASE_ANON_KEY", "NEXT_PUBLIC_SUPABASE_ANON_KEY"),
		WithEnv("remote.dsn", "DATABASE_URL"),
		WithEnv("remote.path", "NOTES_SQLITE_PATH"),
	}
}
