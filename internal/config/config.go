package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// DefaultFile - путь к конфигу, если CONFIG_FILE не задан
const DefaultFile = "config.yml"

// envPattern находит плейсхолдеры ${VAR} и ${VAR:-default}
var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandEnvWithDefaults подставляет переменные окружения,
// пустая или неустановленная переменная заменяется значением по умолчанию
func expandEnvWithDefaults(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		m := envPattern.FindStringSubmatch(match)
		if len(m) < 2 {
			return match
		}
		if value := os.Getenv(m[1]); value != "" {
			return value
		}
		if len(m) > 2 {
			return m[2]
		}
		return ""
	})
}

// InitConfig читает конфигурационный файл в структуру произвольного типа
func InitConfig[C any](configFile string) (*C, error) {
	v := viper.New()
	ext := strings.TrimLeft(filepath.Ext(configFile), ".")

	v.SetConfigFile(configFile)
	v.SetConfigType(ext)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig: %w", err)
	}

	for _, k := range v.AllKeys() {
		value := v.GetString(k)
		if value == "" {
			continue
		}
		expanded := expandEnvWithDefaults(value)

		// После подстановки значение может оказаться числом или bool
		if b, err := strconv.ParseBool(expanded); err == nil && (expanded == "true" || expanded == "false") {
			v.Set(k, b)
		} else if i, err := strconv.Atoi(expanded); err == nil {
			v.Set(k, i)
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

// FileFromEnv возвращает путь к конфигу из CONFIG_FILE или DefaultFile
func FileFromEnv() string {
	if f := strings.TrimSpace(os.Getenv("CONFIG_FILE")); f != "" {
		return f
	}
	return DefaultFile
}

// Load читает Config и заполняет значения по умолчанию
func Load(configFile string) (*Config, error) {
	cfg, err := InitConfig[Config](configFile)
	if err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	switch cfg.Database.Driver {
	case DriverMemory:
	case DriverPostgres:
		if cfg.Database.DSN == "" {
			return nil, fmt.Errorf("database.dsn is required for driver %q", DriverPostgres)
		}
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}

	return cfg, nil
}
