package config

import "time"

// ConfigLogger настройки логирования
type ConfigLogger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ConfigServer настройки HTTP сервера, таймауты в секундах
type ConfigServer struct {
	PortHTTP                int    `mapstructure:"port_http"`
	HTTPReadTimeout         int    `mapstructure:"http_read_timeout"`
	HTTPWriteTimeout        int    `mapstructure:"http_write_timeout"`
	HTTPIdleTimeout         int    `mapstructure:"http_idle_timeout"`
	HTTPReadHeaderTimeout   int    `mapstructure:"http_read_header_timeout"`
	GracefulShutdownTimeout int    `mapstructure:"graceful_shutdown_timeout"`
	APIPrefix               string `mapstructure:"api_prefix"`
}

// ConfigGateway настройки HTTP middleware
type ConfigGateway struct {
	CORSAllowedOrigins string `mapstructure:"cors_allowed_origins"`
	CORSMaxAge         int    `mapstructure:"cors_max_age"`
	RateLimitRPS       int    `mapstructure:"rate_limit_rps"`
	RateLimitBurst     int    `mapstructure:"rate_limit_burst"`
}

// ConfigSwagger настройки выдачи OpenAPI документа
type ConfigSwagger struct {
	Enabled bool `mapstructure:"enabled"`
}

// ConfigDatabase настройки хранилища
type ConfigDatabase struct {
	// Driver - postgres или memory
	Driver          string `mapstructure:"driver"`
	DSN             string `mapstructure:"dsn"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool   `mapstructure:"auto_migrate"`
}

// Config основная структура конфигурации
type Config struct {
	Logger   *ConfigLogger   `mapstructure:"logger"`
	Server   *ConfigServer   `mapstructure:"server"`
	Gateway  *ConfigGateway  `mapstructure:"gateway"`
	Swagger  *ConfigSwagger  `mapstructure:"swagger"`
	Database *ConfigDatabase `mapstructure:"database"`
}

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// ApplyDefaults заполняет отсутствующие секции и нулевые значения
func (c *Config) ApplyDefaults() {
	if c.Logger == nil {
		c.Logger = &ConfigLogger{}
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.Format == "" {
		c.Logger.Format = "text"
	}

	if c.Server == nil {
		c.Server = &ConfigServer{}
	}
	if c.Server.PortHTTP == 0 {
		c.Server.PortHTTP = 8080
	}
	if c.Server.HTTPReadTimeout == 0 {
		c.Server.HTTPReadTimeout = 15
	}
	if c.Server.HTTPWriteTimeout == 0 {
		c.Server.HTTPWriteTimeout = 15
	}
	if c.Server.HTTPIdleTimeout == 0 {
		c.Server.HTTPIdleTimeout = 60
	}
	if c.Server.HTTPReadHeaderTimeout == 0 {
		c.Server.HTTPReadHeaderTimeout = 5
	}
	if c.Server.GracefulShutdownTimeout == 0 {
		c.Server.GracefulShutdownTimeout = 10
	}
	if c.Server.APIPrefix == "" {
		c.Server.APIPrefix = "/api"
	}

	if c.Gateway == nil {
		c.Gateway = &ConfigGateway{}
	}
	if c.Gateway.CORSAllowedOrigins == "" {
		c.Gateway.CORSAllowedOrigins = "*"
	}
	if c.Gateway.CORSMaxAge == 0 {
		c.Gateway.CORSMaxAge = 86400 // 24 часа
	}
	// rate_limit_rps = 0 выключает ограничение частоты запросов
	if c.Gateway.RateLimitRPS > 0 && c.Gateway.RateLimitBurst <= 0 {
		c.Gateway.RateLimitBurst = c.Gateway.RateLimitRPS
	}

	if c.Swagger == nil {
		c.Swagger = &ConfigSwagger{}
	}

	if c.Database == nil {
		c.Database = &ConfigDatabase{}
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverMemory
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
}

// Seconds переводит значение из конфига в time.Duration
func Seconds(v int) time.Duration {
	return time.Duration(v) * time.Second
}
