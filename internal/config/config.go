package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server             Server             `toml:"server"`
	Logs               Logs               `toml:"logs"`
	Metrics            Metrics            `toml:"metrics"`
	Database           Database           `toml:"database"`
	BranchService      BranchService      `toml:"branch_service"`
	ReservationService ReservationService `toml:"reservation_service"`
	LiveChannel        LiveChannel        `toml:"live_channel"`
}

// Server настройки HTTP сервера
type Server struct {
	HTTPPort        int `toml:"http_port" validate:"required,min=1,max=65535"`
	ReadTimeout     int `toml:"read_timeout" validate:"required"`  // секунды
	WriteTimeout    int `toml:"write_timeout" validate:"required"` // секунды
	IdleTimeout     int `toml:"idle_timeout" validate:"required"`  // секунды
	ShutdownTimeout int `toml:"shutdown_timeout" validate:"required"`
}

// Logs настройки логирования
type Logs struct {
	File  string `toml:"file"`
	Level string `toml:"level" validate:"required,oneof=debug info warn error"`
}

// Metrics настройки prometheus-метрик
type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Database настройки подключения к PostgreSQL (журнал передач в оплату)
type Database struct {
	Host            string `toml:"host" validate:"required"`
	Port            int    `toml:"port" validate:"required"`
	User            string `toml:"user" validate:"required"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname" validate:"required"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `toml:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" validate:"required"` // секунды
}

// DSN собирает строку подключения к PostgreSQL
func (d *Database) DSN() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, sslMode)
}

// BranchService настройки клиента BranchService (расписания и цены филиалов)
type BranchService struct {
	URL     string `toml:"url" validate:"required,url"`
	Timeout int    `toml:"timeout" validate:"required"` // секунды
}

// ReservationService настройки клиента ReservationService (создание резервации)
type ReservationService struct {
	URL     string `toml:"url" validate:"required,url"`
	Timeout int    `toml:"timeout" validate:"required"` // секунды
}

// LiveChannel настройки live-канала обновлений слотов (Redis pub/sub)
type LiveChannel struct {
	RedisAddr     string `toml:"redis_addr" validate:"required"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	// ChannelPrefix префикс pub/sub каналов, итоговые имена:
	// <prefix>:<branchId>:slot_status_update и <prefix>:<branchId>:slot_booking_result
	ChannelPrefix string `toml:"channel_prefix" validate:"required"`

	// ReconnectMaxAttempts количество попыток переподключения до перехода
	// в состояние disconnected
	ReconnectMaxAttempts int `toml:"reconnect_max_attempts" validate:"required,min=1"`

	// ReconnectBaseDelayMS базовая задержка экспоненциального backoff
	ReconnectBaseDelayMS int `toml:"reconnect_base_delay_ms" validate:"required,min=1"`

	// ReconnectMaxDelayMS верхняя граница задержки backoff
	ReconnectMaxDelayMS int `toml:"reconnect_max_delay_ms" validate:"required,min=1"`
}

// Load читает и валидирует конфигурацию из toml файла
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
