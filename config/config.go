package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Remote task service
	Gateway GatewayConfig

	// Orchestration
	Interpret InterpretConfig
	Bulk      BulkConfig
	Refresh   RefreshConfig

	// Optional integrations
	GoogleCalendar GoogleCalendarConfig
	FakeRemote     FakeRemoteConfig
}

type EnvironmentConfig struct {
	Name string `validate:"required,oneof=development production"`
}

type HTTPServerConfig struct {
	Port int    `validate:"required,min=1,max=65535"`
	Mode string `validate:"required,oneof=debug release test"`
}

type LoggerConfig struct {
	Level        string `validate:"required,oneof=debug info warn error"`
	Mode         string `validate:"required"`
	Encoding     string `validate:"required,oneof=console json"`
	ColorEnabled bool
}

// GatewayConfig is the explicit {base address, timeout} pair the gateway is built from.
type GatewayConfig struct {
	BaseAddress       string        `validate:"omitempty,url"`
	Timeout           time.Duration `validate:"gt=0"`
	RequestsPerSecond float64       `validate:"gte=0"`
	Burst             int           `validate:"gte=0"`
}

type InterpretConfig struct {
	QuietPeriod time.Duration `validate:"gt=0"`
	MinLength   int           `validate:"gte=1"`
	CacheSize   int           `validate:"gte=0"`
	CacheTTL    time.Duration `validate:"gte=0"`
}

type BulkConfig struct {
	Concurrency int `validate:"gte=1"`
}

type RefreshConfig struct {
	MaxAttempts int `validate:"gte=1"`
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	CalendarID      string `validate:"required_with=CredentialsPath"`
	Timezone        string
	EventMinutes    int `validate:"gte=0"`
}

// FakeRemoteConfig serves an in-memory remote service from the same process.
type FakeRemoteConfig struct {
	Enabled  bool
	Timezone string `validate:"required_if=Enabled true"`
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/smart-todo/ unless path names a file.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/smart-todo/")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")

	// Remote task service
	cfg.Gateway.BaseAddress = v.GetString("gateway.base_address")
	cfg.Gateway.Timeout = v.GetDuration("gateway.timeout")
	cfg.Gateway.RequestsPerSecond = v.GetFloat64("gateway.requests_per_second")
	cfg.Gateway.Burst = v.GetInt("gateway.burst")

	// Orchestration
	cfg.Interpret.QuietPeriod = v.GetDuration("interpret.quiet_period")
	cfg.Interpret.MinLength = v.GetInt("interpret.min_length")
	cfg.Interpret.CacheSize = v.GetInt("interpret.cache_size")
	cfg.Interpret.CacheTTL = v.GetDuration("interpret.cache_ttl")
	cfg.Bulk.Concurrency = v.GetInt("bulk.concurrency")
	cfg.Refresh.MaxAttempts = v.GetInt("refresh.max_attempts")

	// Optional integrations
	cfg.GoogleCalendar.CredentialsPath = v.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.CalendarID = v.GetString("google_calendar.calendar_id")
	cfg.GoogleCalendar.Timezone = v.GetString("google_calendar.timezone")
	cfg.GoogleCalendar.EventMinutes = v.GetInt("google_calendar.event_minutes")
	if googleCreds := v.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}
	cfg.FakeRemote.Enabled = v.GetBool("fake_remote.enabled")
	cfg.FakeRemote.Timezone = v.GetString("fake_remote.timezone")

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "debug")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)

	v.SetDefault("gateway.timeout", "10s")
	v.SetDefault("gateway.requests_per_second", 0)
	v.SetDefault("gateway.burst", 0)

	v.SetDefault("interpret.quiet_period", "500ms")
	v.SetDefault("interpret.min_length", 3)
	v.SetDefault("interpret.cache_size", 64)
	v.SetDefault("interpret.cache_ttl", "5m")
	v.SetDefault("bulk.concurrency", 8)
	v.SetDefault("refresh.max_attempts", 3)

	v.SetDefault("google_calendar.calendar_id", "primary")
	v.SetDefault("google_calendar.timezone", "UTC")
	v.SetDefault("google_calendar.event_minutes", 60)
	v.SetDefault("fake_remote.enabled", false)
	v.SetDefault("fake_remote.timezone", "UTC")
}

// ErrBaseAddressRequired is returned when no remote service is configured and the fake one is off.
var ErrBaseAddressRequired = errors.New("invalid config: gateway.base_address is required unless fake_remote.enabled")

func validate(cfg *Config) error {
	if cfg.Gateway.BaseAddress == "" && !cfg.FakeRemote.Enabled {
		return ErrBaseAddressRequired
	}
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
