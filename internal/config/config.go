package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type StoreConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

type AuthConfig struct {
	AccessSecret string
}

type ReportConfig struct {
	QueryTimeout      time.Duration
	KeepaliveInterval time.Duration
	RecordingsDir     string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	IdentityDB  StoreConfig
	CallDB      StoreConfig
	Auth        AuthConfig
	Report      ReportConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")

	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		IdentityDB: StoreConfig{
			DSN:          v.GetString("IDENTITY_DB_DSN"),
			MaxOpenConns: v.GetInt("IDENTITY_DB_MAX_OPEN_CONNS"),
			MaxIdleConns: v.GetInt("IDENTITY_DB_MAX_IDLE_CONNS"),
		},
		CallDB: StoreConfig{
			DSN:          v.GetString("CALL_DB_DSN"),
			MaxOpenConns: v.GetInt("CALL_DB_MAX_OPEN_CONNS"),
			MaxIdleConns: v.GetInt("CALL_DB_MAX_IDLE_CONNS"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Report: ReportConfig{
			QueryTimeout:      v.GetDuration("REPORT_QUERY_TIMEOUT"),
			KeepaliveInterval: v.GetDuration("CALL_DB_KEEPALIVE_INTERVAL"),
			RecordingsDir:     v.GetString("RECORDINGS_DIR"),
		},
	}

	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 2606
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Report.QueryTimeout <= 0 {
		cfg.Report.QueryTimeout = 30 * time.Second
	}
	if cfg.Report.KeepaliveInterval <= 0 {
		cfg.Report.KeepaliveInterval = 5 * time.Minute
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.IdentityDB.DSN == "" {
		return fmt.Errorf("IDENTITY_DB_DSN is required")
	}
	if cfg.CallDB.DSN == "" {
		return fmt.Errorf("CALL_DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	return nil
}
