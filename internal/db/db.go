package db

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"report-service/internal/config"
)

// OpenIdentity connects to the identity/session store (Postgres).
func OpenIdentity(cfg config.StoreConfig) (*gorm.DB, error) {
	return open(postgres.Open(cfg.DSN), cfg)
}

// OpenCalls connects to the store holding the weekly call shards (MySQL).
func OpenCalls(cfg config.StoreConfig) (*gorm.DB, error) {
	return open(mysql.Open(cfg.DSN), cfg)
}

func open(dialector gorm.Dialector, cfg config.StoreConfig) (*gorm.DB, error) {
	database, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	return database, nil
}

// Ping validates store liveness, giving a dropped connection one bounded
// reconnect cycle before reporting the store unreachable.
func Ping(ctx context.Context, database *gorm.DB) error {
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	policy.MaxElapsedTime = 5 * time.Second

	operation := func() error {
		return sqlDB.PingContext(ctx)
	}
	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return fmt.Errorf("store unreachable: %w", err)
	}
	return nil
}

// Keepalive pings the store on a fixed interval until ctx is cancelled. It
// keeps the call store's connection warm and has no dependency on the report
// request path.
func Keepalive(ctx context.Context, database *gorm.DB, interval time.Duration, log zerolog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := database.WithContext(ctx).Exec("SELECT 1").Error; err != nil {
				log.Warn().Err(err).Msg("keepalive ping failed")
			}
		}
	}
}
