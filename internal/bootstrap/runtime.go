// Package bootstrap wires the process-wide runtime dependencies.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"jobboard/internal/cache"
	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/middleware"
	"jobboard/internal/models"
	"jobboard/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemo fills an empty database with the default demo data set.
	SeedDemo bool
}

// InitRuntime connects to the database and Redis and optionally seeds demo
// data. The Redis client is nil when Redis is unreachable.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	rdb := cache.Connect(cfg.RedisURL)

	if opts.SeedDemo {
		if cfg.IsProduction() {
			closeRuntime(db, rdb)
			return nil, nil, fmt.Errorf("demo seeding is not allowed in production")
		}
		if err := seedIfEmpty(ctx, db); err != nil {
			closeRuntime(db, rdb)
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, rdb, nil
}

// closeRuntime releases the database pool and the Redis client, which may be nil.
func closeRuntime(db *gorm.DB, rdb *redis.Client) {
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			middleware.Logger.Warn("failed to close database", slog.String("error", err.Error()))
		}
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			middleware.Logger.Warn("failed to close redis", slog.String("error", err.Error()))
		}
	}
}

func seedIfEmpty(ctx context.Context, db *gorm.DB) error {
	var users int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&users).Error; err != nil {
		return err
	}
	if users > 0 {
		middleware.Logger.Info("skipping demo seed, database already has users", slog.Int64("users", users))
		return nil
	}
	_, err := seed.Run(ctx, db, seed.DefaultPreset())
	return err
}
