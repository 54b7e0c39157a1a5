// Package bootstrap wires runtime dependencies for the command binaries.
package bootstrap

import (
	"fmt"
	"log"

	"skillswap/internal/cache"
	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/models"
	"skillswap/internal/seed"
	"skillswap/internal/storage"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedDemoData bool
	NumSeedUsers int
}

// Runtime holds the shared dependencies a command binary runs on.
type Runtime struct {
	DB    *gorm.DB
	Redis *redis.Client
	Store storage.ObjectStore
}

// InitRuntime connects the database, Redis and the object store, and
// optionally seeds demo data into an empty database. Redis being unreachable
// is not fatal; caches and per-route rate limits degrade gracefully without it.
func InitRuntime(cfg *config.Config, opts Options) (*Runtime, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	store, err := ObjectStoreFor(cfg)
	if err != nil {
		return nil, fmt.Errorf("object store setup failed: %w", err)
	}

	if opts.SeedDemoData {
		if cfg.Env == "production" || cfg.Env == "prod" {
			log.Println("SEED_DEMO_DATA is set but ignored in production")
		} else if err := maybeSeedDemo(db, opts.NumSeedUsers); err != nil {
			return nil, fmt.Errorf("demo data seeding failed: %w", err)
		}
	}

	return &Runtime{DB: db, Redis: cache.GetClient(), Store: store}, nil
}

// ObjectStoreFor picks the store implementation for the configured bucket
// endpoint. Without one, blobs stay in memory for local development.
func ObjectStoreFor(cfg *config.Config) (storage.ObjectStore, error) {
	if cfg.BucketEndpoint == "" {
		return storage.NewMemoryStore(""), nil
	}
	return storage.NewS3Store(cfg)
}

// maybeSeedDemo seeds demo accounts, but only into an empty database so a
// restart never duplicates them.
func maybeSeedDemo(db *gorm.DB, numUsers int) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err := seed.NewSeeder(db).Run(seed.Options{NumUsers: numUsers, MaxPostsPerUser: 5})
	return err
}
