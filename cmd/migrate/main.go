package main

import (
	"context"
	"time"

	mongoMigration "dinebook/internal/migrations/mongo"
	"dinebook/pkg/config"
)

const (
	JobName = "mongo-migration"

	migrationTimeout = 120 * time.Second
)

func main() {
	cfg := config.Load(JobName)
	if !cfg.UsesMongo() {
		cfg.Log.Info("Store driver is not mongo, nothing to migrate", "store_driver", cfg.StoreDriver)
		return
	}

	cfg.SetMongo()
	cfg.Log.Info("Starting Mongo migration job")

	err := migrate(cfg)
	cfg.GracefulShutdown()
	if err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}
	cfg.Log.Info("Migration completed successfully")
}

func migrate(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
	defer cancel()

	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return mongoMigration.RunMigration(ctx, db, cfg.Log)
}
