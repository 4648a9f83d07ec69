package main

import (
	"context"
	"flag"
	"log"
	"trackme/internal/config"
	"trackme/internal/database"
	"trackme/internal/logger"

	"go.uber.org/zap"
)

func main() {
	direction := flag.String("direction", "up", "up applies pending migrations, down rolls back")
	steps := flag.Int("steps", 1, "number of migrations to roll back with -direction=down")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	client, _, err := database.ConnectMongo(context.Background(), cfg.Mongo)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.DisconnectMongo(client)

	switch *direction {
	case "up":
		err = database.RunMigrations(client, cfg.Mongo.Database)
	case "down":
		err = database.RollbackMigrations(client, cfg.Mongo.Database, *steps)
	default:
		l.Fatal("Unknown migration direction", zap.String("direction", *direction))
	}
	if err != nil {
		l.Fatal("Migration failed", zap.String("direction", *direction), zap.Error(err))
	}
	l.Info("Migration finished", zap.String("direction", *direction))
}
