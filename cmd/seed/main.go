package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/johnwards/taskboard/internal/config"
	"github.com/johnwards/taskboard/internal/database"
	"github.com/johnwards/taskboard/internal/events"
	"github.com/johnwards/taskboard/internal/seed"
	"github.com/johnwards/taskboard/internal/store"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	if err := run(cfg, newPublisher(cfg)); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}

func newPublisher(cfg config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		return events.Nop{}
	}
	return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
}

func run(cfg config.Config, pub events.Publisher) error {
	defer func() {
		if err := pub.Close(); err != nil {
			slog.Warn("close publisher", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	s := store.New(db)

	if err := database.Migrate(ctx, db); err != nil {
		_ = s.Close()
		return fmt.Errorf("run migrations: %w", err)
	}

	// seed.Run closes the store on every path.
	res, err := seed.Run(ctx, s, time.Now())
	if err != nil {
		return fmt.Errorf("seed data: %w", err)
	}

	if err := pub.Publish(ctx, events.SeedCompleted(res, time.Now())); err != nil {
		slog.Warn("publish seed event", "error", err)
	}
	return nil
}
