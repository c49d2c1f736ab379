// Command comissoes-worker consumes record events from RabbitMQ and
// appends them to the audit log.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"comissoes/internal/amqp"
	"comissoes/internal/config"
	applog "comissoes/internal/log"
	"comissoes/internal/storage"
	"comissoes/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	applog.Setup(cfg.LogFormat, slog.LevelInfo)

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		slog.Error("AMQP_URL must be set for the audit worker")
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		slog.Error("Worker terminated", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	store, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	audit := worker.NewAuditWorker(store)

	slog.Info("Audit worker consuming", "queue", cfg.AMQPQueue, "database", cfg.DatabasePath)
	return client.ConsumeRecordEvents(ctx, func(event *amqp.RecordEvent) error {
		return audit.HandleEvent(ctx, event)
	})
}
