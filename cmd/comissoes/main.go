// Command comissoes runs the commission tracker web server.
package main

import (
	"context"
	"errors"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"comissoes/internal/amqp"
	"comissoes/internal/auth"
	"comissoes/internal/config"
	"comissoes/internal/http"
	applog "comissoes/internal/log"
	"comissoes/internal/storage"
)

func main() {
	// A missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg := config.Load()
	applog.Setup(cfg.LogFormat, slog.LevelInfo)

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.InsecureSecret() {
		slog.Warn("SECRET_KEY is the development default; set a real one in production")
	}

	if err := run(cfg); err != nil {
		slog.Error("Server terminated", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	store, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	var events *amqp.Client
	if cfg.AMQPURL != "" {
		events, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			// The event stream is an add-on; the tracker itself must
			// start even when the broker is down.
			slog.Warn("AMQP unavailable, record events disabled", "error", err)
			events = nil
		} else {
			defer events.Close()
		}
	}

	accounts := auth.NewService(store)
	sessions := auth.NewSessionManager(cfg.SecretKey, cfg.SessionTTL)

	server, err := http.NewServer(":"+cfg.Port, store, accounts, sessions, events, cfg.AdminName)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Server listening", "port", cfg.Port, "database", cfg.DatabasePath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
