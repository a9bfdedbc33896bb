package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rajazohaibsaqib/Restaurant-Project-backend/config"
	"github.com/rajazohaibsaqib/Restaurant-Project-backend/store"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.LoadConfig()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	nc, err := NewNats(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer nc.Close()

	db, err := store.NewPg(cfg.Postgres.ConnStr())
	if err != nil {
		log.Fatal(err)
	}

	handler := NewHandler(db)

	slog.Info("starting kitchen", "workers", cfg.Kitchen.Workers, "queueSize", cfg.Kitchen.QueueSize)

	pool := NewWorkerPool(ctx, cfg.Kitchen.Workers, cfg.Kitchen.QueueSize, handler.HandleOrderPlaced)

	group := errgroup.Group{}
	errChan := make(chan error)

	group.Go(func() error {
		return nc.Subscribe(ctx, cfg.Nats.OrdersSubject, pool)
	})

	go func() {
		errChan <- group.Wait()
	}()

	select {
	case <-shutdown:
		slog.Info("shutting down")
		cancel()
	case err := <-errChan:
		slog.Info("shutting down due to error", "error", err)
		cancel()
	}

	pool.Stop()
	pool.Wait()
}
