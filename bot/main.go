package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/gorilla/websocket"
	"github.com/rajazohaibsaqib/Restaurant-Project-backend/chat"
	"github.com/rajazohaibsaqib/Restaurant-Project-backend/config"
	"github.com/rajazohaibsaqib/Restaurant-Project-backend/index"
	"github.com/rajazohaibsaqib/Restaurant-Project-backend/store"
)

type Bot struct {
	config   *config.Config
	handler  *Handler
	upgrader websocket.Upgrader
}

func main() {
	cfg := config.LoadConfig()

	db, err := store.NewPg(cfg.Postgres.ConnStr())
	if err != nil {
		log.Fatal(err)
	}

	embedder, err := index.NewOllamaEmbedder(cfg.Ollama.Address(), cfg.Ollama.EmbeddingModel)
	if err != nil {
		log.Fatal(err)
	}

	// The corpus is loaded exactly once; a stale or mismatched corpus is a
	// startup failure, not a runtime one.
	idx, err := index.Load(context.Background(), db, embedder, cfg.Ollama.EmbeddingModel)
	if err != nil {
		log.Fatal(err)
	}
	slog.Info("semantic index loaded", "entries", idx.Size())

	publisher, err := NewPublisher(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer publisher.Close()

	orchestrator := chat.NewOrchestrator(db, idx, chat.NewTagRegistry(), publisher)

	bot := &Bot{
		config:   cfg,
		handler:  NewHandler(db, orchestrator),
		upgrader: websocket.Upgrader{},
	}

	if err := bot.Run(); err != nil {
		log.Fatalf("failed to run the bot: %v", err)
	}
}
