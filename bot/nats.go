package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rajazohaibsaqib/Restaurant-Project-backend/config"
	"github.com/rajazohaibsaqib/Restaurant-Project-backend/models"
)

// Publisher emits order events to the JetStream orders stream. The stream
// is created on startup when it does not exist yet.
type Publisher struct {
	conn    *nats.Conn
	js      nats.JetStreamContext
	subject string
}

func NewPublisher(cfg *config.Config) (*Publisher, error) {
	nc, err := nats.Connect(cfg.Nats.ConnStr())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to get jetstream context: %w", err)
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name:      cfg.Nats.Stream,
		Subjects:  []string{cfg.Nats.OrdersSubject},
		Storage:   nats.FileStorage,
		Retention: nats.LimitsPolicy,
		MaxAge:    time.Hour * 24 * 7,
	})
	if err != nil && !errors.Is(err, nats.ErrStreamNameAlreadyInUse) {
		nc.Close()
		return nil, fmt.Errorf("failed to create stream: %w", err)
	}

	return &Publisher{
		conn:    nc,
		js:      js,
		subject: cfg.Nats.OrdersSubject,
	}, nil
}

func (p *Publisher) PublishOrderPlaced(ctx context.Context, event models.OrderPlacedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	if _, err := p.js.Publish(p.subject, data, nats.Context(ctx)); err != nil {
		return fmt.Errorf("failed to publish order event: %w", err)
	}

	return nil
}

func (p *Publisher) Close() {
	p.conn.Close()
}
