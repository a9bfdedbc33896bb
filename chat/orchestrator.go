// Package chat implements the retrieval-and-order-extraction core: order
// intent detection, free-text order parsing against the live menu, tag
// substitution over canned answer templates, and the orchestrator tying
// them together.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rajazohaibsaqib/Restaurant-Project-backend/index"
	"github.com/rajazohaibsaqib/Restaurant-Project-backend/models"
)

// Store is the slice of the data store the chat core reads and writes.
// Menu and facts reads are per-request snapshots; nothing here is cached.
type Store interface {
	ListMenuItems(ctx context.Context) ([]models.MenuItem, error)
	RestaurantInfo(ctx context.Context) (*models.RestaurantInfo, error)
	EnabledServices(ctx context.Context) ([]models.Service, error)
	AvailablePlatforms(ctx context.Context) ([]models.Platform, error)
	Policies(ctx context.Context) ([]models.Policy, error)
	StaffMembers(ctx context.Context) ([]models.Staff, error)
	LatestOrder(ctx context.Context, userID uint64) (*models.Order, error)
	CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem) error
}

// AnswerIndex is the semantic lookup capability the orchestrator retrieves
// canned answers through.
type AnswerIndex interface {
	Answer(ctx context.Context, query string) (index.Match, error)
}

// EventPublisher notifies downstream consumers about placed orders.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event models.OrderPlacedEvent) error
}

const (
	msgCouldNotUnderstand = "Sorry, I couldn't understand your order. Could you please rephrase?"
	msgNoAnswer           = "Sorry, I don't have an answer for that. Please try asking differently."
)

type Orchestrator struct {
	store  Store
	index  AnswerIndex
	tags   *TagRegistry
	events EventPublisher
}

// NewOrchestrator wires the chat core. events may be nil when no order
// consumer is running.
func NewOrchestrator(store Store, idx AnswerIndex, tags *TagRegistry, events EventPublisher) *Orchestrator {
	return &Orchestrator{
		store:  store,
		index:  idx,
		tags:   tags,
		events: events,
	}
}

// Respond handles one chat message in a single pass: classify intent, then
// either place an order or retrieve and render a canned answer. It holds no
// state between calls.
func (o *Orchestrator) Respond(ctx context.Context, userID uint64, message string) (string, error) {
	if IsOrderQuery(message) {
		return o.respondToOrder(ctx, userID, message)
	}

	match, err := o.index.Answer(ctx, message)
	if errors.Is(err, index.ErrNoAnswer) {
		return msgNoAnswer, nil
	}
	if err != nil {
		return "", err
	}

	return o.tags.Render(ctx, o.store, userID, match.Answer)
}

func (o *Orchestrator) respondToOrder(ctx context.Context, userID uint64, message string) (string, error) {
	menu, err := o.store.ListMenuItems(ctx)
	if err != nil {
		return "", err
	}

	valid, missing := ParseOrder(message, menu)

	switch {
	case len(valid) > 0:
		total, err := o.placeOrder(ctx, userID, valid)
		if err != nil {
			return "", err
		}
		if len(missing) > 0 {
			return partialOrderMessage(valid, missing, total), nil
		}
		return orderPlacedMessage(valid, total), nil

	case len(missing) > 0:
		return unavailableItemsMessage(missing), nil

	default:
		return msgCouldNotUnderstand, nil
	}
}

// placeOrder persists the order atomically using the unit prices captured
// in the parse snapshot, then publishes the order event best effort.
func (o *Orchestrator) placeOrder(ctx context.Context, userID uint64, lines []OrderLine) (float64, error) {
	var total float64
	items := make([]models.OrderItem, len(lines))
	for i, line := range lines {
		total += float64(line.Quantity) * line.PricePerUnit
		items[i] = models.OrderItem{
			MenuItemID:   line.MenuItemID,
			Quantity:     line.Quantity,
			PricePerUnit: line.PricePerUnit,
		}
	}

	order := &models.Order{
		UserID:        userID,
		Status:        models.OrderStatusPending,
		TotalAmount:   total,
		PaymentMethod: "cash",
	}

	if err := o.store.CreateOrder(ctx, order, items); err != nil {
		return 0, fmt.Errorf("failed to place order: %w", err)
	}

	if o.events != nil {
		event := models.OrderPlacedEvent{
			OrderID: order.ID,
			UserID:  userID,
			Total:   total,
		}
		if err := o.events.PublishOrderPlaced(ctx, event); err != nil {
			slog.Warn("failed to publish order event", "order_id", order.ID, "error", err)
		}
	}

	return total, nil
}

func orderLinesText(lines []OrderLine) string {
	parts := make([]string, len(lines))
	for i, line := range lines {
		parts[i] = fmt.Sprintf("%d x %s (Rs %g)", line.Quantity, line.Name, line.PricePerUnit)
	}

	return strings.Join(parts, "\n")
}

func orderPlacedMessage(lines []OrderLine, total float64) string {
	return fmt.Sprintf("Order placed successfully:\n%s\n\nTotal Bill: Rs %.2f", orderLinesText(lines), total)
}

func partialOrderMessage(lines []OrderLine, missing []string, total float64) string {
	return fmt.Sprintf(
		"Partial order placed:\n%s\n\nTotal Bill: Rs %.2f\n\nSorry, we couldn't find: %s in our menu.",
		orderLinesText(lines), total, strings.Join(missing, ", "),
	)
}

func unavailableItemsMessage(missing []string) string {
	return fmt.Sprintf(
		"Sorry, none of the items you requested are available in our menu.\nUnavailable items: %s.",
		strings.Join(missing, ", "),
	)
}
