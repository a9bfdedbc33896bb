package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/rajazohaibsaqib/Restaurant-Project-backend/index"
	"github.com/rajazohaibsaqib/Restaurant-Project-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrchestrator(store *fakeStore, idx *fakeIndex, events *fakePublisher) *Orchestrator {
	var publisher EventPublisher
	if events != nil {
		publisher = events
	}

	return NewOrchestrator(store, idx, NewTagRegistry(), publisher)
}

func TestRespond_PlacesOrder(t *testing.T) {
	store := &fakeStore{menu: testMenu()}
	events := &fakePublisher{}
	orchestrator := newTestOrchestrator(store, &fakeIndex{}, events)

	out, err := orchestrator.Respond(context.Background(), 5, "i want 2 tea and 1 greek salad")

	require.NoError(t, err)
	assert.Contains(t, out, "Order placed successfully")
	assert.Contains(t, out, "2 x tea (Rs 50)")
	assert.Contains(t, out, "1 x greek salad (Rs 350)")
	assert.Contains(t, out, "Total Bill: Rs 450.00")

	require.Len(t, store.orders, 1)
	assert.Equal(t, uint64(5), store.orders[0].UserID)
	assert.Equal(t, 450.0, store.orders[0].TotalAmount)
	assert.Equal(t, models.OrderStatusPending, store.orders[0].Status)
	require.Len(t, store.createdItems[0], 2)

	require.Len(t, events.events, 1)
	assert.Equal(t, store.orders[0].ID, events.events[0].OrderID)
	assert.Equal(t, 450.0, events.events[0].Total)
}

func TestRespond_PartialOrder(t *testing.T) {
	store := &fakeStore{menu: testMenu()}
	orchestrator := newTestOrchestrator(store, &fakeIndex{}, nil)

	out, err := orchestrator.Respond(context.Background(), 5, "i want 1 tea and 1 unicorn burger")

	require.NoError(t, err)
	assert.Contains(t, out, "Partial order placed")
	assert.Contains(t, out, "1 x tea (Rs 50)")
	assert.Contains(t, out, "unicorn burger")
	require.Len(t, store.orders, 1)
	assert.Equal(t, 50.0, store.orders[0].TotalAmount)
}

func TestRespond_AllItemsUnavailable(t *testing.T) {
	store := &fakeStore{menu: testMenu()}
	orchestrator := newTestOrchestrator(store, &fakeIndex{}, nil)

	out, err := orchestrator.Respond(context.Background(), 5, "i want 1 unicorn burger")

	require.NoError(t, err)
	assert.Contains(t, out, "none of the items you requested are available")
	assert.Contains(t, out, "unicorn burger")
	assert.Empty(t, store.orders)
}

func TestRespond_OrderIntentButNothingParsed(t *testing.T) {
	store := &fakeStore{menu: testMenu()}
	idx := &fakeIndex{}
	orchestrator := newTestOrchestrator(store, idx, nil)

	out, err := orchestrator.Respond(context.Background(), 5, "give me please")

	require.NoError(t, err)
	assert.Equal(t, msgCouldNotUnderstand, out)
	assert.Empty(t, store.orders)
	// Order intent keeps the message away from retrieval entirely.
	assert.Empty(t, idx.queries)
}

func TestRespond_RetrievalPath(t *testing.T) {
	store := &fakeStore{info: testInfo()}
	idx := &fakeIndex{match: index.Match{
		Question: "where are you located",
		Answer:   "Find us at <location>",
	}}
	orchestrator := newTestOrchestrator(store, idx, nil)

	out, err := orchestrator.Respond(context.Background(), 5, "where is the restaurant?")

	require.NoError(t, err)
	assert.Equal(t, "Find us at Golden Fork, 12 Mall Road, Lahore", out)
	assert.Equal(t, []string{"where is the restaurant?"}, idx.queries)
	// No order keyword means the parser's menu snapshot is never taken.
	assert.Zero(t, store.listMenuCalls)
}

func TestRespond_NoAnswerFallback(t *testing.T) {
	orchestrator := newTestOrchestrator(&fakeStore{}, &fakeIndex{err: index.ErrNoAnswer}, nil)

	out, err := orchestrator.Respond(context.Background(), 5, "what is the meaning of life?")

	require.NoError(t, err)
	assert.Equal(t, msgNoAnswer, out)
}

func TestRespond_IndexFailurePropagates(t *testing.T) {
	orchestrator := newTestOrchestrator(&fakeStore{}, &fakeIndex{err: errors.New("embedder down")}, nil)

	_, err := orchestrator.Respond(context.Background(), 5, "tell me about your menu options")

	assert.Error(t, err)
}

func TestRespond_PersistenceFailureAborts(t *testing.T) {
	store := &fakeStore{menu: testMenu(), createErr: errors.New("connection reset")}
	orchestrator := newTestOrchestrator(store, &fakeIndex{}, nil)

	_, err := orchestrator.Respond(context.Background(), 5, "i want 2 tea")

	assert.Error(t, err)
	assert.Empty(t, store.orders)
}

// Placing an order and then asking about the bill must reflect the order
// just written.
func TestRespond_BillRoundTrip(t *testing.T) {
	store := &fakeStore{menu: testMenu()}
	idx := &fakeIndex{match: index.Match{
		Question: "what is my bill",
		Answer:   "<bill>",
	}}
	orchestrator := newTestOrchestrator(store, idx, nil)

	_, err := orchestrator.Respond(context.Background(), 5, "i want 2 tea and 1 greek salad")
	require.NoError(t, err)

	out, err := orchestrator.Respond(context.Background(), 5, "how much do i owe?")
	require.NoError(t, err)
	assert.Equal(t, "Your total bill is Rs 450", out)
}

func TestRespond_PublishFailureDoesNotFailOrder(t *testing.T) {
	store := &fakeStore{menu: testMenu()}
	events := &fakePublisher{err: errors.New("nats unavailable")}
	orchestrator := newTestOrchestrator(store, &fakeIndex{}, events)

	out, err := orchestrator.Respond(context.Background(), 5, "i want 2 tea")

	require.NoError(t, err)
	assert.Contains(t, out, "Order placed successfully")
	require.Len(t, store.orders, 1)
}
