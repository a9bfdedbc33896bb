package chat

import (
	"context"

	"github.com/rajazohaibsaqib/Restaurant-Project-backend/index"
	"github.com/rajazohaibsaqib/Restaurant-Project-backend/models"
)

// fakeStore is an in-memory Store for the chat core tests.
type fakeStore struct {
	menu      []models.MenuItem
	info      *models.RestaurantInfo
	services  []models.Service
	platforms []models.Platform
	policies  []models.Policy
	staff     []models.Staff
	orders    []models.Order

	createErr error

	listMenuCalls    int
	latestOrderCalls int
	createdItems     [][]models.OrderItem
}

func (f *fakeStore) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	f.listMenuCalls++
	return f.menu, nil
}

func (f *fakeStore) RestaurantInfo(ctx context.Context) (*models.RestaurantInfo, error) {
	return f.info, nil
}

func (f *fakeStore) EnabledServices(ctx context.Context) ([]models.Service, error) {
	return f.services, nil
}

func (f *fakeStore) AvailablePlatforms(ctx context.Context) ([]models.Platform, error) {
	return f.platforms, nil
}

func (f *fakeStore) Policies(ctx context.Context) ([]models.Policy, error) {
	return f.policies, nil
}

func (f *fakeStore) StaffMembers(ctx context.Context) ([]models.Staff, error) {
	return f.staff, nil
}

func (f *fakeStore) LatestOrder(ctx context.Context, userID uint64) (*models.Order, error) {
	f.latestOrderCalls++
	for i := len(f.orders) - 1; i >= 0; i-- {
		if f.orders[i].UserID == userID {
			order := f.orders[i]
			return &order, nil
		}
	}

	return nil, nil
}

func (f *fakeStore) CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	if f.createErr != nil {
		return f.createErr
	}

	order.ID = uint64(len(f.orders) + 1)
	for i := range items {
		items[i].OrderID = order.ID
	}
	order.Items = items

	f.orders = append(f.orders, *order)
	f.createdItems = append(f.createdItems, items)

	return nil
}

// fakeIndex returns a fixed match or error and records queries.
type fakeIndex struct {
	match   index.Match
	err     error
	queries []string
}

func (f *fakeIndex) Answer(ctx context.Context, query string) (index.Match, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return index.Match{}, f.err
	}

	return f.match, nil
}

type fakePublisher struct {
	events []models.OrderPlacedEvent
	err    error
}

func (f *fakePublisher) PublishOrderPlaced(ctx context.Context, event models.OrderPlacedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)

	return nil
}
