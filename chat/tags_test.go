package chat

import (
	"context"
	"strings"
	"testing"

	"github.com/rajazohaibsaqib/Restaurant-Project-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInfo() *models.RestaurantInfo {
	return &models.RestaurantInfo{
		ID:           1,
		Name:         "Golden Fork",
		Address:      "12 Mall Road, Lahore",
		Contact:      "042-1234567",
		Email:        "hello@goldenfork.pk",
		Wifi:         true,
		Parking:      false,
		OpeningHours: "9am",
		ClosingTime:  "11pm",
		WeekendHours: "10am - midnight",
		DeliveryTime: "30-45 minutes",
		Capacity:     80,
	}
}

func TestRender_RepeatedTagResolvesOnce(t *testing.T) {
	store := &fakeStore{
		orders: []models.Order{{ID: 7, UserID: 3, TotalAmount: 400}},
	}
	registry := NewTagRegistry()

	out, err := registry.Render(context.Background(), store, 3, "Your total is <bill>, again <bill>")

	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "Your total bill is Rs 400"))
	assert.Equal(t, 1, store.latestOrderCalls)
}

func TestRender_UnknownTagPassesThrough(t *testing.T) {
	registry := NewTagRegistry()

	out, err := registry.Render(context.Background(), &fakeStore{}, 1, "We offer <foobar> here")

	require.NoError(t, err)
	assert.Equal(t, "We offer <foobar> here", out)
}

func TestRender_MenuListing(t *testing.T) {
	store := &fakeStore{menu: testMenu()}
	registry := NewTagRegistry()

	out, err := registry.Render(context.Background(), store, 1, "Here is our menu:\n<menuitem>")

	require.NoError(t, err)
	assert.Contains(t, out, "tea - Rs 50")
	assert.Contains(t, out, "greek salad - Rs 350")
}

func TestRender_MissingDataPlaceholders(t *testing.T) {
	registry := NewTagRegistry()
	store := &fakeStore{}

	tests := []struct {
		template string
		want     string
	}{
		{template: "<menuitem>", want: "No menu items available."},
		{template: "<location>", want: "Location not found."},
		{template: "<bill>", want: "No bill found."},
		{template: "<amount>", want: "Amount not found."},
		{template: "<contact>", want: "Contact info not available."},
		{template: "<service>", want: "No active services."},
		{template: "<platform>", want: "No available platforms."},
		{template: "<policy>", want: "No policies available."},
		{template: "<staff>", want: "No staff listed."},
		{template: "<wifi>", want: "Not Available"},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			out, err := registry.Render(context.Background(), store, 1, tt.template)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRender_RestaurantFacts(t *testing.T) {
	store := &fakeStore{info: testInfo()}
	registry := NewTagRegistry()

	tests := []struct {
		template string
		want     string
	}{
		{template: "<location>", want: "Golden Fork, 12 Mall Road, Lahore"},
		{template: "<name>", want: "Golden Fork"},
		{template: "<contact>", want: "042-1234567"},
		{template: "<email>", want: "hello@goldenfork.pk"},
		{template: "<wifi>", want: "Available"},
		{template: "<parking>", want: "Not Available"},
		{template: "<hours>", want: "Open 9am, closing at 11pm. Weekend hours: 10am - midnight"},
		{template: "<delivery>", want: "30-45 minutes"},
		{template: "<capacity>", want: "80 guests"},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			out, err := registry.Render(context.Background(), store, 1, tt.template)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRender_ReferenceSets(t *testing.T) {
	store := &fakeStore{
		services:  []models.Service{{Name: "delivery", Enabled: true}, {Name: "dine-in", Enabled: true}},
		platforms: []models.Platform{{Name: "foodpanda", Available: true}},
		policies:  []models.Policy{{Name: "halal_certified", Value: "Yes"}},
		staff:     []models.Staff{{Role: "manager", Name: "Ayesha"}},
	}
	registry := NewTagRegistry()

	out, err := registry.Render(context.Background(), store, 1, "<service> | <platform> | <policy> | <staff>")

	require.NoError(t, err)
	assert.Equal(t, "Delivery, Dine-in | foodpanda | Halal Certified: Yes | Manager: Ayesha", out)
}

func TestRender_CustomResolver(t *testing.T) {
	registry := NewTagRegistry()
	registry.Register("greeting", func(ctx context.Context, store Store, userID uint64) (string, error) {
		return "Welcome!", nil
	})

	out, err := registry.Render(context.Background(), &fakeStore{}, 1, "<greeting>")

	require.NoError(t, err)
	assert.Equal(t, "Welcome!", out)
}
