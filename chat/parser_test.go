package chat

import (
	"testing"

	"github.com/rajazohaibsaqib/Restaurant-Project-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMenu() []models.MenuItem {
	return []models.MenuItem{
		{ID: 1, Name: "tea", Price: 50},
		{ID: 2, Name: "greek salad", Price: 350},
	}
}

func TestParseOrder_MultipleItems(t *testing.T) {
	valid, missing := ParseOrder("i want 2 tea and 1 greek salad", testMenu())

	require.Len(t, valid, 2)
	assert.Empty(t, missing)

	assert.Equal(t, OrderLine{MenuItemID: 1, Name: "tea", Quantity: 2, PricePerUnit: 50}, valid[0])
	assert.Equal(t, OrderLine{MenuItemID: 2, Name: "greek salad", Quantity: 1, PricePerUnit: 350}, valid[1])
}

func TestParseOrder_DefaultQuantity(t *testing.T) {
	valid, missing := ParseOrder("i would like tea please", testMenu())

	require.Len(t, valid, 1)
	assert.Empty(t, missing)
	assert.Equal(t, 1, valid[0].Quantity)
}

func TestParseOrder_UnknownItem(t *testing.T) {
	valid, missing := ParseOrder("i want 1 unicorn burger", testMenu())

	assert.Empty(t, valid)
	assert.Equal(t, []string{"unicorn burger"}, missing)
}

func TestParseOrder_QuantityWithoutItem(t *testing.T) {
	valid, missing := ParseOrder("2", testMenu())

	assert.Empty(t, valid)
	assert.Empty(t, missing)
}

func TestParseOrder_AllStopwords(t *testing.T) {
	valid, missing := ParseOrder("give me please", testMenu())

	assert.Empty(t, valid)
	assert.Empty(t, missing)
}

func TestParseOrder_CaseInsensitive(t *testing.T) {
	valid, _ := ParseOrder("I WANT 3 TEA", testMenu())

	require.Len(t, valid, 1)
	assert.Equal(t, "tea", valid[0].Name)
	assert.Equal(t, 3, valid[0].Quantity)
}

// A menu name nested inside a longer one must not shadow it: the longest
// containing name wins regardless of snapshot position.
func TestParseOrder_LongestNameWins(t *testing.T) {
	menu := []models.MenuItem{
		{ID: 1, Name: "salad", Price: 150},
		{ID: 2, Name: "greek salad", Price: 350},
	}

	valid, missing := ParseOrder("i want 1 greek salad", menu)

	require.Len(t, valid, 1)
	assert.Empty(t, missing)
	assert.Equal(t, uint64(2), valid[0].MenuItemID)
	assert.Equal(t, "greek salad", valid[0].Name)
}

// A repeated mention of the same item is not counted twice; the leftover
// mention is not reported as missing either, since the name is known.
func TestParseOrder_NoDoubleCount(t *testing.T) {
	valid, missing := ParseOrder("1 tea and 2 tea", testMenu())

	require.Len(t, valid, 1)
	assert.Equal(t, "tea", valid[0].Name)
	assert.Empty(t, missing)
}

func TestParseOrder_MissingDeduplicated(t *testing.T) {
	_, missing := ParseOrder("1 unicorn burger and 1 unicorn burger", testMenu())

	assert.Equal(t, []string{"unicorn burger"}, missing)
}

func TestParseOrder_ShortNoiseDropped(t *testing.T) {
	valid, missing := ParseOrder("i want xy", testMenu())

	assert.Empty(t, valid)
	assert.Empty(t, missing)
}

func TestParseOrder_EmptyMenu(t *testing.T) {
	valid, missing := ParseOrder("i want 2 tea", nil)

	assert.Empty(t, valid)
	assert.Equal(t, []string{"tea"}, missing)
}
