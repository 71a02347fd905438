package calendar

import (
	"testing"
	"time"

	"khudalagse/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 2025-06-01 is a Sunday; the test week runs 2025-06-01 .. 2025-06-07.
func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

var testRestaurantID = primitive.NewObjectID()

func testRestaurants() map[primitive.ObjectID]models.Restaurant {
	return map[primitive.ObjectID]models.Restaurant{
		testRestaurantID: {ID: testRestaurantID, Name: "Dhaka Kitchen", ImageURL: "https://cdn.example.com/dhaka.jpg"},
	}
}

func activeSub(selections ...models.MealSelection) models.Subscription {
	return models.Subscription{
		ID:             primitive.NewObjectID(),
		RestaurantID:   testRestaurantID,
		Status:         models.SubscriptionActive,
		StartDate:      date(2025, 5, 1),
		MealSelections: selections,
	}
}

func TestWeekStart(t *testing.T) {
	sunday := date(2025, 6, 1)

	assert.Equal(t, sunday, WeekStart(sunday), "a Sunday is its own week start")
	assert.Equal(t, sunday, WeekStart(date(2025, 6, 4)), "midweek dates anchor to the preceding Sunday")
	assert.Equal(t, sunday, WeekStart(date(2025, 6, 7)), "Saturday still belongs to the same week")
	assert.Equal(t, sunday, WeekStart(time.Date(2025, 6, 3, 23, 59, 0, 0, time.UTC)), "time of day is ignored")
}

func TestWeeksBetween(t *testing.T) {
	a := date(2025, 6, 1)
	assert.Equal(t, 0, weeksBetween(a, a))
	assert.Equal(t, 2, weeksBetween(a, date(2025, 6, 15)))
	assert.Equal(t, -1, weeksBetween(a, date(2025, 5, 25)))
	assert.Equal(t, -1, weeksBetween(a, date(2025, 5, 26)), "partial weeks floor downward")
}

func TestSubscriptionEntriesOncePerMatchingSelection(t *testing.T) {
	sub := activeSub(
		models.MealSelection{Day: "monday", MealType: models.SlotLunch, MenuItemID: primitive.NewObjectID()},
		models.MealSelection{Day: "monday", MealType: models.SlotDinner, MenuItemID: primitive.NewObjectID()},
		models.MealSelection{Day: "tuesday", MealType: models.SlotLunch, MenuItemID: primitive.NewObjectID()},
	)

	entries := SubscriptionEntries([]models.Subscription{sub}, "monday", date(2025, 6, 2), testRestaurants())

	require.Len(t, entries, 2, "exactly one entry per selection matching the weekday")
	for _, e := range entries {
		assert.Equal(t, SourceSubscription, e.Source)
		assert.Equal(t, sub.ID, e.SubscriptionID)
		assert.Equal(t, "Dhaka Kitchen", e.RestaurantName)
		assert.Equal(t, models.SubscriptionActive, e.Status)
	}
}

func TestSubscriptionEntriesStatusFilter(t *testing.T) {
	selection := models.MealSelection{Day: "monday", MealType: models.SlotLunch}
	target := date(2025, 6, 2)

	for _, tc := range []struct {
		status  string
		visible bool
	}{
		{models.SubscriptionActive, true},
		{models.SubscriptionPaused, true},
		{models.SubscriptionCancelled, false},
		{models.SubscriptionExpired, false},
	} {
		sub := activeSub(selection)
		sub.Status = tc.status
		entries := SubscriptionEntries([]models.Subscription{sub}, "monday", target, testRestaurants())
		if tc.visible {
			require.Len(t, entries, 1, "status %s should be visible", tc.status)
			assert.Equal(t, tc.status, entries[0].Status)
		} else {
			assert.Empty(t, entries, "status %s should be hidden", tc.status)
		}
	}
}

func TestSubscriptionEntriesDateBounds(t *testing.T) {
	end := date(2025, 6, 3)
	sub := activeSub(models.MealSelection{Day: "monday", MealType: models.SlotLunch})
	sub.StartDate = date(2025, 6, 2)
	sub.EndDate = &end

	restaurants := testRestaurants()
	subs := []models.Subscription{sub}

	assert.Empty(t, SubscriptionEntries(subs, "monday", date(2025, 5, 26), restaurants), "before start date")
	assert.Len(t, SubscriptionEntries(subs, "monday", date(2025, 6, 2), restaurants), 1, "start date inclusive")
	assert.Empty(t, SubscriptionEntries(subs, "monday", date(2025, 6, 9), restaurants), "after end date")
}

func TestRepeatingSubscriptionNoRetroactiveWeeks(t *testing.T) {
	sub := activeSub(models.MealSelection{Day: "wednesday", MealType: models.SlotDinner})
	sub.StartDate = date(2025, 6, 4) // Wednesday of the 2025-06-01 week
	sub.IsRepeating = true

	restaurants := testRestaurants()
	subs := []models.Subscription{sub}

	assert.Empty(t, SubscriptionEntries(subs, "wednesday", date(2025, 5, 28), restaurants),
		"no selection for a week strictly before the start week")
	assert.Len(t, SubscriptionEntries(subs, "wednesday", date(2025, 6, 4), restaurants), 1, "start week included")
	assert.Len(t, SubscriptionEntries(subs, "wednesday", date(2025, 6, 11), restaurants), 1, "recurs in later weeks")
}

func orderOn(scheduled time.Time, status string, items ...models.OrderItem) models.Order {
	return models.Order{
		ID:            primitive.NewObjectID(),
		RestaurantID:  testRestaurantID,
		Status:        status,
		ScheduledDate: &scheduled,
		Items:         items,
		CreatedAt:     date(2025, 5, 30),
	}
}

func TestOrderEntriesOnePerLineItem(t *testing.T) {
	target := date(2025, 6, 3)
	order := orderOn(target, models.OrderPending,
		models.OrderItem{ItemID: primitive.NewObjectID(), Name: "Beef Tehari", Quantity: 2, Price: 250, MealType: models.SlotDinner},
		models.OrderItem{ItemID: primitive.NewObjectID(), Name: "Chicken Khichuri", Quantity: 1, Price: 180, MealType: models.SlotLunch},
	)

	entries := OrderEntries([]models.Order{order}, target, testRestaurants())

	require.Len(t, entries, 2)
	assert.Equal(t, models.SlotDinner, entries[0].MealType)
	assert.Equal(t, 2, entries[0].Quantity)
	assert.Equal(t, 250.0, entries[0].Price)
	assert.Equal(t, models.SlotLunch, entries[1].MealType)
	for _, e := range entries {
		assert.Equal(t, SourceOrder, e.Source)
		assert.Equal(t, order.ID, e.OrderID)
		assert.Equal(t, models.OrderPending, e.OrderStatus)
	}
}

func TestOrderEntriesMealSlotFallback(t *testing.T) {
	target := date(2025, 6, 3)

	// Item slot wins, then the order's meal type, then lunch.
	order := orderOn(target, models.OrderAccepted, models.OrderItem{Name: "Morog Polao", Quantity: 1, Price: 220})
	order.MealType = models.SlotDinner
	entries := OrderEntries([]models.Order{order}, target, testRestaurants())
	require.Len(t, entries, 1)
	assert.Equal(t, models.SlotDinner, entries[0].MealType, "falls back to the order's meal type")

	order.MealType = ""
	entries = OrderEntries([]models.Order{order}, target, testRestaurants())
	require.Len(t, entries, 1)
	assert.Equal(t, models.SlotLunch, entries[0].MealType, "falls back to lunch when nothing is set")
}

func TestOrderEntriesStatusFilter(t *testing.T) {
	target := date(2025, 6, 3)
	item := models.OrderItem{Name: "Shorshe Ilish", Quantity: 1, Price: 400}

	for _, tc := range []struct {
		status  string
		visible bool
	}{
		{models.OrderPending, true},
		{models.OrderAccepted, true},
		{models.OrderCompleted, true},
		{models.OrderCancelled, false},
	} {
		entries := OrderEntries([]models.Order{orderOn(target, tc.status, item)}, target, testRestaurants())
		if tc.visible {
			assert.Len(t, entries, 1, "status %s should be visible", tc.status)
		} else {
			assert.Empty(t, entries, "status %s should be hidden", tc.status)
		}
	}
}

func TestOrderEntriesEffectiveDatePrecedence(t *testing.T) {
	scheduled := date(2025, 6, 3)
	delivery := date(2025, 6, 5)
	item := models.OrderItem{Name: "Kacchi Biryani", Quantity: 1, Price: 350}

	order := orderOn(scheduled, models.OrderPending, item)
	order.DeliveryDate = &delivery

	restaurants := testRestaurants()
	assert.Empty(t, OrderEntries([]models.Order{order}, scheduled, restaurants),
		"delivery date overrides the scheduled date")
	assert.Len(t, OrderEntries([]models.Order{order}, delivery, restaurants), 1)

	// With neither date set, the creation date counts.
	created := models.Order{
		ID:        primitive.NewObjectID(),
		Status:    models.OrderPending,
		Items:     []models.OrderItem{item},
		CreatedAt: time.Date(2025, 6, 6, 18, 30, 0, 0, time.UTC),
	}
	assert.Len(t, OrderEntries([]models.Order{created}, date(2025, 6, 6), restaurants), 1)
}

func TestOrderEntriesUnknownRestaurantFallback(t *testing.T) {
	target := date(2025, 6, 3)
	order := orderOn(target, models.OrderPending, models.OrderItem{Name: "Fuchka", Quantity: 1, Price: 60})
	order.RestaurantID = primitive.NewObjectID() // not in the lookup

	entries := OrderEntries([]models.Order{order}, target, testRestaurants())
	require.Len(t, entries, 1)
	assert.Equal(t, "Unknown", entries[0].RestaurantName)
	assert.Equal(t, FallbackImage, entries[0].RestaurantImage)
}

func TestWeekBuildsSevenPartitionedDays(t *testing.T) {
	sub := activeSub(
		models.MealSelection{Day: "monday", MealType: models.SlotLunch},
		models.MealSelection{Day: "monday", MealType: models.SlotDinner},
	)
	tuesday := date(2025, 6, 3)
	order := orderOn(tuesday, models.OrderPending,
		models.OrderItem{Name: "Beef Tehari", Quantity: 1, Price: 250, MealType: models.SlotDinner})

	views := Week(date(2025, 6, 4), []models.Subscription{sub}, []models.Order{order}, testRestaurants())

	require.Len(t, views, 7)
	assert.Equal(t, date(2025, 6, 1), views[0].Date)
	assert.Equal(t, "sunday", views[0].Day)
	assert.Equal(t, "saturday", views[6].Day)

	monday, tue := views[1], views[2]
	assert.Len(t, monday.Lunch, 1)
	assert.Len(t, monday.Dinner, 1)
	assert.Empty(t, tue.Lunch, "an empty slot is a valid state")
	require.Len(t, tue.Dinner, 1)
	assert.Equal(t, SourceOrder, tue.Dinner[0].Source)

	// Days with nothing scheduled are still present.
	assert.Empty(t, views[5].Lunch)
	assert.Empty(t, views[5].Dinner)
}

func TestSplitBySlotDropsUnknownSlots(t *testing.T) {
	lunch, dinner := SplitBySlot([]Entry{
		{MealType: models.SlotLunch},
		{MealType: "breakfast"},
		{MealType: models.SlotDinner},
	})
	assert.Len(t, lunch, 1)
	assert.Len(t, dinner, 1)
}
