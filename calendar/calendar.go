// Package calendar merges recurring subscription meal selections and
// one-time orders into a per-day, per-slot weekly view. All date math is
// done at day granularity in UTC, matching how dates are persisted.
package calendar

import (
	"time"

	"khudalagse/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Days indexes weekday names by time.Weekday (Sunday = 0)
var Days = [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// FallbackImage is shown when a restaurant has no image of its own
const FallbackImage = "https://images.pexels.com/photos/1640777/pexels-photo-1640777.jpeg?auto=compress&cs=tinysrgb&w=800"

// Entry sources
const (
	SourceSubscription = "subscription"
	SourceOrder        = "order"
)

// Entry is one scheduled meal on a given day, denormalized so it can be
// rendered without further lookups.
type Entry struct {
	Source          string             `json:"type"`
	SubscriptionID  primitive.ObjectID `json:"subscriptionId,omitempty"`
	OrderID         primitive.ObjectID `json:"orderId,omitempty"`
	MenuItemID      primitive.ObjectID `json:"menuItemId,omitempty"`
	MealType        string             `json:"mealType"`
	RestaurantName  string             `json:"restaurantName"`
	RestaurantImage string             `json:"restaurantImage"`
	Price           float64            `json:"price,omitempty"`
	Quantity        int                `json:"quantity"`
	Status          string             `json:"status"`
	OrderStatus     string             `json:"orderStatus,omitempty"`
}

// DayView holds one calendar day with its entries split by meal slot.
// An empty slot is a valid state, not an error.
type DayView struct {
	Day    string    `json:"day"`
	Date   time.Time `json:"date"`
	Lunch  []Entry   `json:"lunch"`
	Dinner []Entry   `json:"dinner"`
}

func atMidnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekStart returns midnight of the Sunday at or before t
func WeekStart(t time.Time) time.Time {
	d := atMidnight(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// weeksBetween returns the floored number of whole weeks from a to b
func weeksBetween(a, b time.Time) int {
	const week = 7 * 24 * time.Hour
	diff := b.Sub(a)
	w := diff / week
	if diff%week != 0 && diff < 0 {
		w--
	}
	return int(w)
}

func restaurantDisplay(restaurants map[primitive.ObjectID]models.Restaurant, id primitive.ObjectID) (string, string) {
	if r, ok := restaurants[id]; ok {
		name := r.Name
		if name == "" {
			name = "Unknown"
		}
		image := r.ImageURL
		if image == "" {
			image = FallbackImage
		}
		return name, image
	}
	return "Unknown", FallbackImage
}

// SubscriptionEntries returns the meal selections in effect for the named
// weekday on the given date. Only active and paused subscriptions count; a
// selection is skipped when the date falls outside [StartDate, EndDate] or,
// for repeating plans, when the date's week precedes the start week.
func SubscriptionEntries(subs []models.Subscription, day string, date time.Time, restaurants map[primitive.ObjectID]models.Restaurant) []Entry {
	target := atMidnight(date)
	var entries []Entry

	for _, sub := range subs {
		if sub.Status != models.SubscriptionActive && sub.Status != models.SubscriptionPaused {
			continue
		}
		start := atMidnight(sub.StartDate)

		for _, sel := range sub.MealSelections {
			if sel.Day != day {
				continue
			}
			if target.Before(start) {
				continue
			}
			if sub.EndDate != nil && target.After(atMidnight(*sub.EndDate)) {
				continue
			}
			if sub.IsRepeating && weeksBetween(WeekStart(sub.StartDate), WeekStart(target)) < 0 {
				continue
			}

			name, image := restaurantDisplay(restaurants, sub.RestaurantID)
			entries = append(entries, Entry{
				Source:          SourceSubscription,
				SubscriptionID:  sub.ID,
				MenuItemID:      sel.MenuItemID,
				MealType:        sel.MealType,
				RestaurantName:  name,
				RestaurantImage: image,
				Quantity:        1,
				Status:          sub.Status,
			})
		}
	}
	return entries
}

// effectiveDate picks the date an order counts for: delivery date, else
// scheduled date, else creation date.
func effectiveDate(o models.Order) (time.Time, bool) {
	if o.DeliveryDate != nil {
		return *o.DeliveryDate, true
	}
	if o.ScheduledDate != nil {
		return *o.ScheduledDate, true
	}
	if !o.CreatedAt.IsZero() {
		return o.CreatedAt, true
	}
	return time.Time{}, false
}

// OrderEntries expands the orders landing on the given date into one entry
// per line item. Cancelled orders never appear; the meal slot falls back
// from the item to the order to lunch.
func OrderEntries(orders []models.Order, date time.Time, restaurants map[primitive.ObjectID]models.Restaurant) []Entry {
	target := atMidnight(date)
	var entries []Entry

	for _, o := range orders {
		if o.Status != models.OrderPending && o.Status != models.OrderAccepted && o.Status != models.OrderCompleted {
			continue
		}
		eff, ok := effectiveDate(o)
		if !ok || !atMidnight(eff).Equal(target) {
			continue
		}

		name, image := restaurantDisplay(restaurants, o.RestaurantID)
		for _, item := range o.Items {
			slot := item.MealType
			if slot == "" {
				slot = o.MealType
			}
			if slot == "" {
				slot = models.SlotLunch
			}
			qty := item.Quantity
			if qty < 1 {
				qty = 1
			}
			entries = append(entries, Entry{
				Source:          SourceOrder,
				OrderID:         o.ID,
				MenuItemID:      item.ItemID,
				MealType:        slot,
				RestaurantName:  name,
				RestaurantImage: image,
				Price:           item.Price,
				Quantity:        qty,
				Status:          models.SubscriptionActive,
				OrderStatus:     o.Status,
			})
		}
	}
	return entries
}

// EntriesForDay concatenates subscription and order entries in source order
func EntriesForDay(subs []models.Subscription, orders []models.Order, day string, date time.Time, restaurants map[primitive.ObjectID]models.Restaurant) []Entry {
	entries := SubscriptionEntries(subs, day, date, restaurants)
	return append(entries, OrderEntries(orders, date, restaurants)...)
}

// SplitBySlot partitions entries into lunch and dinner buckets
func SplitBySlot(entries []Entry) (lunch, dinner []Entry) {
	for _, e := range entries {
		switch e.MealType {
		case models.SlotLunch:
			lunch = append(lunch, e)
		case models.SlotDinner:
			dinner = append(dinner, e)
		}
	}
	return lunch, dinner
}

// Week builds the 7-day view for the week containing ref
func Week(ref time.Time, subs []models.Subscription, orders []models.Order, restaurants map[primitive.ObjectID]models.Restaurant) []DayView {
	start := WeekStart(ref)
	views := make([]DayView, 0, len(Days))

	for i, day := range Days {
		date := start.AddDate(0, 0, i)
		lunch, dinner := SplitBySlot(EntriesForDay(subs, orders, day, date, restaurants))
		views = append(views, DayView{
			Day:    day,
			Date:   date,
			Lunch:  lunch,
			Dinner: dinner,
		})
	}
	return views
}
