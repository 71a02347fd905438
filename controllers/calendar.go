package controllers

import (
	"context"
	"khudalagse/calendar"
	"khudalagse/models"
	"khudalagse/utils"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CalendarController serves the aggregated weekly meal view
type CalendarController struct {
	Subscriptions *mongo.Collection
	Orders        *mongo.Collection
	Restaurants   *mongo.Collection
	Users         *mongo.Collection
}

// NewCalendarController creates a new CalendarController
func NewCalendarController(client *mongo.Client) *CalendarController {
	db := client.Database(utils.DatabaseName)
	return &CalendarController{
		Subscriptions: db.Collection("subscriptions"),
		Orders:        db.Collection("orders"),
		Restaurants:   db.Collection("restaurants"),
		Users:         db.Collection("users"),
	}
}

// GetWeek returns the caller's 7-day meal view for the week containing the
// optional ?week=YYYY-MM-DD date (default: current week). Both sources are
// loaded inside one request; if either load fails the whole refresh fails
// rather than showing partial data.
func (cc *CalendarController) GetWeek(w http.ResponseWriter, r *http.Request) {
	ref := time.Now().UTC()
	if raw := r.URL.Query().Get("week"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Invalid week date, expected YYYY-MM-DD")
			return
		}
		ref = parsed
	}

	ctx, cancel := dbContext()
	defer cancel()

	user, err := currentUser(ctx, cc.Users, r)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "User not found")
		return
	}

	weekStart := calendar.WeekStart(ref)
	weekEnd := weekStart.AddDate(0, 0, 7)

	subscriptions := []models.Subscription{}
	cursor, err := cc.Subscriptions.Find(ctx, bson.M{"user_id": user.ID})
	if err == nil {
		err = cursor.All(ctx, &subscriptions)
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load calendar")
		return
	}

	orders := []models.Order{}
	cursor, err = cc.Orders.Find(ctx, windowFilter(user.ID, weekStart, weekEnd))
	if err == nil {
		err = cursor.All(ctx, &orders)
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load calendar")
		return
	}

	restaurants, err := cc.restaurantLookup(ctx, subscriptions, orders)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load calendar")
		return
	}

	utils.WriteData(w, http.StatusOK, map[string]interface{}{
		"weekStart": weekStart,
		"days":      calendar.Week(ref, subscriptions, orders, restaurants),
	})
}

// restaurantLookup fetches the restaurants referenced by the week's
// subscriptions and orders, keyed by id for denormalization.
func (cc *CalendarController) restaurantLookup(ctx context.Context, subscriptions []models.Subscription, orders []models.Order) (map[primitive.ObjectID]models.Restaurant, error) {
	seen := map[primitive.ObjectID]bool{}
	ids := []primitive.ObjectID{}
	add := func(id primitive.ObjectID) {
		if !id.IsZero() && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, sub := range subscriptions {
		add(sub.RestaurantID)
	}
	for _, order := range orders {
		add(order.RestaurantID)
	}

	lookup := map[primitive.ObjectID]models.Restaurant{}
	if len(ids) == 0 {
		return lookup, nil
	}

	cursor, err := cc.Restaurants.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	restaurants := []models.Restaurant{}
	if err := cursor.All(ctx, &restaurants); err != nil {
		return nil, err
	}
	for _, restaurant := range restaurants {
		lookup[restaurant.ID] = restaurant
	}
	return lookup, nil
}
