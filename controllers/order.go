package controllers

import (
	"khudalagse/models"
	"khudalagse/utils"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// OrderController serves the caller's own orders
type OrderController struct {
	Orders *mongo.Collection
	Users  *mongo.Collection
}

// NewOrderController creates a new OrderController
func NewOrderController(client *mongo.Client) *OrderController {
	db := client.Database(utils.DatabaseName)
	return &OrderController{
		Orders: db.Collection("orders"),
		Users:  db.Collection("users"),
	}
}

func parseWindowDate(raw string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// windowFilter matches orders whose effective date (delivery date, else
// scheduled date, else creation date) falls inside [start, end).
func windowFilter(userID interface{}, start, end time.Time) bson.M {
	inWindow := func(field string) bson.M {
		return bson.M{field: bson.M{"$gte": start, "$lt": end}}
	}
	return bson.M{
		"user_id": userID,
		"$or": []bson.M{
			inWindow("delivery_date"),
			{"delivery_date": bson.M{"$exists": false}, "scheduled_date": bson.M{"$gte": start, "$lt": end}},
			{"delivery_date": bson.M{"$exists": false}, "scheduled_date": bson.M{"$exists": false}, "created_at": bson.M{"$gte": start, "$lt": end}},
		},
	}
}

// GetOrders retrieves the authenticated user's orders within a date window
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := dbContext()
	defer cancel()

	user, err := currentUser(ctx, oc.Users, r)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "User not found")
		return
	}

	filter := bson.M{"user_id": user.ID}
	startRaw := r.URL.Query().Get("startDate")
	endRaw := r.URL.Query().Get("endDate")
	if startRaw != "" && endRaw != "" {
		start, okStart := parseWindowDate(startRaw)
		end, okEnd := parseWindowDate(endRaw)
		if !okStart || !okEnd {
			utils.WriteError(w, http.StatusBadRequest, "Invalid startDate or endDate")
			return
		}
		filter = windowFilter(user.ID, start, end)
	}

	cursor, err := oc.Orders.Find(ctx, filter)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error decoding orders")
		return
	}

	utils.WriteData(w, http.StatusOK, orders)
}
