package controllers

import (
	"context"
	"encoding/json"
	"khudalagse/models"
	"khudalagse/utils"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultListLimit = 50

// AdminController handles the admin dashboard tables: list endpoints with a
// limit parameter and status/role mutations validated against the policy
// tables in the models package.
type AdminController struct {
	Users         *mongo.Collection
	Orders        *mongo.Collection
	Subscriptions *mongo.Collection
}

// NewAdminController creates a new AdminController
func NewAdminController(client *mongo.Client) *AdminController {
	db := client.Database(utils.DatabaseName)
	return &AdminController{
		Users:         db.Collection("users"),
		Orders:        db.Collection("orders"),
		Subscriptions: db.Collection("subscriptions"),
	}
}

func listLimit(r *http.Request) int64 {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= defaultListLimit {
			limit = n
		}
	}
	return int64(limit)
}

// listNewest fetches up to limit documents, newest first, into out
func listNewest(ctx context.Context, collection *mongo.Collection, limit int64, out interface{}) error {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetLimit(limit)
	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return err
	}
	return cursor.All(ctx, out)
}

// GetUsers lists users for the admin table
func (ac *AdminController) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := dbContext()
	defer cancel()

	users := []models.User{}
	if err := listNewest(ctx, ac.Users, listLimit(r), &users); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load users")
		return
	}
	for i := range users {
		users[i].Password = ""
		users[i].VerificationToken = ""
	}

	utils.WriteData(w, http.StatusOK, map[string]interface{}{"items": users})
}

// UpdateUser updates a user's role and/or active flag
func (ac *AdminController) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var payload struct {
		Role     *string `json:"role"`
		IsActive *bool   `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	set := bson.M{}
	if payload.Role != nil {
		if !models.IsValidRole(*payload.Role) {
			utils.WriteError(w, http.StatusBadRequest, "Invalid role")
			return
		}
		set["role"] = *payload.Role
	}
	if payload.IsActive != nil {
		set["is_active"] = *payload.IsActive
	}
	if len(set) == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	ctx, cancel := dbContext()
	defer cancel()

	result, err := ac.Users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}
	if result.MatchedCount == 0 {
		utils.WriteError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "User updated successfully"})
}

// GetOrders lists orders for the admin table
func (ac *AdminController) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := dbContext()
	defer cancel()

	orders := []models.Order{}
	if err := listNewest(ctx, ac.Orders, listLimit(r), &orders); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load orders")
		return
	}

	utils.WriteData(w, http.StatusOK, map[string]interface{}{"items": orders})
}

// UpdateOrderStatus transitions an order to a new status
func (ac *AdminController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !models.IsValidOrderStatus(payload.Status) {
		utils.WriteError(w, http.StatusBadRequest, "Invalid order status")
		return
	}

	ctx, cancel := dbContext()
	defer cancel()

	result, err := ac.Orders.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": payload.Status}})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update order")
		return
	}
	if result.MatchedCount == 0 {
		utils.WriteError(w, http.StatusNotFound, "Order not found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Order status updated successfully"})
}

// GetSubscriptions lists subscriptions for the admin table
func (ac *AdminController) GetSubscriptions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := dbContext()
	defer cancel()

	subscriptions := []models.Subscription{}
	if err := listNewest(ctx, ac.Subscriptions, listLimit(r), &subscriptions); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load subscriptions")
		return
	}

	utils.WriteData(w, http.StatusOK, map[string]interface{}{"items": subscriptions})
}

// UpdateSubscription transitions a subscription to a new status. Cancelled
// and expired subscriptions are terminal and cannot be moved again.
func (ac *AdminController) UpdateSubscription(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid subscription ID")
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !models.IsValidSubscriptionStatus(payload.Status) {
		utils.WriteError(w, http.StatusBadRequest, "Invalid subscription status")
		return
	}

	ctx, cancel := dbContext()
	defer cancel()

	var subscription models.Subscription
	err = ac.Subscriptions.FindOne(ctx, bson.M{"_id": id}).Decode(&subscription)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "Subscription not found")
		return
	}
	if models.IsTerminalSubscriptionStatus(subscription.Status) {
		utils.WriteError(w, http.StatusBadRequest, "Subscription is in a terminal state")
		return
	}

	_, err = ac.Subscriptions.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": payload.Status}})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update subscription")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Subscription updated successfully"})
}
