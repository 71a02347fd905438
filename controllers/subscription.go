package controllers

import (
	"khudalagse/models"
	"khudalagse/utils"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SubscriptionController serves the caller's own subscriptions
type SubscriptionController struct {
	Subscriptions *mongo.Collection
	Users         *mongo.Collection
}

// NewSubscriptionController creates a new SubscriptionController
func NewSubscriptionController(client *mongo.Client) *SubscriptionController {
	db := client.Database(utils.DatabaseName)
	return &SubscriptionController{
		Subscriptions: db.Collection("subscriptions"),
		Users:         db.Collection("users"),
	}
}

// GetSubscriptions retrieves all subscriptions owned by the caller
func (sc *SubscriptionController) GetSubscriptions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := dbContext()
	defer cancel()

	user, err := currentUser(ctx, sc.Users, r)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "User not found")
		return
	}

	cursor, err := sc.Subscriptions.Find(ctx, bson.M{"user_id": user.ID})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to retrieve subscriptions")
		return
	}
	defer cursor.Close(ctx)

	subscriptions := []models.Subscription{}
	if err := cursor.All(ctx, &subscriptions); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error decoding subscriptions")
		return
	}

	utils.WriteData(w, http.StatusOK, subscriptions)
}
