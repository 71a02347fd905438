package controllers

import (
	"encoding/json"
	"khudalagse/models"
	"khudalagse/utils"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WalletController applies confirmed recharges to user wallets
type WalletController struct {
	Users        *mongo.Collection
	Transactions *mongo.Collection
}

// NewWalletController creates a new WalletController
func NewWalletController(client *mongo.Client) *WalletController {
	db := client.Database(utils.DatabaseName)
	return &WalletController{
		Users:        db.Collection("users"),
		Transactions: db.Collection("wallet_transactions"),
	}
}

// Recharge credits the authenticated user's wallet with a confirmed amount
func (wc *WalletController) Recharge(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Amount float64 `json:"amount"`
		Method string  `json:"method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Amount <= 0 {
		utils.WriteError(w, http.StatusBadRequest, "A positive amount is required")
		return
	}
	if payload.Method == "" {
		payload.Method = "stripe"
	}

	ctx, cancel := dbContext()
	defer cancel()

	user, err := currentUser(ctx, wc.Users, r)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "User not found")
		return
	}

	var updated models.User
	err = wc.Users.FindOneAndUpdate(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$inc": bson.M{"wallet_balance": payload.Amount}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update wallet balance")
		return
	}

	_, err = wc.Transactions.InsertOne(ctx, models.WalletTransaction{
		UserID:    user.ID,
		Amount:    payload.Amount,
		Method:    payload.Method,
		Type:      "recharge",
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to record wallet transaction")
		return
	}

	utils.WriteData(w, http.StatusOK, map[string]interface{}{"balance": updated.WalletBalance})
}
