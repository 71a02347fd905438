package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WalletTransaction records a confirmed wallet credit
type WalletTransaction struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Amount    float64            `bson:"amount" json:"amount"`
	Method    string             `bson:"method" json:"method"`
	Type      string             `bson:"type" json:"type"` // "recharge"
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// ProcessedSession marks a checkout session whose outcome has already been
// materialized. The _id is the processor's session id, so a second insert
// for the same session fails with a duplicate key error and the verifier
// skips creating orders again.
type ProcessedSession struct {
	ID            string    `bson:"_id" json:"id"`
	Type          string    `bson:"type" json:"type"`
	OrdersCreated int       `bson:"orders_created" json:"ordersCreated"`
	ProcessedAt   time.Time `bson:"processed_at" json:"processedAt"`
}
