package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address represents a delivery address
type Address struct {
	Street  string `bson:"street" json:"street"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	ZipCode string `bson:"zipcode" json:"zipcode"`
}

// User represents a user in the system
type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name              string             `bson:"name" json:"name"`
	Email             string             `bson:"email" json:"email"`
	Password          string             `bson:"password,omitempty" json:"-"`
	Address           Address            `bson:"address" json:"address"`
	Role              string             `bson:"role" json:"role"` // one of models.UserRoles
	IsActive          bool               `bson:"is_active" json:"isActive"`
	IsVerified        bool               `bson:"is_verified" json:"isVerified"`
	VerificationToken string             `bson:"verification_token" json:"-"`
	WalletBalance     float64            `bson:"wallet_balance" json:"walletBalance"`
}
