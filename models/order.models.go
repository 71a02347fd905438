package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem is a snapshot of a purchased menu item
type OrderItem struct {
	ItemID   primitive.ObjectID `bson:"item_id" json:"itemId"`
	Name     string             `bson:"name" json:"name"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Price    float64            `bson:"price" json:"price"`
	MealType string             `bson:"meal_type,omitempty" json:"mealType,omitempty"`
}

// Order represents a paid meal order. Orders are created once at payment
// verification time and only their status changes afterwards.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID        primitive.ObjectID `bson:"user_id" json:"userId"`
	RestaurantID  primitive.ObjectID `bson:"restaurant_id,omitempty" json:"restaurantId,omitempty"`
	Address       Address            `bson:"address" json:"address"`
	Items         []OrderItem        `bson:"items" json:"items"`
	Total         float64            `bson:"total" json:"total"`
	Status        string             `bson:"status" json:"status"` // one of models.OrderStatuses
	PaymentStatus string             `bson:"payment_status" json:"paymentStatus"`
	PaymentMethod string             `bson:"payment_method" json:"paymentMethod"`
	MealType      string             `bson:"meal_type,omitempty" json:"mealType,omitempty"`
	ScheduledDate *time.Time         `bson:"scheduled_date,omitempty" json:"scheduledDate,omitempty"`
	DeliveryDate  *time.Time         `bson:"delivery_date,omitempty" json:"deliveryDate,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
}
