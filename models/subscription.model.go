package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealSelection names one recurring meal inside a subscription: a weekday,
// a meal slot and the menu item to deliver.
type MealSelection struct {
	Day        string             `bson:"day" json:"day"` // "sunday" .. "saturday"
	MealType   string             `bson:"meal_type" json:"mealType"`
	MenuItemID primitive.ObjectID `bson:"menu_item_id" json:"menuItemId"`
}

// Subscription represents a meal plan owned by a user. A selection is in
// effect for a date only when that date falls within [StartDate, EndDate]
// and, for repeating plans, the date's week is not before the start week.
type Subscription struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID         primitive.ObjectID `bson:"user_id" json:"userId"`
	RestaurantID   primitive.ObjectID `bson:"restaurant_id" json:"restaurantId"`
	Status         string             `bson:"status" json:"status"` // one of models.SubscriptionStatuses
	PlanType       string             `bson:"plan_type,omitempty" json:"planType,omitempty"`
	StartDate      time.Time          `bson:"start_date" json:"startDate"`
	EndDate        *time.Time         `bson:"end_date,omitempty" json:"endDate,omitempty"`
	IsRepeating    bool               `bson:"is_repeating" json:"isRepeating"`
	MealSelections []MealSelection    `bson:"meal_selections" json:"mealSelections"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
}
