package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Restaurant represents a partner restaurant
type Restaurant struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Cuisine  string             `bson:"cuisine,omitempty" json:"cuisine,omitempty"`
	ImageURL string             `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	Address  Address            `bson:"address" json:"address"`
	IsOpen   bool               `bson:"is_open" json:"isOpen"`
}

// MenuItem represents a dish offered by a restaurant
type MenuItem struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	RestaurantID primitive.ObjectID `bson:"restaurant_id" json:"restaurantId"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Price        float64            `bson:"price" json:"price"`
	ImageURL     string             `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	MealType     string             `bson:"meal_type,omitempty" json:"mealType,omitempty"` // lunch or dinner
	Calories     int                `bson:"calories,omitempty" json:"calories,omitempty"`
}
