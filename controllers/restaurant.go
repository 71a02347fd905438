package controllers

import (
	"encoding/json"
	"khudalagse/models"
	"khudalagse/utils"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// RestaurantController handles catalog requests
type RestaurantController struct {
	Restaurants *mongo.Collection
	MenuItems   *mongo.Collection
}

// NewRestaurantController creates a new RestaurantController
func NewRestaurantController(client *mongo.Client) *RestaurantController {
	db := client.Database(utils.DatabaseName)
	return &RestaurantController{
		Restaurants: db.Collection("restaurants"),
		MenuItems:   db.Collection("menu_items"),
	}
}

// GetRestaurants retrieves all restaurants
func (rc *RestaurantController) GetRestaurants(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := dbContext()
	defer cancel()

	cursor, err := rc.Restaurants.Find(ctx, bson.M{})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error fetching restaurants")
		return
	}
	defer cursor.Close(ctx)

	restaurants := []models.Restaurant{}
	if err := cursor.All(ctx, &restaurants); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error reading restaurants")
		return
	}

	utils.WriteData(w, http.StatusOK, restaurants)
}

// GetRestaurantByID retrieves a single restaurant by ID
func (rc *RestaurantController) GetRestaurantByID(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid restaurant ID")
		return
	}

	ctx, cancel := dbContext()
	defer cancel()

	var restaurant models.Restaurant
	err = rc.Restaurants.FindOne(ctx, bson.M{"_id": id}).Decode(&restaurant)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "Restaurant not found")
		return
	}

	utils.WriteData(w, http.StatusOK, restaurant)
}

// GetMenu retrieves the menu items of a restaurant
func (rc *RestaurantController) GetMenu(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid restaurant ID")
		return
	}

	ctx, cancel := dbContext()
	defer cancel()

	cursor, err := rc.MenuItems.Find(ctx, bson.M{"restaurant_id": id})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error fetching menu")
		return
	}
	defer cursor.Close(ctx)

	items := []models.MenuItem{}
	if err := cursor.All(ctx, &items); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error reading menu")
		return
	}

	utils.WriteData(w, http.StatusOK, items)
}

// CreateMenuItem handles adding a new menu item (Admin only)
func (rc *RestaurantController) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	restaurantID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid restaurant ID")
		return
	}

	var item models.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if item.Name == "" || item.Price <= 0 {
		utils.WriteError(w, http.StatusBadRequest, "A name and a positive price are required")
		return
	}
	if item.MealType != "" && !models.IsValidMealSlot(item.MealType) {
		utils.WriteError(w, http.StatusBadRequest, "Invalid meal type")
		return
	}
	item.RestaurantID = restaurantID

	ctx, cancel := dbContext()
	defer cancel()

	result, err := rc.MenuItems.InsertOne(ctx, item)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error creating menu item")
		return
	}

	utils.WriteData(w, http.StatusCreated, map[string]interface{}{"id": result.InsertedID})
}

// UpdateMenuItem handles updating a menu item (Admin only)
func (rc *RestaurantController) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	itemID, err := primitive.ObjectIDFromHex(params["itemId"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid menu item ID")
		return
	}

	var item models.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if item.MealType != "" && !models.IsValidMealSlot(item.MealType) {
		utils.WriteError(w, http.StatusBadRequest, "Invalid meal type")
		return
	}

	update := bson.M{"$set": bson.M{
		"name":        item.Name,
		"description": item.Description,
		"price":       item.Price,
		"image_url":   item.ImageURL,
		"meal_type":   item.MealType,
		"calories":    item.Calories,
	}}

	ctx, cancel := dbContext()
	defer cancel()

	result, err := rc.MenuItems.UpdateOne(ctx, bson.M{"_id": itemID}, update)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error updating menu item")
		return
	}
	if result.MatchedCount == 0 {
		utils.WriteError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Menu item updated successfully"})
}

// DeleteMenuItem handles deleting a menu item (Admin only)
func (rc *RestaurantController) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	itemID, err := primitive.ObjectIDFromHex(params["itemId"])
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid menu item ID")
		return
	}

	ctx, cancel := dbContext()
	defer cancel()

	result, err := rc.MenuItems.DeleteOne(ctx, bson.M{"_id": itemID})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error deleting menu item")
		return
	}
	if result.DeletedCount == 0 {
		utils.WriteError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Menu item deleted successfully"})
}
