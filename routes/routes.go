// routes/routes.go
package routes

import (
	"khudalagse/controllers"
	"khudalagse/middleware"

	"github.com/gorilla/mux"
)

// Controllers groups everything the route table needs
type Controllers struct {
	User         *controllers.UserController
	Restaurant   *controllers.RestaurantController
	Order        *controllers.OrderController
	Subscription *controllers.SubscriptionController
	Calendar     *controllers.CalendarController
	Payment      *controllers.PaymentController
	Wallet       *controllers.WalletController
	Admin        *controllers.AdminController
}

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, c Controllers) {
	// Public routes
	router.HandleFunc("/register", c.User.Register).Methods("POST")
	router.HandleFunc("/login", c.User.Login).Methods("POST")
	router.HandleFunc("/verify", c.User.VerifyEmail).Methods("GET")

	// Public catalog (registered before the authenticated /api subrouter
	// so browsing works without a token)
	router.HandleFunc("/api/restaurants", c.Restaurant.GetRestaurants).Methods("GET")
	router.HandleFunc("/api/restaurants/{id}", c.Restaurant.GetRestaurantByID).Methods("GET")
	router.HandleFunc("/api/restaurants/{id}/menu", c.Restaurant.GetMenu).Methods("GET")

	// Authenticated routes
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.AuthMiddleware)
	api.HandleFunc("/profile", c.User.GetProfile).Methods("GET")
	api.HandleFunc("/subscriptions", c.Subscription.GetSubscriptions).Methods("GET")
	api.HandleFunc("/orders", c.Order.GetOrders).Methods("GET")
	api.HandleFunc("/calendar", c.Calendar.GetWeek).Methods("GET")
	api.HandleFunc("/wallet/recharge", c.Wallet.Recharge).Methods("POST")
	api.HandleFunc("/payment/create-checkout-session", c.Payment.CreateCheckoutSession).Methods("POST")
	api.HandleFunc("/payment/verify", c.Payment.VerifyPayment).Methods("POST")

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminMiddleware)
	admin.HandleFunc("/users", c.Admin.GetUsers).Methods("GET")
	admin.HandleFunc("/users/{id}", c.Admin.UpdateUser).Methods("PATCH")
	admin.HandleFunc("/orders", c.Admin.GetOrders).Methods("GET")
	admin.HandleFunc("/orders/{id}/status", c.Admin.UpdateOrderStatus).Methods("PATCH")
	admin.HandleFunc("/subscriptions", c.Admin.GetSubscriptions).Methods("GET")
	admin.HandleFunc("/subscriptions/{id}", c.Admin.UpdateSubscription).Methods("PATCH")
	admin.HandleFunc("/restaurants/{id}/menu", c.Restaurant.CreateMenuItem).Methods("POST")
	admin.HandleFunc("/restaurants/{id}/menu/{itemId}", c.Restaurant.UpdateMenuItem).Methods("PUT")
	admin.HandleFunc("/restaurants/{id}/menu/{itemId}", c.Restaurant.DeleteMenuItem).Methods("DELETE")
}
