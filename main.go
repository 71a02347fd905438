// main.go
package main

import (
	"context"
	"fmt"
	"khudalagse/controllers"
	"khudalagse/routes"
	"khudalagse/utils"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/stripe/stripe-go/v81"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	// Set the JWT secret key and the Stripe API key
	utils.JwtKey = []byte(os.Getenv("JWT_SECRET"))
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	// Initialize EmailService
	emailService := utils.NewEmailService()

	// Connect to MongoDB
	client := utils.ConnectDB()
	defer func() {
		if err = client.Disconnect(context.TODO()); err != nil {
			log.Fatal(err)
		}
	}()

	// Initialize controllers
	c := routes.Controllers{
		User:         controllers.NewUserController(client, emailService),
		Restaurant:   controllers.NewRestaurantController(client),
		Order:        controllers.NewOrderController(client),
		Subscription: controllers.NewSubscriptionController(client),
		Calendar:     controllers.NewCalendarController(client),
		Payment:      controllers.NewPaymentController(client, emailService),
		Wallet:       controllers.NewWalletController(client),
		Admin:        controllers.NewAdminController(client),
	}

	// Set up the router and register routes
	router := mux.NewRouter()
	routes.RegisterRoutes(router, c)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	fmt.Printf("Server is running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
