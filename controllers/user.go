package controllers

import (
	"encoding/json"
	"khudalagse/models"
	"khudalagse/utils"
	"net/http"

	"github.com/dgrijalva/jwt-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// UserController handles registration, login and profile requests
type UserController struct {
	Collection   *mongo.Collection
	EmailService *utils.EmailService
}

// NewUserController creates a new UserController with EmailService
func NewUserController(client *mongo.Client, emailService *utils.EmailService) *UserController {
	collection := client.Database(utils.DatabaseName).Collection("users")
	return &UserController{
		Collection:   collection,
		EmailService: emailService,
	}
}

// Register handles user registration
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var user models.User
	err := json.NewDecoder(r.Body).Decode(&user)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	// Check if user already exists
	ctx, cancel := dbContext()
	defer cancel()
	count, err := uc.Collection.CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if count > 0 {
		utils.WriteError(w, http.StatusBadRequest, "User already exists")
		return
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error hashing password")
		return
	}
	user.Password = string(hashedPassword)
	user.Role = models.RoleCustomer // Default role
	user.IsActive = true
	user.IsVerified = false
	user.WalletBalance = 0

	// Generate verification token
	verificationToken, err := utils.GenerateJWT(user.Email, user.Role)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error generating verification token")
		return
	}
	user.VerificationToken = verificationToken

	// Insert the user into the database
	_, err = uc.Collection.InsertOne(ctx, user)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error creating user")
		return
	}

	// Send verification email
	err = uc.EmailService.SendVerificationEmail(user.Email, verificationToken)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error sending verification email")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]string{
		"message": "User registered successfully. Please check your email to verify your account.",
	})
}

// VerifyEmail handles email verification
func (uc *UserController) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		utils.WriteError(w, http.StatusBadRequest, "Verification token missing")
		return
	}

	claims := &utils.Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return utils.JwtKey, nil
	})

	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid token")
		return
	}

	// Find the user with the verification token
	ctx, cancel := dbContext()
	defer cancel()
	var user models.User
	err = uc.Collection.FindOne(ctx, bson.M{"verification_token": token}).Decode(&user)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "User not found or already verified")
		return
	}

	// Update the user's verification status
	_, err = uc.Collection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set": bson.M{
			"is_verified":        true,
			"verification_token": "",
		},
	})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error updating user verification status")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Email verified successfully. You can now log in.",
	})
}

// Login handles user authentication
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	err := json.NewDecoder(r.Body).Decode(&creds)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	// Find the user in the database
	ctx, cancel := dbContext()
	defer cancel()
	var user models.User
	err = uc.Collection.FindOne(ctx, bson.M{"email": creds.Email}).Decode(&user)
	if err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "User not found")
		return
	}

	if !user.IsVerified {
		utils.WriteError(w, http.StatusUnauthorized, "Email not verified")
		return
	}
	if !user.IsActive {
		utils.WriteError(w, http.StatusUnauthorized, "Account is deactivated")
		return
	}

	// Compare the hashed password
	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password))
	if err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	// Generate JWT token
	token, err := utils.GenerateJWT(user.Email, user.Role)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}

// GetProfile retrieves the authenticated user's profile
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := dbContext()
	defer cancel()

	user, err := currentUser(ctx, uc.Collection, r)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "User not found")
		return
	}

	user.Password = ""
	user.VerificationToken = ""
	utils.WriteData(w, http.StatusOK, user)
}
