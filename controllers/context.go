package controllers

import (
	"context"
	"errors"
	"khudalagse/middleware"
	"khudalagse/models"
	"khudalagse/utils"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var errNoClaims = errors.New("no claims in request context")

// claimsFrom extracts the authenticated JWT claims from the request context
func claimsFrom(r *http.Request) (*utils.Claims, error) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		return nil, errNoClaims
	}
	return claims, nil
}

// currentUser resolves the authenticated user record from its token claims
func currentUser(ctx context.Context, users *mongo.Collection, r *http.Request) (models.User, error) {
	var user models.User
	claims, err := claimsFrom(r)
	if err != nil {
		return user, err
	}
	err = users.FindOne(ctx, bson.M{"email": claims.Email}).Decode(&user)
	return user, err
}

// dbContext returns the per-request database context used by all handlers
func dbContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}
