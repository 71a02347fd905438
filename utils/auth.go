package utils

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

// JwtKey signs and verifies every token. main overwrites it from JWT_SECRET
// before the server starts serving.
var JwtKey = []byte("change-me")

// tokenTTL bounds both login tokens and email verification links
const tokenTTL = 24 * time.Hour

// Claims carry the identity the auth middleware attaches to each request.
// Role is only a routing gate here; mutations validate roles against the
// policy tables in the models package.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.StandardClaims
}

// GenerateJWT mints an HS256 token for the given identity
func GenerateJWT(email, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: email,
		Role:  role,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(tokenTTL).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(JwtKey)
}
