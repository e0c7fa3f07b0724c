package services

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// GenerateJWT generates a token with user ID and role
func GenerateJWT(secret, userID, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
