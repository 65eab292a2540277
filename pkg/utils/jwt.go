package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims mirrors the identity collaborator contract: who the caller is, what
// they may do, and which brand they belong to.
type Claims struct {
	Email   string `json:"email"`
	Role    string `json:"role"`
	BrandID string `json:"brand_id"`
	jwt.RegisteredClaims
}

func CreateToken(email, role, brandID string, secret []byte, ttl time.Duration) (string, error) {
	claims := &Claims{
		Email:   email,
		Role:    role,
		BrandID: brandID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ValidateToken(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}
