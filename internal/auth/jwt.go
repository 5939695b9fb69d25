package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers malformed tokens, bad signatures, wrong signing
// methods, and expired tokens alike.
var ErrInvalidToken = errors.New("invalid token")

const tokenTTL = 24 * time.Hour

// Claims is the decoded identity carried by a bearer token.
type Claims struct {
	Username string
	Role     string
}

// GenerateToken issues an HS256 token with subject and role claims,
// expiring 24 hours from issuance.
func GenerateToken(secret, username, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  username,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies signature and expiry and returns the claims. There
// is no revocation list: a validly-signed, unexpired token is accepted.
func ParseToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	username, ok := mapClaims["sub"].(string)
	if !ok || username == "" {
		return nil, ErrInvalidToken
	}
	role, _ := mapClaims["role"].(string)

	return &Claims{Username: username, Role: role}, nil
}
