// Package auth holds the credential primitives of the dashboard: password
// hashing, signup input validation and signed session tokens.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/aqidash/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims binds a signed cookie to a server-side session.
type Claims struct {
	jwt.RegisteredClaims
	SessionID string
}

func GenerateToken(sessionID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		SessionID: sessionID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetSessionIDFromToken verifies the token signature and expiry and returns
// the session id it carries.
func GetSessionIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", err
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.SessionID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.SessionID, nil
}
