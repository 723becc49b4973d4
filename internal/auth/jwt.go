// internal/auth/jwt.go
//
// HS256 token issuance and verification.
//
// Context
// -------
// Authentication is deliberately small: one bootstrap credential pair from
// config buys a bearer token, and the token gates every /api route.  The
// core record operations neither know nor care who the caller is; the
// middleware in this package is the pre-check they rely on.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for tokens that parse but fail validation.
var ErrInvalidToken = errors.New("invalid token")

// DefaultTokenTTL applies when config leaves auth.token_ttl unset.
const DefaultTokenTTL = time.Hour

// Claims carries the registered claims plus the authenticated subject name.
type Claims struct {
	jwt.RegisteredClaims
	Subject string `json:"sub_name"`
}

// GenerateToken signs an HS256 token for subject, valid for ttl.
func GenerateToken(subject string, secret []byte, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		Subject: subject,
	})
	return token.SignedString(secret)
}

// SubjectFromToken verifies a token string and returns the subject it was
// issued to.  Expired, malformed, or mis-signed tokens return an error.
func SubjectFromToken(tokenString string, secret []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
