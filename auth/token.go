package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

var (
	// ErrInvalidToken covers bad signatures, malformed payloads and
	// missing claims.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired means the token was well formed but its expiry
	// has passed. There is no refresh flow; the client must log in again.
	ErrTokenExpired = errors.New("token expired")
)

// Issuer mints and validates bearer tokens. The signing secret and TTL are
// fixed at construction; validation is pure and never touches storage.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue signs an HS256 token carrying the user id as the subject claim and
// an absolute expiry of now+TTL.
func (i *Issuer) Issue(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(i.ttl).Unix(),
	})
	return token.SignedString(i.secret)
}

// Validate verifies the signature and expiry and returns the embedded user
// id. The id is asserted by the token, not proven to exist; operations that
// need an existing user must check for themselves.
func (i *Issuer) Validate(tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrInvalidToken
	}
	if _, ok := claims["exp"]; !ok {
		return "", ErrInvalidToken
	}
	return sub, nil
}
