// Package jwt issues and validates the access/refresh token pair.
package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

const issuer = "shopno-backend"

// Claims carries the session projection inside an access token, so the
// auth middleware can build a Session without a user lookup.
type Claims struct {
	UserID      uint     `json:"user_id"`
	Username    string   `json:"username"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// RefreshClaims carries only the user and the token's own ID. TokenID
// keys the hashed row in refresh_tokens, which is what revocation checks.
type RefreshClaims struct {
	UserID  uint   `json:"user_id"`
	TokenID string `json:"token_id"`
	jwt.RegisteredClaims
}

func registered(lifetime time.Duration, subject string) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    issuer,
		Subject:   subject,
	}
}

func sign(claims jwt.Claims, secret string) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// GenerateAccessToken signs a short-lived access token.
func GenerateAccessToken(userID uint, username, name, role string, permissions []string, secret string, expiryMinutes int) (string, error) {
	return sign(Claims{
		UserID:           userID,
		Username:         username,
		Name:             name,
		Role:             role,
		Permissions:      permissions,
		RegisteredClaims: registered(time.Duration(expiryMinutes)*time.Minute, username),
	}, secret)
}

// GenerateRefreshToken signs a long-lived refresh token bound to tokenID.
func GenerateRefreshToken(userID uint, tokenID, secret string, expiryDays int) (string, error) {
	return sign(RefreshClaims{
		UserID:           userID,
		TokenID:          tokenID,
		RegisteredClaims: registered(time.Duration(expiryDays)*24*time.Hour, ""),
	}, secret)
}

// keyFunc rejects any signing method other than HMAC before handing the
// secret to the parser.
func keyFunc(secret string) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	}
}

func mapParseError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrTokenExpired
	}
	return ErrTokenInvalid
}

// ValidateAccessToken parses and verifies an access token.
func ValidateAccessToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, keyFunc(secret))
	if err != nil {
		return nil, mapParseError(err)
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrTokenInvalid
}

// ValidateRefreshToken parses and verifies a refresh token.
func ValidateRefreshToken(tokenString, secret string) (*RefreshClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &RefreshClaims{}, keyFunc(secret))
	if err != nil {
		return nil, mapParseError(err)
	}
	if claims, ok := token.Claims.(*RefreshClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrTokenInvalid
}

// GetExpiryTime returns the absolute expiry for a refresh token row.
func GetExpiryTime(days int) time.Time {
	return time.Now().Add(time.Duration(days) * 24 * time.Hour)
}
