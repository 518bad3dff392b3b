package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/movieshelf/backend/internal/models"
)

// Token validation failures. A token is either valid or it is not; these
// only distinguish why for logging and error messages, both map to 401.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
)

// TokenGenerator handles JWT token generation and validation
type TokenGenerator struct {
	secret string
	expiry time.Duration
}

// NewTokenGenerator creates a new token generator
func NewTokenGenerator(secret string, expiry time.Duration) *TokenGenerator {
	return &TokenGenerator{
		secret: secret,
		expiry: expiry,
	}
}

// Generate creates a signed access token carrying the username and a
// snapshot of the role at issuance time. The role is not re-read from the
// store on later requests, so role changes apply only after expiry.
func (tg *TokenGenerator) Generate(username string, role models.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  username,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(tg.expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(tg.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// Validate checks the signature and expiry of a token and returns the
// embedded username and role. Nothing else is validated.
func (tg *TokenGenerator) Validate(tokenString string) (string, models.Role, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tg.secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrTokenExpired
		}
		return "", "", fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}

	if !token.Valid {
		return "", "", ErrTokenMalformed
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fmt.Errorf("%w: invalid claims", ErrTokenMalformed)
	}

	username, ok := claims["sub"].(string)
	if !ok || username == "" {
		return "", "", fmt.Errorf("%w: sub claim missing", ErrTokenMalformed)
	}

	roleStr, ok := claims["role"].(string)
	if !ok || roleStr == "" {
		return "", "", fmt.Errorf("%w: role claim missing", ErrTokenMalformed)
	}

	return username, models.Role(roleStr), nil
}
