package utils

import (
	"errors"

	"github.com/golang-jwt/jwt"
)

// Identity is what we trust from a bearer token minted by the identity provider.
type Identity struct {
	ExternalID string
	Email      string
	Name       string
}

var (
	ErrMissingSecret = errors.New("jwt secret is not configured")
	ErrInvalidToken  = errors.New("invalid token")
)

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string, secret []byte) (*jwt.Token, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
}

// ExtractIdentity validates the token and reads the subject, email and name claims.
func ExtractIdentity(tokenString string, secret []byte) (*Identity, error) {
	token, err := ValidateToken(tokenString, secret)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}

	id := &Identity{ExternalID: sub}
	if email, ok := claims["email"].(string); ok {
		id.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		id.Name = name
	}
	return id, nil
}
