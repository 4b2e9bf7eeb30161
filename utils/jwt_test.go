package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
)

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestExtractIdentity(t *testing.T) {
	secret := []byte("s3cret")
	future := time.Now().Add(time.Hour).Unix()

	id, err := ExtractIdentity(sign(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{
		"sub": "auth0|42", "email": "jane@example.com", "name": "Jane", "exp": future,
	}), secret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.ExternalID != "auth0|42" || id.Email != "jane@example.com" || id.Name != "Jane" {
		t.Errorf("unexpected identity %+v", id)
	}

	cases := []struct {
		name   string
		token  string
		secret []byte
	}{
		{"no secret", sign(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{"sub": "x"}), nil},
		{"wrong secret", sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"sub": "x"}), secret},
		{"expired", sign(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{"sub": "x", "exp": time.Now().Add(-time.Minute).Unix()}), secret},
		{"missing sub", sign(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{"email": "a@b.c"}), secret},
		{"unsigned", sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{"sub": "x"}), secret},
		{"garbage", "not-a-token", secret},
	}
	for _, c := range cases {
		if _, err := ExtractIdentity(c.token, c.secret); err == nil {
			t.Errorf("%s: expected an error", c.name)
		}
	}

	if _, err := ExtractIdentity("x", nil); !errors.Is(err, ErrMissingSecret) {
		t.Errorf("expected ErrMissingSecret, got %v", err)
	}
}
