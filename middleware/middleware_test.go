package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medibook/models"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

var testSecret = []byte("test-secret")

type stubResolver struct {
	err  error
	seen []string
}

func (s *stubResolver) ResolveIdentity(_ context.Context, id *utils.Identity) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.seen = append(s.seen, id.ExternalID)
	return &models.User{ID: "user-" + id.ExternalID, Email: id.Email, Role: models.RolePatient}, nil
}

func signToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func newAuthRouter(r IdentityResolver, mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	chain := append([]gin.HandlerFunc{JWTAuthMiddleware(testSecret, r)}, mw...)
	chain = append(chain, func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUser(c).ID)
	})
	router.GET("/me", chain...)
	return router
}

func TestJWTAuthMiddleware(t *testing.T) {
	valid := signToken(t, testSecret, jwt.MapClaims{"sub": "abc", "email": "a@b.c", "exp": time.Now().Add(time.Hour).Unix()})
	cases := []struct {
		name     string
		header   string
		resolver *stubResolver
		status   int
		body     string
	}{
		{"valid token", "Bearer " + valid, &stubResolver{}, http.StatusOK, "user-abc"},
		{"missing header", "", &stubResolver{}, http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic " + valid, &stubResolver{}, http.StatusUnauthorized, ""},
		{"wrong secret", "Bearer " + signToken(t, []byte("other"), jwt.MapClaims{"sub": "abc"}), &stubResolver{}, http.StatusUnauthorized, ""},
		{"expired", "Bearer " + signToken(t, testSecret, jwt.MapClaims{"sub": "abc", "exp": time.Now().Add(-time.Hour).Unix()}), &stubResolver{}, http.StatusUnauthorized, ""},
		{"no subject", "Bearer " + signToken(t, testSecret, jwt.MapClaims{"email": "a@b.c"}), &stubResolver{}, http.StatusUnauthorized, ""},
		{"resolver failure", "Bearer " + valid, &stubResolver{err: errors.New("db down")}, http.StatusInternalServerError, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			router := newAuthRouter(c.resolver)
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if c.header != "" {
				req.Header.Set("Authorization", c.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != c.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, c.status, w.Body.String())
			}
			if c.body != "" && w.Body.String() != c.body {
				t.Errorf("body = %q, want %q", w.Body.String(), c.body)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{"sub": "abc"})
	cases := []struct {
		roles  []models.Role
		status int
	}{
		{[]models.Role{models.RolePatient}, http.StatusOK},
		{[]models.Role{models.RoleDoctor, models.RolePatient}, http.StatusOK},
		{[]models.Role{models.RoleAdmin}, http.StatusForbidden},
	}
	for _, c := range cases {
		router := newAuthRouter(&stubResolver{}, RequireRole(c.roles...))
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != c.status {
			t.Errorf("roles %v: status = %d, want %d", c.roles, w.Code, c.status)
		}
	}
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(3)
	router := gin.New()
	router.Use(limiter.Middleware())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}
	for i := 0; i < 3; i++ {
		if code := hit("1.1.1.1"); code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, code)
		}
	}
	if code := hit("1.1.1.1"); code != http.StatusTooManyRequests {
		t.Errorf("expected 429 after the burst, got %d", code)
	}
	if code := hit("2.2.2.2"); code != http.StatusOK {
		t.Errorf("other clients must not be limited, got %d", code)
	}
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	limiter := NewRateLimiter(1)
	now := time.Now()
	limiter.now = func() time.Time { return now }
	limiter.getLimiter("1.1.1.1")

	now = now.Add(limiterIdleTTL + time.Second)
	limiter.getLimiter("2.2.2.2")
	if _, ok := limiter.visitors["1.1.1.1"]; ok {
		t.Error("idle visitor should have been evicted")
	}
}
