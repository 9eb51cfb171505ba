package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront/logger"
	"storefront/models"
	"storefront/utils"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok")) //nolint:errcheck
})

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	msg, _ := body["error"].(string)
	return msg
}

type tokenAuthorizer struct {
	tokens *utils.TokenManager
	seen   []string
}

func (a *tokenAuthorizer) Authorize(token string) (*utils.Claims, error) {
	a.seen = append(a.seen, token)
	return a.tokens.ParseJWT(token)
}

func TestAuthAndAdminMiddleware(t *testing.T) {
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	adminToken, err := tokens.GenerateJWT("owner@example.com", models.RoleAdmin)
	require.NoError(t, err)
	userToken, err := tokens.GenerateJWT("staff@example.com", models.RoleUser)
	require.NoError(t, err)

	auth := &tokenAuthorizer{tokens: tokens}
	handler := AuthMiddleware(auth)(AdminMiddleware(okHandler))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantError  string
	}{
		{"missing header", "", http.StatusUnauthorized, "Authorization header missing"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "Invalid Authorization header format"},
		{"bad token", "Bearer nope", http.StatusUnauthorized, "Invalid token"},
		{"not admin", "Bearer " + userToken, http.StatusForbidden, "Forbidden: Admins only"},
		{"admin", "Bearer " + adminToken, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, errorOf(t, rec))
			}
		})
	}
	// the header checks reject before any token is parsed
	assert.Equal(t, []string{"nope", userToken, adminToken}, auth.seen)
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS(DefaultCORSOptions())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight reached the handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/admin/orders", nil)
	req.Header.Set("Origin", "https://shop.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestCORSRestrictedOrigins(t *testing.T) {
	handler := CORS(CORSOptions{AllowedOrigins: []string{"https://shop.example"}, AllowedMethods: []string{"GET"}})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))

	req.Header.Set("Origin", "https://shop.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "https://shop.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.RequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEqual(t, "unknown", seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
}

func TestRecoveryAndLogger(t *testing.T) {
	handler := RequestLogger(Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", errorOf(t, rec))
}

func TestRateLimiter(t *testing.T) {
	rl := PerMinute(2)
	handler := rl.Middleware(okHandler)

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = ip + ":5555"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2"))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", ClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", ClientIP(req))
}

func TestMetrics(t *testing.T) {
	m := NewMetrics("storefront")
	router := mux.NewRouter()
	router.Use(m.Middleware)
	router.Handle("/api/products/{id}", okHandler).Methods(http.MethodGet)
	router.Handle("/metrics", m.Handler())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products/7", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `storefront_http_requests_total{method="GET",route="/api/products/{id}",status="200"} 1`), body)
	assert.Contains(t, body, "storefront_orders_placed_total")
}
