package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeLimiterStore struct {
	mu     sync.Mutex
	counts map[string]int64
}

func newFakeLimiterStore() *fakeLimiterStore {
	return &fakeLimiterStore{counts: make(map[string]int64)}
}

func (f *fakeLimiterStore) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[key]++
	return f.counts[key], nil
}

func postLogin(handler http.Handler, ip, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/auth/login", strings.NewReader(body))
	req.RemoteAddr = ip + ":50000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthRateLimitBlocksAfterIPLimit(t *testing.T) {
	store := newFakeLimiterStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 2, 0)
	handler := AuthRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	assert.Equal(t, http.StatusOK, postLogin(handler, "10.0.0.1", "{}").Code)
	assert.Equal(t, http.StatusOK, postLogin(handler, "10.0.0.1", "{}").Code)
	assert.Equal(t, http.StatusTooManyRequests, postLogin(handler, "10.0.0.1", "{}").Code)

	// other IPs keep their own budget
	assert.Equal(t, http.StatusOK, postLogin(handler, "10.0.0.2", "{}").Code)
}

func TestAuthRateLimitBlocksPerEmail(t *testing.T) {
	store := newFakeLimiterStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 1)
	handler := AuthRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	body := `{"email":"admin@smokersclub.example","password":"x"}`
	assert.Equal(t, http.StatusOK, postLogin(handler, "10.0.0.1", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, postLogin(handler, "10.0.0.2", body).Code)

	// the raw email must never appear in a redis key
	for key := range store.counts {
		assert.NotContains(t, key, "admin@smokersclub.example")
	}
}

func TestAuthRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", 0, 0, 0)
	handler := AuthRateLimit(policy, newFakeLimiterStore(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, postLogin(handler, "10.0.0.1", "{}").Code)
	}
}
