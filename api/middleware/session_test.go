package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Terellreed1/smokers-club-sub000/pkg/config"
)

func sessionConfig() config.SessionConfig {
	return config.SessionConfig{CookieName: "sc_session", TTL: 24 * time.Hour}
}

func TestShopperSessionAssignsCookie(t *testing.T) {
	var captured string
	handler := ShopperSession(sessionConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = SessionIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	_, err := uuid.Parse(captured)
	require.NoError(t, err, "session id should be a uuid")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sc_session", cookies[0].Name)
	assert.Equal(t, captured, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestShopperSessionReusesValidCookie(t *testing.T) {
	sessionID := uuid.NewString()
	var captured string
	handler := ShopperSession(sessionConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.AddCookie(&http.Cookie{Name: "sc_session", Value: sessionID})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, sessionID, captured)
	assert.Empty(t, rec.Result().Cookies(), "existing session should not be reissued")
}

func TestShopperSessionReplacesGarbageCookie(t *testing.T) {
	var captured string
	handler := ShopperSession(sessionConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.AddCookie(&http.Cookie{Name: "sc_session", Value: "not-a-uuid"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	_, err := uuid.Parse(captured)
	require.NoError(t, err)
	assert.NotEqual(t, "not-a-uuid", captured)
	require.Len(t, rec.Result().Cookies(), 1)
}

func TestSessionIDFromContextMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, SessionIDFromContext(req.Context()))
}
