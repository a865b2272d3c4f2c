package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	pkgerrors "github.com/Terellreed1/smokers-club-sub000/pkg/errors"
)

type fakeVerifier struct {
	adminID uuid.UUID
	err     error
	token   string
}

func (f *fakeVerifier) Verify(_ context.Context, token string) (uuid.UUID, error) {
	f.token = token
	if f.err != nil {
		return uuid.Nil, f.err
	}
	return f.adminID, nil
}

func TestAdminAuthPassesVerifiedAdmin(t *testing.T) {
	adminID := uuid.New()
	verifier := &fakeVerifier{adminID: adminID}

	var captured uuid.UUID
	handler := AdminAuth(verifier, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = AdminIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/products", nil)
	req.Header.Set("Authorization", "Bearer some-token")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, adminID, captured)
	assert.Equal(t, "some-token", verifier.token)
}

func TestAdminAuthRejectsMissingHeader(t *testing.T) {
	handler := AdminAuth(&fakeVerifier{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/v1/products", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminAuthRejectsBadToken(t *testing.T) {
	verifier := &fakeVerifier{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")}
	handler := AdminAuth(verifier, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/products", nil)
	req.Header.Set("Authorization", "Bearer expired-token")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerTokenParsing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, bearerToken(req))

	req.Header.Set("Authorization", "Basic abc123")
	assert.Empty(t, bearerToken(req))

	req.Header.Set("Authorization", "bearer lower-case")
	assert.Equal(t, "lower-case", bearerToken(req))

	req.Header.Set("Authorization", "Bearer  padded ")
	assert.Equal(t, "padded", bearerToken(req))
}
