package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Terellreed1/smokers-club-sub000/api/responses"
	pkgerrors "github.com/Terellreed1/smokers-club-sub000/pkg/errors"
	"github.com/Terellreed1/smokers-club-sub000/pkg/logger"
)

type adminContextKey struct{}

type sessionVerifier interface {
	Verify(ctx context.Context, token string) (uuid.UUID, error)
}

// AdminAuth guards the admin surface with opaque bearer tokens backed by
// the admin_sessions table.
func AdminAuth(verifier sessionVerifier, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token := bearerToken(r)
			if token == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing bearer token"))
				return
			}

			adminID, err := verifier.Verify(ctx, token)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}

			ctx = context.WithValue(ctx, adminContextKey{}, adminID)
			if logg != nil {
				ctx = logg.WithField(ctx, "admin_id", adminID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminIDFromContext returns the authenticated admin's id, or uuid.Nil.
func AdminIDFromContext(ctx context.Context) uuid.UUID {
	if value, ok := ctx.Value(adminContextKey{}).(uuid.UUID); ok {
		return value
	}
	return uuid.Nil
}

// BearerToken extracts the raw token from the Authorization header.
func BearerToken(r *http.Request) string {
	return bearerToken(r)
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
