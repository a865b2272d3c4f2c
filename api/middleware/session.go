package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Terellreed1/smokers-club-sub000/pkg/config"
	"github.com/Terellreed1/smokers-club-sub000/pkg/logger"
)

type sessionContextKey struct{}

// ShopperSession assigns every visitor an opaque session cookie. The cart
// registry keys carts by this id, so the cookie is all that ties a shopper
// to their cart.
func ShopperSession(cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(cfg.CookieName); err == nil {
				if _, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
					sessionID = cookie.Value
				}
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    sessionID,
					Path:     "/",
					Expires:  time.Now().Add(cfg.TTL),
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithSessionID stamps a shopper session id onto the context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sessionID)
}

// SessionIDFromContext returns the shopper session id, or "" when the
// middleware did not run.
func SessionIDFromContext(ctx context.Context) string {
	if value, ok := ctx.Value(sessionContextKey{}).(string); ok {
		return value
	}
	return ""
}
