package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/Terellreed1/smokers-club-sub000/api/middleware"
	"github.com/Terellreed1/smokers-club-sub000/api/responses"
	"github.com/Terellreed1/smokers-club-sub000/api/validators"
	adminauthsvc "github.com/Terellreed1/smokers-club-sub000/internal/adminauth"
	pkgerrors "github.com/Terellreed1/smokers-club-sub000/pkg/errors"
	"github.com/Terellreed1/smokers-club-sub000/pkg/logger"
)

// AdminLogin exchanges credentials for a session token.
func AdminLogin(svc *adminauthsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload adminauthsvc.LoginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Login(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, session)
	}
}

// AdminLogout revokes the bearer token. Revoking an already-dead token
// still succeeds.
func AdminLogout(svc *adminauthsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middleware.BearerToken(r)
		if err := svc.Logout(r.Context(), token); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// AdminLogoutAll revokes every session belonging to the authenticated
// admin, the one making the request included.
func AdminLogoutAll(svc *adminauthsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		adminID := middleware.AdminIDFromContext(r.Context())
		if adminID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing admin context"))
			return
		}

		if err := svc.LogoutAll(r.Context(), adminID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "all_sessions_revoked"})
	}
}
