package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Terellreed1/smokers-club-sub000/api/responses"
	"github.com/Terellreed1/smokers-club-sub000/api/validators"
	referralsvc "github.com/Terellreed1/smokers-club-sub000/internal/referrals"
	pkgerrors "github.com/Terellreed1/smokers-club-sub000/pkg/errors"
	"github.com/Terellreed1/smokers-club-sub000/pkg/logger"
)

type referralCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// CreateReferralCode returns the caller's referral code, minting one on
// first request. Asking again with the same email returns the same code.
func CreateReferralCode(svc *referralsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload referralCodeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		code, err := svc.GetOrCreateCode(r.Context(), payload.Email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, code)
	}
}

type referralSignupRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RecordReferralSignup credits a signup to the referral code in the path.
func RecordReferralSignup(svc *referralsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code, err := referralCodeParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload referralSignupRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RecordSignup(r.Context(), code, payload.Email); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"status": "recorded"})
	}
}

// GetReferralStats reports how many signups the code in the path has earned.
func GetReferralStats(svc *referralsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code, err := referralCodeParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stats, err := svc.Stats(r.Context(), code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

func referralCodeParam(r *http.Request) (string, error) {
	code := strings.TrimSpace(chi.URLParam(r, "code"))
	if code == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "referral code is required")
	}
	return code, nil
}
