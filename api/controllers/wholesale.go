package controllers

import (
	"net/http"

	"github.com/Terellreed1/smokers-club-sub000/api/responses"
	"github.com/Terellreed1/smokers-club-sub000/api/validators"
	wholesalesvc "github.com/Terellreed1/smokers-club-sub000/internal/wholesale"
	"github.com/Terellreed1/smokers-club-sub000/pkg/logger"
	"github.com/Terellreed1/smokers-club-sub000/pkg/pagination"
)

// SubmitWholesaleInquiry accepts a wholesale contact form submission.
func SubmitWholesaleInquiry(svc *wholesalesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload wholesalesvc.SubmitInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		inquiry, err := svc.Submit(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, inquiry)
	}
}

// AdminListWholesaleInquiries serves the inquiry inbox, newest first.
func AdminListWholesaleInquiries(svc *wholesalesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.List(r.Context(), pagination.FromQuery(r.URL.Query()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
