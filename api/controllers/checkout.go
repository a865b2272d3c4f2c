package controllers

import (
	"net/http"

	"github.com/Terellreed1/smokers-club-sub000/api/middleware"
	"github.com/Terellreed1/smokers-club-sub000/api/responses"
	"github.com/Terellreed1/smokers-club-sub000/internal/cart"
	checkoutsvc "github.com/Terellreed1/smokers-club-sub000/internal/checkout"
	pkgerrors "github.com/Terellreed1/smokers-club-sub000/pkg/errors"
	"github.com/Terellreed1/smokers-club-sub000/pkg/logger"
)

type checkoutLineResponse struct {
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

type checkoutResponse struct {
	RedirectURL string                 `json:"redirect_url"`
	CancelURL   string                 `json:"cancel_url,omitempty"`
	Lines       []checkoutLineResponse `json:"lines"`
	Total       string                 `json:"total"`
}

// BeginCheckout snapshots the cart and returns the hosted payment page URL.
func BeginCheckout(svc *checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session context missing"))
			return
		}

		result, err := svc.Begin(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines := make([]checkoutLineResponse, 0, len(result.Lines))
		for _, line := range result.Lines {
			lines = append(lines, checkoutLineResponse{
				Name:      line.Name,
				UnitPrice: cart.FormatPrice(line.UnitPrice),
				Quantity:  line.Quantity,
			})
		}

		responses.WriteSuccess(w, checkoutResponse{
			RedirectURL: result.RedirectURL,
			CancelURL:   result.CancelURL,
			Lines:       lines,
			Total:       cart.FormatPrice(result.Total),
		})
	}
}

// CheckoutConfirmation is where the payment processor sends shoppers after
// a completed payment. Landing here clears the cart.
func CheckoutConfirmation(svc *checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session context missing"))
			return
		}

		svc.Confirm(r.Context(), sessionID)
		responses.WriteSuccess(w, map[string]string{"status": "confirmed"})
	}
}
