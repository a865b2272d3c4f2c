package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/Terellreed1/smokers-club-sub000/api/middleware"
	"github.com/Terellreed1/smokers-club-sub000/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

func AdminPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "admin", "status": "ok"}
		if adminID := middleware.AdminIDFromContext(r.Context()); adminID != uuid.Nil {
			payload["admin_id"] = adminID.String()
		}
		responses.WriteSuccess(w, payload)
	}
}
