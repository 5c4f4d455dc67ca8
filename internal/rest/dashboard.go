package rest

import (
	"net/http"

	"voyager-be/internal/auth"

	"github.com/go-chi/chi/v5"
)

func DashboardRouter(r chi.Router, h *Handler) {
	r.Get("/summary", h.DashboardSummary)
}

func (h *Handler) DashboardSummary(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Dashboard.Summary(r.Context(), auth.PrincipalFrom(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}
