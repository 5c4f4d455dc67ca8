package rest

import (
	"net/http"

	"voyager-be/internal/auth"
	"voyager-be/internal/authz"
	"voyager-be/internal/booking"

	"github.com/go-chi/chi/v5"
)

// BookingRouter registers booking routes. Status changes are only exposed
// when transitions are enabled.
func BookingRouter(r chi.Router, h *Handler, transitions bool) {
	r.Get("/", h.ListBookings)
	r.Post("/", h.CreateBooking)
	r.Get("/{id}", h.GetBooking)
	if transitions {
		r.Patch("/{id}", h.UpdateBookingStatus)
	}
}

func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	q := booking.ListQuery{
		Service: r.URL.Query().Get("service"),
		Status:  r.URL.Query().Get("status"),
	}

	bookings, err := h.svc.Bookings.List(r.Context(), auth.PrincipalFrom(r.Context()), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, authz.CreateBooking, false) {
		return
	}

	var in booking.CreateInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	b, err := h.svc.Bookings.Create(r.Context(), auth.PrincipalFrom(r.Context()), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	b, err := h.svc.Bookings.Get(r.Context(), auth.PrincipalFrom(r.Context()), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, authz.AdvanceBookingStatus, false) {
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	b, err := h.svc.Bookings.UpdateStatus(r.Context(), auth.PrincipalFrom(r.Context()), id, req.Status)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}
