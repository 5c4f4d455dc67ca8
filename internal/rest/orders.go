package rest

import (
	"net/http"

	"voyager-be/internal/auth"
	"voyager-be/internal/authz"
	"voyager-be/internal/order"

	"github.com/go-chi/chi/v5"
)

type statusRequest struct {
	Status string `json:"status"`
}

func OrderRouter(r chi.Router, h *Handler) {
	r.Get("/", h.ListOrders)
	r.Post("/", h.CreateOrder)
	r.Get("/{id}", h.GetOrder)
	r.Patch("/{id}", h.AdvanceOrder)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := order.ListQuery{
		Type:   r.URL.Query().Get("type"),
		Status: r.URL.Query().Get("status"),
	}

	orders, err := h.svc.Orders.List(r.Context(), auth.PrincipalFrom(r.Context()), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, authz.CreateOrder, false) {
		return
	}

	var in order.CreateInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	o, err := h.svc.Orders.Create(r.Context(), auth.PrincipalFrom(r.Context()), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	o, err := h.svc.Orders.Get(r.Context(), auth.PrincipalFrom(r.Context()), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) AdvanceOrder(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, authz.AdvanceOrderStatus, false) {
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

	o, err := h.svc.Orders.Advance(r.Context(), auth.PrincipalFrom(r.Context()), id, req.Status)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}
