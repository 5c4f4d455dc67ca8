package rest

import (
	"net/http"

	"voyager-be/internal/auth"
	"voyager-be/internal/authz"
	"voyager-be/internal/user"

	"github.com/go-chi/chi/v5"
)

// UserRouter registers the user directory. Every route here is admin-only
// except the reads, which managers share.
func UserRouter(r chi.Router, h *Handler) {
	r.Get("/", h.ListUsers)
	r.Post("/", h.CreateUser)
	r.Get("/{id}", h.GetUser)
	r.Patch("/{id}", h.UpdateUser)
	r.Delete("/{id}", h.DeleteUser)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.Users.List(r.Context(), auth.PrincipalFrom(r.Context()))
	if err != nil {
		h.failAdmin(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, authz.ManageUsers, true) {
		return
	}

	var in user.CreateInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	u, err := h.svc.Users.Create(r.Context(), auth.PrincipalFrom(r.Context()), in)
	if err != nil {
		h.failAdmin(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, authz.ListUsers, true) {
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	u, err := h.svc.Users.Get(r.Context(), auth.PrincipalFrom(r.Context()), id)
	if err != nil {
		h.failAdmin(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, authz.ManageUsers, true) {
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var in user.UpdateInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	u, err := h.svc.Users.Update(r.Context(), auth.PrincipalFrom(r.Context()), id, in)
	if err != nil {
		h.failAdmin(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, authz.DeleteUser, true) {
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.svc.Users.Delete(r.Context(), auth.PrincipalFrom(r.Context()), id); err != nil {
		h.failAdmin(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
