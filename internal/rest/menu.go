package rest

import (
	"net/http"

	"voyager-be/internal/auth"
	"voyager-be/internal/authz"
	"voyager-be/internal/menu"

	"github.com/go-chi/chi/v5"
)

func MenuRouter(r chi.Router, h *Handler) {
	r.Get("/", h.ListMenu)
	r.Get("/{id}", h.GetMenuItem)
	r.Post("/", h.CreateMenuItem)
	r.Put("/{id}", h.UpdateMenuItem)
	r.Delete("/{id}", h.DeleteMenuItem)
}

func (h *Handler) ListMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Menu.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	it, err := h.svc.Menu.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, authz.ManageCatalog, true) {
		return
	}

	var in menu.CreateInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	it, err := h.svc.Menu.Create(r.Context(), auth.PrincipalFrom(r.Context()), in)
	if err != nil {
		h.failAdmin(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

func (h *Handler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, authz.ManageCatalog, true) {
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var in menu.UpdateInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	it, err := h.svc.Menu.Update(r.Context(), auth.PrincipalFrom(r.Context()), id, in)
	if err != nil {
		h.failAdmin(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *Handler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, authz.ManageCatalog, true) {
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.svc.Menu.Delete(r.Context(), auth.PrincipalFrom(r.Context()), id); err != nil {
		h.failAdmin(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Menu item deleted")
}
