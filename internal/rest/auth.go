package rest

import (
	"net/http"
	"time"

	"voyager-be/internal/apperr"
	"voyager-be/internal/auth"
	"voyager-be/internal/user"

	"github.com/go-chi/chi/v5"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User    auth.Principal `json:"user"`
	Token   string         `json:"token,omitempty"`
	Expires *time.Time     `json:"expires,omitempty"`
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, h *Handler) {
	r.Post("/login", h.Login)
	r.Post("/register", h.Register)
	r.Post("/logout", h.Logout)
	r.Get("/session", h.CurrentSession)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	u, err := h.svc.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	sess, err := h.sessions.Issue(u.Principal())
	if err != nil {
		h.fail(w, r, apperr.Wrap(apperr.Internal, "issue session", err))
		return
	}
	h.cookie.Set(w, sess)

	writeJSON(w, http.StatusOK, sessionResponse{User: sess.Principal, Token: sess.Token, Expires: &sess.ExpiresAt})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var in user.CreateInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	u, err := h.svc.Users.Register(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookie.Clear(w)
	writeMessage(w, http.StatusOK, "Logged out")
}

func (h *Handler) CurrentSession(w http.ResponseWriter, r *http.Request) {
	p := auth.PrincipalFrom(r.Context())
	if p == nil {
		h.fail(w, r, apperr.ErrUnauthenticated)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{User: *p})
}
