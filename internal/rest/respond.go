package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"voyager-be/internal/apperr"
	"voyager-be/internal/auth"
	"voyager-be/internal/authz"
	"voyager-be/internal/logger"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.Unauthenticated, apperr.InvalidCredentials:
		return http.StatusUnauthorized
	case apperr.Forbidden:
		return http.StatusForbidden
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Validation, apperr.InvalidTransition:
		return http.StatusBadRequest
	case apperr.Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail logs err and writes it as {"message": ...}.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.writeFailure(w, r, err, statusFor(err))
}

// failAdmin is fail for admin-only routes, where a forbidden caller gets the
// configured status.
func (h *Handler) failAdmin(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusForbidden {
		status = h.adminForbiddenStatus
	}
	h.writeFailure(w, r, err, status)
}

func (h *Handler) writeFailure(w http.ResponseWriter, r *http.Request, err error, status int) {
	log := logger.FromCtx(r.Context()).With(
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("kind", apperr.KindOf(err).String()),
		zap.Error(err),
	)
	if status >= http.StatusInternalServerError {
		log.Error("request failed")
	} else {
		log.Warn("request rejected")
	}

	writeMessage(w, status, apperr.Message(err))
}

// allow checks the caller against action before the request is parsed, so an
// unauthorized caller never learns whether its body was well formed.
func (h *Handler) allow(w http.ResponseWriter, r *http.Request, action authz.Action, admin bool) bool {
	err := authz.Authorize(auth.PrincipalFrom(r.Context()), action, authz.Resource{})
	if err == nil {
		return true
	}
	if admin {
		h.failAdmin(w, r, err)
	} else {
		h.fail(w, r, err)
	}
	return false
}

var errBadBody = apperr.New(apperr.Validation, "Invalid request body")

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Invalid("Request body is required")
		}
		return apperr.Wrap(apperr.Validation, errBadBody.Message, err)
	}
	return nil
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, apperr.Invalid("Invalid id")
	}
	return id, nil
}
