package middleware

import (
	"context"
	"net/http"

	"voyager-be/internal/apperr"
	"voyager-be/internal/auth"
	"voyager-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PrincipalLoader returns the current stored identity of a user.
type PrincipalLoader func(ctx context.Context, id uuid.UUID) (auth.Principal, error)

// Session attaches the caller's principal when a valid token is present.
// It never rejects a request: handlers and services decide whether an
// anonymous caller is acceptable. Tokens past the update age are re-issued
// with the user's stored role, but keep the expiry set at login. A user
// deleted since login is treated as anonymous from the refresh on. load may
// be nil, in which case the token's principal is carried over.
func Session(store auth.SessionStore, cookie auth.Cookie, load PrincipalLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := cookie.ExtractAccessToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			log := logger.FromCtx(r.Context())

			sess, err := store.Validate(token)
			if err != nil {
				log.Debug("ignoring invalid session token", zap.Error(err))
				clearIfCookie(w, r, cookie, token)
				next.ServeHTTP(w, r)
				return
			}

			p := sess.Principal
			if store.NeedsRefresh(sess) {
				refreshed, ok := refresh(r.Context(), store, sess, load)
				if !ok {
					clearIfCookie(w, r, cookie, token)
					next.ServeHTTP(w, r)
					return
				}
				if refreshed.Token != "" {
					cookie.Set(w, refreshed)
					p = refreshed.Principal
				}
			}

			ctx := auth.WithPrincipal(r.Context(), p)
			ctx = logger.WithUser(ctx, p.UserID.String(), string(p.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// refresh reports false when the user behind sess no longer exists. Other
// failures keep the current session and return an empty Session.
func refresh(ctx context.Context, store auth.SessionStore, sess auth.Session, load PrincipalLoader) (auth.Session, bool) {
	log := logger.FromCtx(ctx)

	p := sess.Principal
	if load != nil {
		current, err := load(ctx, p.UserID)
		switch {
		case apperr.KindOf(err) == apperr.NotFound:
			log.Info("session user no longer exists", zap.String("user_id", p.UserID.String()))
			return auth.Session{}, false
		case err != nil:
			log.Warn("failed to reload session user", zap.Error(err))
			return auth.Session{}, true
		}
		p = current
	}

	fresh, err := store.Refresh(sess, p)
	if err != nil {
		log.Warn("failed to refresh session", zap.Error(err))
		return auth.Session{}, true
	}
	return fresh, true
}

func clearIfCookie(w http.ResponseWriter, r *http.Request, cookie auth.Cookie, token string) {
	if c, err := r.Cookie(cookie.Name); err == nil && c.Value == token {
		cookie.Clear(w)
	}
}
