package auth

import (
	"net/http"
	"strings"
	"time"
)

// Cookie describes how the session token travels to browsers.
type Cookie struct {
	Name   string
	Secure bool
}

// ExtractAccessToken prefers the session cookie and falls back to a Bearer header.
func (c Cookie) ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie(c.Name); err == nil {
		if cookie.Value != "" {
			return cookie.Value
		}
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}

	return ""
}

func (c Cookie) Set(w http.ResponseWriter, s Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    s.Token,
		Path:     "/",
		Expires:  s.ExpiresAt,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c Cookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
