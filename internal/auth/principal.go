package auth

import (
	"context"

	"github.com/google/uuid"
)

// Principal is the identity a session carries.
type Principal struct {
	UserID uuid.UUID `json:"id"`
	Role   Role      `json:"role"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
}

type ctxKey string

const principalKey ctxKey = "principal"

// WithPrincipal is called by the session middleware once a token validated.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFrom returns the caller, or nil for anonymous requests.
func PrincipalFrom(ctx context.Context) *Principal {
	p, ok := ctx.Value(principalKey).(Principal)
	if !ok {
		return nil
	}
	return &p
}
