package auth

import (
	"errors"
	"time"

	"voyager-be/internal/apperr"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionStore issues and validates session tokens. Validate has no side
// effects and is safe to call concurrently for the same token.
type SessionStore interface {
	Issue(p Principal) (Session, error)
	Validate(token string) (Session, error)
	NeedsRefresh(s Session) bool
	// Refresh re-issues s for p without moving its absolute expiry.
	Refresh(s Session, p Principal) (Session, error)
}

type Session struct {
	Token     string
	Principal Principal
	// AuthTime is when the user logged in. It never changes on refresh.
	AuthTime  time.Time
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type CustomClaims struct {
	Role     Role             `json:"role"`
	Name     string           `json:"name,omitempty"`
	Email    string           `json:"email,omitempty"`
	AuthTime *jwt.NumericDate `json:"auth_time,omitempty"`
	jwt.RegisteredClaims
}

type JWTSessions struct {
	secret    []byte
	maxAge    time.Duration
	updateAge time.Duration
	now       func() time.Time
}

func NewJWTSessions(secret string, maxAge, updateAge time.Duration) *JWTSessions {
	return &JWTSessions{
		secret:    []byte(secret),
		maxAge:    maxAge,
		updateAge: updateAge,
		now:       time.Now,
	}
}

// Issue starts a new session at login. It expires maxAge after now.
func (s *JWTSessions) Issue(p Principal) (Session, error) {
	now := s.now().Truncate(time.Second)
	return s.sign(p, now, now)
}

// Refresh gives s a new token and issue time. ExpiresAt stays at
// AuthTime + maxAge, so activity never extends a session past it.
func (s *JWTSessions) Refresh(sess Session, p Principal) (Session, error) {
	if sess.AuthTime.IsZero() {
		return Session{}, apperr.ErrUnauthenticated
	}
	now := s.now().Truncate(time.Second)
	if !now.Before(sess.AuthTime.Add(s.maxAge)) {
		return Session{}, apperr.ErrUnauthenticated
	}
	return s.sign(p, sess.AuthTime, now)
}

func (s *JWTSessions) sign(p Principal, authTime, issuedAt time.Time) (Session, error) {
	if len(s.secret) == 0 {
		return Session{}, errors.New("session secret is not set")
	}

	expiresAt := authTime.Add(s.maxAge)

	claims := CustomClaims{
		Role:     p.Role,
		Name:     p.Name,
		Email:    p.Email,
		AuthTime: jwt.NewNumericDate(authTime),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Session{}, err
	}

	return Session{Token: token, Principal: p, AuthTime: authTime, IssuedAt: issuedAt, ExpiresAt: expiresAt}, nil
}

func (s *JWTSessions) Validate(tokenStr string) (Session, error) {
	if tokenStr == "" {
		return Session{}, apperr.ErrUnauthenticated
	}

	claims := &CustomClaims{}
	token, err := jwt.ParseWithClaims(
		tokenStr,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Session{}, apperr.Wrap(apperr.Unauthenticated, "Unauthorized", err)
	}
	if !token.Valid {
		return Session{}, apperr.ErrUnauthenticated
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Session{}, apperr.Wrap(apperr.Unauthenticated, "Unauthorized", err)
	}
	if !claims.Role.Valid() || claims.IssuedAt == nil || claims.AuthTime == nil {
		return Session{}, apperr.ErrUnauthenticated
	}
	// A token whose expiry lies past the login deadline was not minted here.
	deadline := claims.AuthTime.Time.Add(s.maxAge)
	if claims.ExpiresAt.Time.After(deadline) || !s.now().Before(deadline) {
		return Session{}, apperr.ErrUnauthenticated
	}

	return Session{
		Token: tokenStr,
		Principal: Principal{
			UserID: userID,
			Role:   claims.Role,
			Name:   claims.Name,
			Email:  claims.Email,
		},
		AuthTime:  claims.AuthTime.Time,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// NeedsRefresh is true once the session has been in use for the update age.
func (s *JWTSessions) NeedsRefresh(sess Session) bool {
	return s.now().Sub(sess.IssuedAt) >= s.updateAge
}
