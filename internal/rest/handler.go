package rest

import (
	"context"
	"net/http"

	"voyager-be/internal/auth"
	"voyager-be/internal/booking"
	"voyager-be/internal/dashboard"
	"voyager-be/internal/menu"
	"voyager-be/internal/metrics"
	"voyager-be/internal/order"
	"voyager-be/internal/user"
)

type Services struct {
	Users     user.Service
	Menu      menu.Service
	Orders    order.Service
	Bookings  booking.Service
	Dashboard dashboard.Service
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Options struct {
	Sessions   auth.SessionStore
	Cookie     auth.Cookie
	CORSOrigin string
	Metrics    *metrics.HTTP
	DB         Pinger

	// RateLimiter is optional.
	RateLimiter interface {
		Middleware(http.Handler) http.Handler
	}

	// AdminForbiddenStatus is written when a non-admin hits an admin-only route.
	AdminForbiddenStatus int
	// BookingTransitions mounts PATCH /bookings/{id}.
	BookingTransitions bool
}

type Handler struct {
	svc                  Services
	sessions             auth.SessionStore
	cookie               auth.Cookie
	metrics              *metrics.HTTP
	db                   Pinger
	adminForbiddenStatus int
}

func newHandler(svc Services, opts Options) *Handler {
	status := opts.AdminForbiddenStatus
	if status == 0 {
		status = http.StatusForbidden
	}
	m := opts.Metrics
	if m == nil {
		m = &metrics.HTTP{}
	}
	return &Handler{
		svc:                  svc,
		sessions:             opts.Sessions,
		cookie:               opts.Cookie,
		metrics:              m,
		db:                   opts.DB,
		adminForbiddenStatus: status,
	}
}
