package rest

import (
	"net/http"

	"voyager-be/internal/logger"
	"voyager-be/internal/middleware"
	"voyager-be/internal/user"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires every HTTP route.
func NewRouter(svc Services, opts Options) http.Handler {
	h := newHandler(svc, opts)

	r := chi.NewRouter()
	r.Use(
		chimw.RealIP,
		logger.RequestIDMiddleware,
		middleware.CORS(opts.CORSOrigin),
		middleware.Session(opts.Sessions, opts.Cookie, sessionLoader(svc.Users)),
		middleware.Logging(h.metrics),
		chimw.Recoverer,
	)
	if opts.RateLimiter != nil {
		r.Use(opts.RateLimiter.Middleware)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/healthz", h.Healthz)
	r.Route("/auth", func(r chi.Router) { AuthRouter(r, h) })
	r.Route("/users", func(r chi.Router) { UserRouter(r, h) })
	r.Route("/menu", func(r chi.Router) { MenuRouter(r, h) })
	r.Route("/orders", func(r chi.Router) { OrderRouter(r, h) })
	r.Route("/bookings", func(r chi.Router) { BookingRouter(r, h, opts.BookingTransitions) })
	r.Route("/dashboard", func(r chi.Router) { DashboardRouter(r, h) })

	return r
}

func sessionLoader(users user.Service) middleware.PrincipalLoader {
	if users == nil {
		return nil
	}
	return users.SessionPrincipal
}
