package middleware

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"voyager-be/internal/auth"
	"voyager-be/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Rate Limit Tiers
const (
	// Login / register (Strict)
	limitStrict = rate.Limit(2)
	burstStrict = 5

	// General (Default)
	limitGeneral = rate.Limit(10)
	burstGeneral = 20

	// Internal / trusted services
	limitInternal = rate.Limit(100)
	burstInternal = 200

	visitorTTL = 3 * time.Minute
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per caller and tier.
type Limiter struct {
	internalKey string

	mu       sync.Mutex
	visitors map[string]*visitor

	stop chan struct{}
	once sync.Once
}

// NewLimiter starts the background cleanup routine. Call Close to stop it.
// Requests carrying X-Service-Auth equal to internalKey get the internal tier.
func NewLimiter(internalKey string) *Limiter {
	l := &Limiter{
		internalKey: internalKey,
		visitors:    make(map[string]*visitor),
		stop:        make(chan struct{}),
	}
	go l.cleanupVisitors(time.Minute)
	return l
}

func (l *Limiter) Close() {
	l.once.Do(func() { close(l.stop) })
}

// getVisitor retrieves or creates a rate limiter for the given key.
func (l *Limiter) getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		l.visitors[key] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// cleanupVisitors removes old entries from the visitors map to prevent memory leaks.
func (l *Limiter) cleanupVisitors(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.evict(visitorTTL)
		}
	}
}

func (l *Limiter) evict(ttl time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, v := range l.visitors {
		if time.Since(v.lastSeen) > ttl {
			delete(l.visitors, key)
		}
	}
}

// Middleware checks if the request is allowed by the rate limiter.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, burst, tier := l.resolveRateTier(r)

		// The same caller has separate quotas per tier, e.g. "user:<id>:strict".
		key := fmt.Sprintf("%s:%s", identity(r), tier)

		if !l.getVisitor(key, limit, burst).Allow() {
			logger.FromCtx(r.Context()).Warn("rate limit exceeded", zap.String("tier", tier))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Too many requests"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// identity prefers the signed-in user, then a client device id, then the IP.
func identity(r *http.Request) string {
	if p := auth.PrincipalFrom(r.Context()); p != nil {
		return "user:" + p.UserID.String()
	}
	if deviceID := r.Header.Get("X-Device-ID"); deviceID != "" {
		return "device:" + deviceID
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}

// resolveRateTier determines which rate limit policy applies to the request.
func (l *Limiter) resolveRateTier(r *http.Request) (rate.Limit, int, string) {
	if l.internalKey != "" && r.Header.Get("X-Service-Auth") == l.internalKey {
		return limitInternal, burstInternal, "internal"
	}

	// Credential endpoints are the brute-force target.
	if r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/auth/") {
		return limitStrict, burstStrict, "strict"
	}

	return limitGeneral, burstGeneral, "general"
}
