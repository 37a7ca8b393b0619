package rest

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/vehiclefin/financing-offer/internal/application/dto"
	"github.com/vehiclefin/financing-offer/pkg/auth"
)

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs every HTTP request with method, path, status, duration, and remote address.
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)
			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", rw.statusCode,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_addr", r.RemoteAddr,
			}
			if sc := trace.SpanContextFromContext(r.Context()); sc.HasTraceID() {
				attrs = append(attrs, "trace_id", sc.TraceID().String())
			}
			logger.InfoContext(r.Context(), "request", attrs...)
		})
	}
}

// AuthMiddleware validates JWT tokens on incoming requests.
// Requests to paths listed in skipPaths bypass authentication.
func AuthMiddleware(jwtService *auth.JWTService, skipPaths []string) func(http.Handler) http.Handler {
	skipSet := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skipSet[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, skip := skipSet[r.URL.Path]; skip {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := auth.BearerToken(r.Header.Get("Authorization"))
			if !ok {
				writeJSON(w, http.StatusUnauthorized, errorBody{Error: "missing or malformed authorization header"})
				return
			}
			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid token"})
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.ContextWithClaims(r.Context(), claims)))
		})
	}
}

// actorFrom reads the caller placed in the context by AuthMiddleware.
func actorFrom(r *http.Request) (dto.Actor, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return dto.Actor{}, false
	}
	return dto.Actor{Username: claims.Username, Admin: claims.HasRole(auth.RoleAdmin)}, true
}

// RateLimiter implements a simple token bucket rate limiter.
type RateLimiter struct {
	mu         sync.Mutex
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
}

// NewRateLimiter creates a rate limiter that allows rps requests per second.
// Bursts of up to max(rps, 1) requests are accepted.
func NewRateLimiter(rps float64) *RateLimiter {
	burst := max(rps, 1)
	return &RateLimiter{
		tokens:     burst,
		maxTokens:  burst,
		refillRate: rps,
		lastRefill: time.Now(),
	}
}

// Allow reports whether a single request is permitted.
// It consumes one token if available.
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.allowLocked(time.Now())
}

func (rl *RateLimiter) allowLocked(now time.Time) bool {
	elapsed := now.Sub(rl.lastRefill).Seconds()
	rl.tokens += elapsed * rl.refillRate
	if rl.tokens > rl.maxTokens {
		rl.tokens = rl.maxTokens
	}
	rl.lastRefill = now

	if rl.tokens >= 1 {
		rl.tokens--
		return true
	}
	return false
}

// ClientRateLimiter keeps one bucket per client address.
type ClientRateLimiter struct {
	mu      sync.Mutex
	rps     float64
	idleTTL time.Duration
	buckets map[string]*RateLimiter
	swept   time.Time
}

func NewClientRateLimiter(rps float64) *ClientRateLimiter {
	return &ClientRateLimiter{
		rps:     rps,
		idleTTL: 10 * time.Minute,
		buckets: make(map[string]*RateLimiter),
		swept:   time.Now(),
	}
}

// Allow consumes a token from client's bucket.
func (c *ClientRateLimiter) Allow(client string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if now.Sub(c.swept) > c.idleTTL {
		for k, b := range c.buckets {
			if now.Sub(b.lastRefill) > c.idleTTL {
				delete(c.buckets, k)
			}
		}
		c.swept = now
	}

	b, ok := c.buckets[client]
	if !ok {
		b = NewRateLimiter(c.rps)
		c.buckets[client] = b
	}
	return b.allowLocked(now)
}

// RateLimitMiddleware applies per-client rate limiting to incoming HTTP requests.
func RateLimitMiddleware(limiter *ClientRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientKey(r)) {
				writeJSON(w, http.StatusTooManyRequests, errorBody{Error: "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
