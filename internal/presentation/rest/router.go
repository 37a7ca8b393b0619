package rest

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/vehiclefin/financing-offer/pkg/auth"
)

// RouterConfig carries everything NewRouter wires together.
type RouterConfig struct {
	Financing      *FinancingHandler
	Health         *HealthHandler
	Metrics        http.Handler
	JWT            *auth.JWTService
	RateLimit      float64
	AllowedOrigins []string
	Logger         *slog.Logger
}

// PublicPaths are served without a token.
var PublicPaths = []string{
	"/api/auth/login",
	"/api/auth/register",
	"/api/countries",
}

// NewRouter builds the HTTP handler: CORS and tracing outermost, then
// logging and rate limiting, then authentication on /api.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware(cfg.Logger))
	if cfg.RateLimit > 0 {
		r.Use(RateLimitMiddleware(NewClientRateLimiter(cfg.RateLimit)))
	}

	cfg.Health.RegisterRoutes(r)
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api").Subrouter()
	api.Use(AuthMiddleware(cfg.JWT, PublicPaths))
	cfg.Financing.RegisterRoutes(api)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	return otelhttp.NewHandler(c.Handler(r), "http.server")
}
