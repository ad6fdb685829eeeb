package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"stringanalyzer/internal/handlers"
	"stringanalyzer/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	StringService service.StringService
	// Store backs GET /health.
	Store handlers.Pinger
	// RateLimitRequests per RateLimitWindow per client; zero disables limiting.
	RateLimitRequests int
	RateLimitWindow   time.Duration
	CORSOrigins       []string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(CORS(deps.CORSOrigins))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.Store))

	stringsHandler := handlers.NewStringsHandler(deps.StringService)

	r.Group(func(r chi.Router) {
		if deps.RateLimitRequests > 0 && deps.RateLimitWindow > 0 {
			r.Use(NewRateLimiter(deps.RateLimitRequests, deps.RateLimitWindow).Middleware)
		}

		r.Route("/strings", func(r chi.Router) {
			r.Post("/", stringsHandler.Create)
			r.Get("/", stringsHandler.List)
			// Static route wins over {value} in chi's radix tree.
			r.Get("/filter-by-natural-language", stringsHandler.FilterNatural)
			r.Get("/{value}", stringsHandler.Get)
			r.Delete("/{value}", stringsHandler.Delete)
			r.Delete("/", stringsHandler.Delete)
		})
	})

	return r
}
