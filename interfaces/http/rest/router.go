package rest

import (
	"net/http"

	"agentdir/infrastructure/di"
	"agentdir/interfaces/http/rest/handlers"
	"agentdir/interfaces/http/rest/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Router creates and configures the HTTP router
type Router struct {
	container *di.Container
}

// NewRouter creates a new router instance
func NewRouter(container *di.Container) *Router {
	return &Router{container: container}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	c := rt.container
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(c.Logger))
	if c.Config.EnableMetrics {
		router.Use(middleware.Metrics(c.Metrics))
	}

	// CORS configuration
	if c.Config.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)

	if c.Config.EnableMetrics {
		router.Method(http.MethodGet, "/metrics", c.Metrics.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		// Session endpoints
		authHandler := handlers.NewAuthHandler(c.Gate, c.LoginLimiter, c.Errors, c.Logger)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)

		agentHandler := handlers.NewAgentHandler(c.Catalog, c.Errors, c.Logger)
		exchangeHandler := handlers.NewExchangeHandler(c.Catalog, c.Exchange, c.Errors, c.Logger)

		// Public read surface
		r.Get("/agents", agentHandler.List)
		r.Get("/catalog/export", exchangeHandler.Export)

		// Admin surface: every mutation sits behind the auth gate
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(c.Gate))

			r.Post("/agents", agentHandler.Create)
			r.Put("/agents/{agentID}", agentHandler.Update)
			r.Delete("/agents/{agentID}", agentHandler.Delete)
			r.Post("/catalog/import", exchangeHandler.Import)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
