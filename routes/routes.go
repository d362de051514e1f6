package routes

import (
	"net/http"
	"time"

	"github.com/MarcusGale/LLM-Router/app"
	"github.com/MarcusGale/LLM-Router/handlers"
	applog "github.com/MarcusGale/LLM-Router/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// requestTimeout bounds a whole turn: two sequential completion calls
const requestTimeout = 120 * time.Second

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(applog.RequestLogger(deps.Logger.Named("http")))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(deps),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check endpoints
	r.Get("/healthz", handlers.HealthCheck(deps))
	r.Get("/readyz", handlers.ReadinessCheck(deps))

	chatHandler := handlers.NewChatHandler(deps.Chat, deps.Logger.Named("handlers"))
	modelsHandler := handlers.NewModelsHandler(deps.Models, deps.Logger.Named("handlers"))

	// Path used by the bundled web client
	r.Post("/api/chat", chatHandler.HandleChat)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", handlers.StatusHandler(deps))
		r.Get("/models", modelsHandler.HandleList)
		r.Post("/chat", chatHandler.HandleChat)
		r.Post("/route", chatHandler.HandleRoute)
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"endpoint not found"}`))
	})

	return r
}

func allowedOrigins(deps *app.Dependencies) []string {
	if deps.Config != nil && len(deps.Config.CORS.AllowedOrigins) > 0 {
		return deps.Config.CORS.AllowedOrigins
	}
	return []string{"http://localhost:*"}
}
