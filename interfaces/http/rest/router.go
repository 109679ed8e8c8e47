// Package rest wires the HTTP surface of the user-data service.
package rest

import (
	"net/http"

	"userdata/application/ports"
	"userdata/interfaces/http/rest/handlers"
	"userdata/interfaces/http/rest/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	repo   ports.UserDataRepository
	logger *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(repo ports.UserDataRepository, logger *zap.Logger) *Router {
	return &Router{
		repo:   repo,
		logger: logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID", "X-User-Id", "X-User-Email"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	router.Get("/health", rt.healthCheck)

	// User-data endpoints; every route below resolves the caller identity
	// from the x-user-id / x-user-email headers first.
	router.Route("/userdata", func(r chi.Router) {
		r.Use(middleware.Identity(rt.logger))

		profileHandler := handlers.NewProfileHandler(rt.repo, rt.logger)
		r.Post("/profile", profileHandler.UpdateProfile)
		r.Get("/profile", profileHandler.GetProfile)

		bookHandler := handlers.NewBookHandler(rt.repo, rt.logger)
		r.Post("/books", bookHandler.CreateBook)
		r.Get("/books", bookHandler.ListBooks)

		pageHandler := handlers.NewPageHandler(rt.repo, rt.logger)
		r.Post("/books/{bookId}/pages", pageHandler.CreatePage)
		r.Get("/books/{bookId}/pages", pageHandler.ListPages)

		wordHandler := handlers.NewWordHandler(rt.repo, rt.logger)
		r.Post("/books/{bookId}/pages/{pageNumber}/words", wordHandler.SaveWords)
		r.Post("/words", wordHandler.SaveWordsForPage)
		r.Get("/words", wordHandler.ListAllWords)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"UP","service":"user-data-service"}`))
}
