package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"voicenotes-backend/application/access"
	"voicenotes-backend/application/ports"
	"voicenotes-backend/application/services"
	"voicenotes-backend/infrastructure/config"
	"voicenotes-backend/interfaces/http/rest/handlers"
	"voicenotes-backend/interfaces/http/rest/middleware"
	"voicenotes-backend/pkg/auth"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg          *config.Config
	verifier     *access.Verifier
	verifyLimits auth.RateLimiter
	notes        *services.NoteService
	chat         *services.ChatService
	generator    ports.Generator
	logger       *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	verifier *access.Verifier,
	verifyLimits auth.RateLimiter,
	notes *services.NoteService,
	chat *services.ChatService,
	generator ports.Generator,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:          cfg,
		verifier:     verifier,
		verifyLimits: verifyLimits,
		notes:        notes,
		chat:         chat,
		generator:    generator,
		logger:       logger,
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

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*.vercel.app"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	router.Route("/api", func(r chi.Router) {
		// Access gate
		authHandler := handlers.NewAuthHandler(rt.verifier, rt.verifyLimits, rt.logger)
		r.Post("/auth/verify", authHandler.Verify)

		// Note endpoints
		noteHandler := handlers.NewNoteHandler(rt.notes, rt.logger)
		r.Route("/notes", func(r chi.Router) {
			r.Get("/", noteHandler.List)
			r.Post("/", noteHandler.Create)
			r.Put("/", noteHandler.Update)
			r.Delete("/", noteHandler.Delete)
			r.Get("/{slug}", noteHandler.GetBySlug)
		})

		// Organizational reads
		contentHandler := handlers.NewContentHandler(rt.notes, rt.logger)
		r.Get("/collections", contentHandler.Collections)
		r.Get("/tags", contentHandler.Tags)

		// Generation endpoints
		aiHandler := handlers.NewAIHandler(rt.generator, rt.logger)
		r.Post("/ai/title", aiHandler.Title)
		r.Post("/ai/summary", aiHandler.Summary)

		// Chat endpoints
		chatHandler := handlers.NewChatHandler(rt.chat, rt.logger)
		r.Post("/chat", chatHandler.Exchange)
		r.Get("/chat-sessions", chatHandler.Sessions)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck reports whether the external dependencies are
// configured. The process serves traffic either way; unconfigured
// dependencies degrade per-endpoint instead.
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if !rt.cfg.HasCosmic() {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"degraded","reason":"content store not configured"}`))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
