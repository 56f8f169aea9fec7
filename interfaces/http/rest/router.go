package rest

import (
	"net/http"

	"riboflavin-backend/application/services"
	infraconfig "riboflavin-backend/infrastructure/config"
	"riboflavin-backend/infrastructure/persistence/filestore"
	"riboflavin-backend/interfaces/http/rest/handlers"
	"riboflavin-backend/interfaces/http/rest/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	service *services.GraphService
	store   *filestore.Store
	cfg     *infraconfig.Config
	logger  *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	service *services.GraphService,
	store *filestore.Store,
	cfg *infraconfig.Config,
	logger *zap.Logger,
) *Router {
	return &Router{
		service: service,
		store:   store,
		cfg:     cfg,
		logger:  logger,
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
			AllowedOrigins:   rt.cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)

	// Service banner
	router.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message":"Riboflavin Backend API"}`))
	})

	transcriptHandler := handlers.NewTranscriptHandler(rt.service, rt.store, rt.cfg.ViewportWidth, rt.logger)
	graphHandler := handlers.NewGraphHandler(rt.service, rt.cfg.ViewportWidth, rt.logger)

	// Raw transcript upload and retrieval
	router.Post("/upload-raw", transcriptHandler.UploadRaw)
	router.Get("/parsed/{filename}", transcriptHandler.GetParsed)

	// API routes
	router.Route("/api", func(r chi.Router) {
		r.Post("/save-text", transcriptHandler.SaveText)
		r.Get("/parsed-data", transcriptHandler.GetParsedData)
		r.Post("/parse-paragraph-transcript", transcriptHandler.ParseParagraphTranscript)

		r.Route("/graph", func(r chi.Router) {
			r.Get("/", graphHandler.GetGraph)
			r.Post("/ingest", graphHandler.IngestDocument)
			r.Post("/scroll-bounds", graphHandler.ScrollBounds)

			r.Route("/notes", func(r chi.Router) {
				r.Post("/", graphHandler.CreateNote)
				r.Put("/{noteID}", graphHandler.UpdateNote)
				r.Delete("/{noteID}", graphHandler.DeleteNote)
			})

			r.Post("/edges", graphHandler.Connect)
			r.Post("/annotations", graphHandler.AddAnnotation)
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
