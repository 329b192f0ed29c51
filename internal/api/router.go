package api

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/exercise-tracker-be/internal/api/handlers"
	"github.com/isdelr/exercise-tracker-be/internal/config"
	"github.com/isdelr/exercise-tracker-be/internal/metrics"
	"github.com/isdelr/exercise-tracker-be/internal/services"
	"github.com/isdelr/exercise-tracker-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	cfg *config.Config,
	hub *websocket.Hub,
	pinger handlers.Pinger,
	userService services.UserServiceProvider,
	exerciseService services.ExerciseServiceProvider,
	logService services.LogServiceProvider,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.InstrumentHandler)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	exerciseHandler := handlers.NewExerciseHandler(exerciseService)
	logHandler := handlers.NewLogHandler(logService)
	wsHandler := handlers.NewWebSocketHandler(hub, userService, cfg.AllowedOrigins)
	healthHandler := handlers.NewHealthHandler(pinger)

	r.Get("/healthz", healthHandler.Serve)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", userHandler.GetAll)
		r.Post("/", userHandler.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Post("/exercises", exerciseHandler.Create)
			r.Get("/logs", logHandler.Get)
			r.Get("/stream", wsHandler.Serve)
		})
	})

	// Landing page and static assets
	index := filepath.Join(cfg.ViewsDir, "index.html")
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, index)
	})
	r.NotFound(http.FileServer(http.Dir(cfg.PublicDir)).ServeHTTP)

	return r
}
