package router

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"voice-shopping-assistant/app/controller"
	"voice-shopping-assistant/logger"
	"voice-shopping-assistant/models"
)

// Controllers groups the HTTP handlers mounted by SetupRoutes
type Controllers struct {
	Health    *controller.HealthController
	List      *controller.ListController
	Assistant *controller.AssistantController
	Catalog   *controller.CatalogController
}

// Options configures cross-cutting middleware
type Options struct {
	// ClientOrigin is a comma separated list of allowed origins, or "*"
	ClientOrigin string
	ExposeErrors bool
}

// SetupRoutes builds the application router
func SetupRoutes(controllers *Controllers, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(recoverer(opts.ExposeErrors))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(opts.ClientOrigin),
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Registered before mounting so sub-routers inherit them
	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	r.Get("/", controllers.Health.Root)
	r.Get("/ping", controllers.Health.Ping)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", controllers.Health.Health)

		r.Route("/list", func(r chi.Router) {
			r.Get("/", controllers.List.GetList)
			r.Post("/", controllers.List.AddItem)
			r.Delete("/{id}", controllers.List.DeleteItem)
		})

		// Dialogflow-compatible query endpoint
		r.Get("/dialogflow/query", controllers.Assistant.QueryUsage)
		r.Post("/dialogflow/query", controllers.Assistant.Query)

		r.Get("/catalog", controllers.Catalog.Search)
	})

	return r
}

func notFound(w http.ResponseWriter, r *http.Request) {
	logger.S().Infof("⚠️  404 - Route not found: %s %s", r.Method, r.URL.RequestURI())
	writeRouteError(w, r, http.StatusNotFound, "Route not found")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeRouteError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
}

func writeRouteError(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse{
		Error:  message,
		Path:   r.URL.RequestURI(),
		Method: r.Method,
	})
}

func allowedOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
