// internal/wire/wire.go
package wire

import (
	"context"
	"net/http"
	"strings"
	"time"

	"planetarium-booking/internal/adaptor"
	"planetarium-booking/internal/data/repository"
	"planetarium-booking/internal/usecase"
	"planetarium-booking/pkg/database"
	"planetarium-booking/pkg/middleware"
	"planetarium-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App holds the wired router and its dependencies.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds every service and handler. rdb may be nil when the
// catalog cache is disabled.
func Wiring(
	db database.PgxIface,
	repo *repository.Repository,
	images usecase.ImageStore,
	rdb redis.Cmdable,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	// services and handlers
	service := usecase.NewService(repo, images, config, logger)
	handler := adaptor.NewHandler(service, config, logger)

	var cache *middleware.CatalogCache
	if rdb != nil {
		cache = middleware.NewCatalogCache(rdb, config.Redis.CacheTTL, config.Redis.Prefix, logger)
	}

	// Setup router
	router := setupRouter(db, handler, service, cache, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

// setupRouter mounts the middleware chain and all routes.
func setupRouter(
	db database.PgxIface,
	handler *adaptor.Handler,
	service *usecase.Service,
	cache *middleware.CatalogCache,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Metrics)
	r.Use(chimiddleware.StripSlashes)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Not found.")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseMethodNotAllowed(w, "Method \""+r.Method+"\" not allowed.")
	})

	// Apply routes
	wireUser(r, handler.User, service.Auth, logger)
	wirePlanetarium(r, handler, service.Auth, cache, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.Error("Health check failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("DB UNAVAILABLE"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	wireMedia(r, config.App, logger)

	return r
}

// wireMedia serves uploaded images when MEDIA_URL is a local path.
func wireMedia(r chi.Router, app utils.AppConfig, log *zap.Logger) {
	if !strings.HasPrefix(app.MediaURL, "/") || app.MediaURL == "/" {
		log.Info("Media files are served externally", zap.String("media_url", app.MediaURL))
		return
	}

	prefix := "/" + strings.Trim(app.MediaURL, "/")
	files := http.StripPrefix(prefix+"/", http.FileServer(http.Dir(app.MediaRoot)))
	r.Method(http.MethodGet, prefix+"/*", files)
}
