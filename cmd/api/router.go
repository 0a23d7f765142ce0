package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/folio/service/docs/swagger"
	"github.com/folio/service/internal/asset"
	"github.com/folio/service/internal/config"
	appMiddleware "github.com/folio/service/internal/middleware"
	"github.com/folio/service/internal/publication"
	"github.com/folio/service/internal/response"
	"github.com/folio/service/internal/storage"
)

// newRouter wires dependencies (registry → service → handler) and mounts every route.
func newRouter(cfg *config.Config, host storage.AssetHost, logger *slog.Logger) http.Handler {
	assetHandler := asset.NewHandler(asset.NewService(host, cfg.UpstreamTimeout), cfg.MaxUploadBytes, logger)

	registry := publication.NewRegistry()
	pubHandler := publication.NewHandler(publication.NewService(registry, logger), logger)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]string{"status": "ok"})
	})

	// Swagger UI, available at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Get("/", assetHandler.ListFiles)
	r.Post("/upload", assetHandler.Upload)
	r.Route("/publications", pubHandler.Routes)

	return r
}

// newServer configures the HTTP server. Only headers are bounded by a read
// deadline; a slow upload body is bounded by MaxUploadBytes and the upstream
// timeout instead.
func newServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		IdleTimeout:       60 * time.Second,
	}
}

// newAssetHost builds the configured backend. Missing credentials or a failed
// initialisation leave the gateway running with a host that fails every call.
func newAssetHost(ctx context.Context, cfg *config.Config) storage.AssetHost {
	switch cfg.AssetBackend {
	case config.BackendCloudinary:
		if !cfg.CloudinaryConfigured() {
			log.Println("assets: cloudinary credentials missing, uploads and listings will fail")
			return storage.Disabled("cloudinary credentials missing")
		}
		host, err := storage.NewCloudinaryHost(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.AssetFolder)
		if err != nil {
			log.Printf("assets: %v", err)
			return storage.Disabled("cloudinary init failed")
		}
		return host

	case config.BackendMinio:
		ctx, cancel := context.WithTimeout(ctx, cfg.UpstreamTimeout)
		defer cancel()
		host, err := storage.NewMinioHost(ctx,
			cfg.StorageEndpoint,
			cfg.StorageAccessKey,
			cfg.StorageSecretKey,
			cfg.StorageBucket,
			cfg.AssetFolder,
			cfg.StoragePublicBase,
		)
		if err != nil {
			log.Printf("assets: object storage init failed: %v", err)
			return storage.Disabled("object storage init failed")
		}
		return host

	case config.BackendMemory:
		return storage.NewMemoryHost(cfg.AssetFolder, cfg.StoragePublicBase)

	default:
		log.Printf("assets: unknown ASSET_BACKEND %q", cfg.AssetBackend)
		return storage.Disabled("unknown backend " + cfg.AssetBackend)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
