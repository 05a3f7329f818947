package server

import (
	"fmt"
	"net/http"
	"time"

	"noviqueen/internal/config"
	"noviqueen/internal/imagestore"
	custommiddleware "noviqueen/internal/middleware"
	"noviqueen/internal/service"
	"noviqueen/internal/store"
	"noviqueen/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config  *config.Config
	logger  *zap.Logger
	records store.Store
	redis   *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, records store.Store) (*Server, error) {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(custommiddleware.DefaultMiddlewareStack()...)
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.Server.Env == "development"))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize image store
	images, err := newImageStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	// Locally stored images are served straight off disk.
	if local, ok := images.(*imagestore.LocalStore); ok {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(local.Dir())))
		router.Get("/uploads/*", fileServer.ServeHTTP)
	}

	// Initialize services
	productService := service.NewProductService(records.Products(), images, logger)
	adminService := service.NewAdminService(records.Admins(), logger)

	// Initialize handlers
	productHandler := transport.NewProductHandler(productService, logger)
	messageHandler := transport.NewMessageHandler(records.Messages(), logger)
	subscriberHandler := transport.NewSubscriberHandler(records.Subscribers(), logger)
	adminHandler := transport.NewAdminHandler(adminService, logger)

	productHandler.RegisterRoutes(router)
	adminHandler.RegisterRoutes(router)

	// The public write endpoints are the abuse surface; guard them
	// with the Redis limiter when one is configured.
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		rateLimit := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
			Window:            time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
			KeyPrefix:         "ratelimit:public",
		}, logger)

		router.Group(func(r chi.Router) {
			r.Use(rateLimit)
			messageHandler.RegisterRoutes(r)
			subscriberHandler.RegisterRoutes(r)
		})
	} else {
		messageHandler.RegisterRoutes(router)
		subscriberHandler.RegisterRoutes(router)
	}

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:  cfg,
		logger:  logger,
		records: records,
		redis:   redisClient,
	}

	return server, nil
}

func newImageStore(cfg *config.Config, logger *zap.Logger) (imagestore.Store, error) {
	switch cfg.Image.Backend {
	case "supabase":
		if cfg.Image.Supabase.URL == "" || cfg.Image.Supabase.Key == "" {
			return nil, fmt.Errorf("supabase image backend requires SUPABASE_URL and SUPABASE_ANON_KEY")
		}
		return imagestore.NewSupabaseStore(
			cfg.Image.Supabase.URL,
			cfg.Image.Supabase.Key,
			cfg.Image.Supabase.Bucket,
			cfg.Image.MaxUploadBytes,
			logger,
		), nil
	case "local", "":
		return imagestore.NewLocalStore(cfg.Image.UploadsDir, cfg.Image.BaseURL, cfg.Image.MaxUploadBytes, logger)
	default:
		return nil, fmt.Errorf("unknown image backend: %s", cfg.Image.Backend)
	}
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	// Close record store
	if s.records != nil {
		if err := s.records.Close(); err != nil {
			s.logger.Error("Failed to close record store", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
