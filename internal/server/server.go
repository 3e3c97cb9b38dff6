package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pawmarket/internal/config"
	custommiddleware "pawmarket/internal/middleware"
	"pawmarket/internal/notify"
	"pawmarket/internal/repository"
	"pawmarket/internal/service"
	"pawmarket/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB, redisClient *redis.Client) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.Env == "development"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: cfg.RateLimit.RequestsPerMinute,
		Window:            time.Minute,
		KeyPrefix:         "rate_limit",
	}, logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	sellerRepo := repository.NewSellerRepository(db)
	petRepo := repository.NewPetRepository(db)
	taxonomyRepo := repository.NewTaxonomyRepository(db)
	adRepo := repository.NewAdRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	txRunner := repository.NewTxRunner(db)

	// Initialize side channels
	otpStore := service.NewRedisOTPStore(redisClient)
	notifier := notify.NewLogNotifier(logger)

	// Initialize services
	userService := service.NewUserService(userRepo, refreshTokenRepo, otpStore, notifier, cfg.JWT.Secret)
	sellerService := service.NewSellerService(sellerRepo, userRepo, txRunner, notifier)
	petService := service.NewPetService(petRepo, sellerRepo, userRepo, taxonomyRepo)
	taxonomyService := service.NewTaxonomyService(taxonomyRepo)
	adService := service.NewAdService(adRepo)
	wishlistService := service.NewWishlistService(wishlistRepo, petRepo)

	// Initialize handlers
	userHandler := transport.NewUserHandler(userService, logger)
	sellerHandler := transport.NewSellerHandler(sellerService, logger)
	petHandler := transport.NewPetHandler(petService, logger)
	taxonomyHandler := transport.NewTaxonomyHandler(taxonomyService, logger)
	adHandler := transport.NewAdHandler(adService, logger)
	wishlistHandler := transport.NewWishlistHandler(wishlistService, logger)

	// Create auth middleware
	authMiddleware := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)

	// Register routes
	userHandler.RegisterRoutes(router, authMiddleware)
	sellerHandler.RegisterRoutes(router, authMiddleware)
	petHandler.RegisterRoutes(router, authMiddleware)
	taxonomyHandler.RegisterRoutes(router, authMiddleware)
	adHandler.RegisterRoutes(router, authMiddleware)
	wishlistHandler.RegisterRoutes(router, authMiddleware)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
