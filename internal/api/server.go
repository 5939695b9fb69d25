package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"marroking/internal/api/handlers"
	"marroking/internal/api/middleware"
	"marroking/internal/config"
	"marroking/internal/database"
	"marroking/internal/events"
	"marroking/internal/logger"
	"marroking/internal/services/meli"
	"marroking/internal/store"
	"marroking/internal/sync"
)

type Server struct {
	config *config.Config
	logger *logger.Logger
	db     *database.Database
	router *gin.Engine
	server *http.Server
}

func New(cfg *config.Config, logger *logger.Logger, db *database.Database, publisher *events.Publisher) *Server {
	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// Stores
	productStore := store.NewProductStore(db.DB)
	credentialStore := store.NewCredentialStore(db.DB)
	userStore := store.NewUserStore(db.DB)

	// MercadoLibre integration
	oauthService := meli.NewOAuthService(cfg, logger)
	meliClient := meli.NewClient(cfg.MeliAPIURL, cfg.MeliSyncStatus, cfg.SyncPageSize, logger)
	engine := sync.NewEngine(db.DB, meliClient, credentialStore, publisher, logger)

	// Handlers
	productHandler := handlers.NewProductHandler(productStore, logger)
	authHandler := handlers.NewAuthHandler(userStore, cfg.JWTSecret, logger)
	meliHandler := handlers.NewMeliHandler(oauthService, credentialStore, engine, logger)

	authRequired := middleware.AuthRequired(cfg.JWTSecret)

	// Routes
	router.GET("/", handlers.Home)
	router.GET("/health", handlers.Health)

	router.GET("/auth/callback", meliHandler.Callback)
	router.POST("/meli/sync", authRequired, meliHandler.Sync)

	router.GET("/products", productHandler.List)
	router.GET("/products-grouped", productHandler.ListGrouped)
	router.GET("/products/:id", productHandler.Get)
	router.POST("/products", authRequired, productHandler.Create)
	router.DELETE("/products/:id", authRequired, productHandler.Delete)

	router.POST("/login", authHandler.Login)
	router.POST("/create-user", authHandler.CreateUser)

	return &Server{
		config: cfg,
		logger: logger,
		db:     db,
		router: router,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server on " + addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
