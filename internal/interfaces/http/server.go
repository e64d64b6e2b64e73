package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/pkg/auth"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Server is the dev API: a local stand-in for the remote storefront origin.
// It serves the full endpoint surface the client consumes, backed by an
// in-memory sqlite database by default (postgres via env for a longer-lived
// instance). It implements no order-processing semantics; orders are
// numbered, stored and echoed back.
type Server struct {
	config     *config.Config
	logger     *logrus.Logger
	db         *gorm.DB
	gin        *gin.Engine
	httpServer *http.Server
	jwt        *auth.JWTManager
	passwords  *auth.PasswordManager
}

// NewServer creates a dev API server, opens its database, runs migrations
// and seeds the catalog.
func NewServer(cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	db, err := openDatabase(cfg)
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&UserRecord{},
		&ProductRecord{},
		&CategoryRecord{},
		&AddressRecord{},
		&CardRecord{},
		&OrderRecord{},
		&OrderItemRecord{},
	); err != nil {
		return nil, fmt.Errorf("devapi: migrate: %w", err)
	}

	s := &Server{
		config:    cfg,
		logger:    logger,
		db:        db,
		jwt:       auth.NewJWTManager(cfg),
		passwords: auth.NewPasswordManager(cfg),
	}

	if err := s.seedCatalog(); err != nil {
		return nil, fmt.Errorf("devapi: seed: %w", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.TestMode)
	}

	s.gin = gin.New()
	s.gin.Use(gin.Recovery())
	s.gin.Use(s.requestLogger())
	s.setupRoutes()

	return s, nil
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}
	switch cfg.DevAPI.DBDriver {
	case "postgres":
		db, err := gorm.Open(postgres.Open(cfg.GetDevAPIDSN()), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("devapi: open postgres: %w", err)
		}
		return db, nil
	default:
		dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", cfg.DevAPI.DBName)
		db, err := gorm.Open(sqlite.Open(dsn), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("devapi: open sqlite: %w", err)
		}
		return db, nil
	}
}

// Router exposes the gin engine; tests mount it on an httptest server.
func (s *Server) Router() http.Handler {
	return s.gin
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         ":" + s.config.DevAPI.Port,
		Handler:      s.gin,
		ReadTimeout:  s.config.DevAPI.ReadTimeout,
		WriteTimeout: s.config.DevAPI.WriteTimeout,
		IdleTimeout:  s.config.DevAPI.IdleTimeout,
	}

	s.logger.WithField("port", s.config.DevAPI.Port).Info("dev API listening")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("devapi: start: %w", err)
	}
	return nil
}

// Stop gracefully stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("devapi: shutdown: %w", err)
	}
	return nil
}

// setupRoutes wires the endpoint surface the storefront client consumes
// under /api.
func (s *Server) setupRoutes() {
	s.gin.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.gin.Group("/api")
	{
		api.GET("/products", s.listProducts)
		api.GET("/products/:id", s.getProduct)
		api.GET("/categories", s.listCategories)

		api.POST("/login", s.login)
		api.POST("/signup", s.signup)

		authed := api.Group("")
		authed.Use(s.authRequired())
		{
			authed.GET("/verify", s.verify)

			authed.GET("/user/address", s.listAddresses)
			authed.POST("/user/address", s.createAddress)
			authed.PUT("/user/address/:id", s.updateAddress)
			authed.DELETE("/user/address/:id", s.deleteAddress)

			authed.GET("/user/card", s.listCards)
			authed.POST("/user/card", s.createCard)
			authed.DELETE("/user/card/:id", s.deleteCard)

			authed.GET("/order", s.listOrders)
			authed.POST("/order", s.createOrder)
		}
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		entry := s.logger.WithFields(logrus.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
			"request_id":  c.GetHeader("X-Request-ID"),
		})
		if c.Writer.Status() >= 500 {
			entry.Error("request completed with server error")
		} else {
			entry.Debug("request completed")
		}
	}
}
