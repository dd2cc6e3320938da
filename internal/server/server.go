package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/yukikurage/todo-api/internal/cache"
	"github.com/yukikurage/todo-api/internal/config"
	"github.com/yukikurage/todo-api/internal/database"
	"github.com/yukikurage/todo-api/internal/services"
	"gorm.io/gorm"
)

// Server wraps the HTTP server and the connections it owns.
type Server struct {
	httpServer *http.Server
	db         *gorm.DB
	redis      *redis.Client
}

// New connects to the database, migrates the schema and builds the HTTP server.
func New(cfg *config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	gin.SetMode(cfg.GinMode)

	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(db); err != nil {
		closeDB(db)
		return nil, err
	}

	var rdb *redis.Client
	var listCache services.TodoListCache
	if cfg.RedisAddr != "" {
		rdb, err = cache.Connect(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			closeDB(db)
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		listCache = cache.NewTodoCache(rdb, cfg.CacheTTL)
		log.Printf("Caching todo listing in redis at %s", cfg.RedisAddr)
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      NewRouter(db, cfg, listCache),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		db:         db,
		redis:      rdb,
	}, nil
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	log.Printf("Server starting on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones and closes
// its connections.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if s.redis != nil {
		_ = s.redis.Close()
	}
	closeDB(s.db)
	return err
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	_ = sqlDB.Close()
}
