package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-api/internal/config"
	"github.com/yukikurage/todo-api/internal/handlers"
	"github.com/yukikurage/todo-api/internal/middleware"
	"github.com/yukikurage/todo-api/internal/repository"
	"github.com/yukikurage/todo-api/internal/services"
	"gorm.io/gorm"
)

// NewRouter wires repositories, services and handlers onto a gin engine.
// listCache may be nil.
func NewRouter(db *gorm.DB, cfg *config.Config, listCache services.TodoListCache) *gin.Engine {
	userRepo := repository.NewUserRepository(db)
	todoRepo := repository.NewTodoRepository(db)

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := services.NewAuthService(userRepo, tokenService, cfg.BcryptCost, cfg.LoginTokenTTL)
	todoService := services.NewTodoService(todoRepo)
	if listCache != nil {
		todoService.WithCache(listCache)
	}

	authHandler := handlers.NewAuthHandler(authService)
	todoHandler := handlers.NewTodoHandler(todoService)
	requireAuth := middleware.RequireAuth(tokenService)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), corsMiddleware(cfg.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Todo API is running",
		})
	})

	// Auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/create/user", authHandler.CreateUser)
		auth.POST("/token", authHandler.Token)
		auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
	}

	// Todo routes; only the full listing is public
	r.GET("/", todoHandler.ReadAll)
	r.GET("/todos/user", requireAuth, todoHandler.ReadUserTodos)
	r.GET("/todo/:id", requireAuth, todoHandler.ReadTodo)
	r.POST("/", requireAuth, todoHandler.CreateTodo)
	r.PUT("/:id", requireAuth, todoHandler.UpdateTodo)
	r.DELETE("/:id", requireAuth, todoHandler.DeleteTodo)

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"WWW-Authenticate"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	return cors.New(corsConfig)
}
