package router

import (
	"log"
	"time"

	"github.com/devrakib/socialspace/backend/internal/handlers"
	"github.com/devrakib/socialspace/backend/internal/middleware"
	"github.com/devrakib/socialspace/backend/internal/models"
	"github.com/devrakib/socialspace/backend/internal/repositories"
	"github.com/devrakib/socialspace/backend/internal/services"
	"github.com/devrakib/socialspace/backend/pkg/config"
	"github.com/devrakib/socialspace/backend/pkg/storage"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, rdb *redis.Client, mediaStorage storage.MediaStorage) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize store and services ---
	store := repositories.NewPostgresStore(pgdb)
	notificationService := services.NewNotificationService(store)
	interactionService := services.NewInteractionService(store, notificationService)
	feedService := services.NewFeedService(store)
	postService := services.NewPostService(store)
	userService := services.NewUserService(store, cfg.JWTSecret)

	// --- Unprotected routes ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userService, mediaStorage)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	if gridfsStorage, ok := mediaStorage.(*storage.GridFSStorage); ok {
		mediaHandler := handlers.NewMediaHandler(gridfsStorage)
		mediaHandler.RegisterMediaRoutes(e)
		log.Println("Media routes configured.")
	}

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	api.Use(middleware.RateLimitWrites(rdb, "write", time.Second))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// User profile routes
	userHandler := handlers.NewUserHandler(userService, mediaStorage)
	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postService, mediaStorage)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	// Feed routes
	feedHandler := handlers.NewFeedHandler(feedService)
	feedHandler.RegisterFeedRoutes(api)
	log.Println("Feed routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(interactionService, store.Follows())
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(interactionService)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	// Like routes
	likeHandler := handlers.NewLikeHandler(interactionService)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
}
