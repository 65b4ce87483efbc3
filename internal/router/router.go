package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/itgram/backend/internal/handlers"
	"github.com/itgram/backend/internal/middleware"
	"github.com/itgram/backend/internal/models"
	"github.com/itgram/backend/internal/notify"
	"github.com/itgram/backend/internal/realtime"
	"github.com/itgram/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
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
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Comment{},
		&models.Like{},
		&models.CommentLike{},
		&models.Follow{},
		&models.SavedPost{},
		&models.StorySeen{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	mongoDB := mgClient.Database("itgram")

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mongoDB)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	commentLikeRepo := repositories.NewPostgresCommentLikeRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	savedPostRepo := repositories.NewPostgresSavedPostRepository(pgdb)
	storyRepo := repositories.NewStoryRepository(mongoDB, pgdb)
	notificationRepo := repositories.NewMongoNotificationRepository(mongoDB)
	messageRepo := repositories.NewMongoMessageRepository(mongoDB)
	jobRepo := repositories.NewMongoJobRepository(mongoDB)

	// --- Realtime layer ---
	// One hub per process. Every connected socket registers here; action
	// handlers push through the emitter and never touch sockets directly.
	hub := realtime.NewHub()
	emitter := realtime.NewEmitter(hub)
	notifier := notify.NewService(notificationRepo, userRepo, emitter)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// WebSocket endpoint. Lives inside the authenticated group: the socket
	// identity comes from the verified JWT, not from the client.
	wsHandler := realtime.NewWSHandler(hub, userRepo)
	wsHandler.RegisterRoutes(api)
	log.Println("WebSocket routes configured.")

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)
	api.GET("/users/search", userHandler.SearchUsers)
	log.Println("User profile routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, userRepo, followRepo, notifier)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(followRepo, userRepo, notifier)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, userRepo, commentLikeRepo, notifier)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	// Like routes
	likeHandler := handlers.NewLikeHandler(likeRepo, postRepo, userRepo, notifier)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	// Saved post routes
	savedPostHandler := handlers.NewSavedPostHandler(savedPostRepo, postRepo)
	savedPostHandler.RegisterSavedPostRoutes(api)
	log.Println("Saved post routes configured.")

	// Story routes
	storyHandler := handlers.NewStoryHandler(storyRepo, userRepo, followRepo, notifier)
	storyHandler.RegisterStoryRoutes(api)
	log.Println("Story routes configured.")

	// Message routes
	messageHandler := handlers.NewMessageHandler(messageRepo, userRepo, notifier, emitter)
	messageHandler.RegisterMessageRoutes(api)
	log.Println("Message routes configured.")

	// Job routes
	jobHandler := handlers.NewJobHandler(jobRepo, userRepo, notifier)
	jobHandler.RegisterJobRoutes(api)
	log.Println("Job routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo, postRepo, jobRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	// Admin routes
	adminHandler := handlers.NewAdminHandler(userRepo, postRepo, jobRepo)
	adminHandler.RegisterAdminRoutes(api)
	log.Println("Admin routes configured.")

	log.Println("All routes configured.")
}
