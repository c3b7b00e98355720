package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pantrypal/backend/internal/handlers"
	"github.com/pantrypal/backend/internal/middleware"
	"github.com/pantrypal/backend/internal/models"
	"github.com/pantrypal/backend/internal/repositories"
	"github.com/pantrypal/backend/internal/services"
	"github.com/pantrypal/backend/pkg/config"
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
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, cfg *config.Config) {
	// AutoMigrate PostgreSQL models
	if err := pgdb.AutoMigrate(&models.Notification{}); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	mgDB := mgClient.Database(cfg.MongoDatabase)
	userRepo := repositories.NewMongoUserRepository(mgDB)
	recipeRepo := repositories.NewMongoRecipeRepository(mgDB)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)

	// --- Initialize Services ---
	followService := services.NewFollowService(userRepo, cfg.StoreTimeout)
	engagementService := services.NewEngagementService(userRepo, recipeRepo, cfg.StoreTimeout)
	scoringService := services.NewScoringService(userRepo, cfg.StoreTimeout)

	// --- Unprotected routes ---
	authGroup := e.Group("/api/auth")
	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	public := e.Group("/api")
	userHandler := handlers.NewUserHandler(userRepo, scoringService)
	userHandler.RegisterLeaderboardRoute(public)

	recipeHandler := handlers.NewRecipeHandler(recipeRepo, userRepo, scoringService)
	recipeHandler.RegisterPublicRecipeRoutes(public)
	log.Println("Public routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	userHandler.RegisterProfileRoutes(api)
	recipeHandler.RegisterRecipeRoutes(api)

	followHandler := handlers.NewFollowHandler(followService, notificationRepo)
	followHandler.RegisterFollowRoutes(api)

	engagementHandler := handlers.NewEngagementHandler(engagementService, notificationRepo)
	engagementHandler.RegisterEngagementRoutes(api)

	commentHandler := handlers.NewCommentHandler(engagementService)
	commentHandler.RegisterCommentRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	log.Println("All routes configured.")
}
