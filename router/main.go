package router

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/reelflip/jeeprep-api/config"
	"github.com/reelflip/jeeprep-api/database"
	"github.com/reelflip/jeeprep-api/handlers"
	admin_handlers "github.com/reelflip/jeeprep-api/handlers/admin"
	ai_handlers "github.com/reelflip/jeeprep-api/handlers/aichat"
	auth_handlers "github.com/reelflip/jeeprep-api/handlers/auth"
	chapter_handlers "github.com/reelflip/jeeprep-api/handlers/chapter"
	mocktest_handlers "github.com/reelflip/jeeprep-api/handlers/mocktest"
	question_handlers "github.com/reelflip/jeeprep-api/handlers/question"
	"github.com/reelflip/jeeprep-api/services"
	"github.com/reelflip/jeeprep-api/services/ai"
	"github.com/reelflip/jeeprep-api/utils/auth"
	"github.com/reelflip/jeeprep-api/utils/middleware"
)

func SetupRoutes(app *fiber.App, store *database.Store, env *config.EnviornmentVariable) {
	jwtSecret := env.JWT_SECRET
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := env.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "jeeprep-api"
	}

	// Initialize JWT manager with config
	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: jwtSecret,
		Expiry: 24 * time.Hour, // Access token expires in 24 hours
		Issuer: jwtIssuer,
	})

	// Auth middleware resolves tokens against the live document so blocked
	// users lose access immediately
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, store)

	// Domain services over the shared document store
	authService := services.NewAuthService(store)
	chapterService := services.NewChapterService(store)
	questionService := services.NewQuestionService(store)
	mockTestService := services.NewMockTestService(store)
	adminService := services.NewAdminService(store)
	configService := services.NewConfigService(store)

	// AI collaborator; a missing API key leaves the client nil-equivalent and
	// every endpoint serves its fallback
	aiClient := ai.NewClient(ai.Config{
		APIKey:  env.AI_API_KEY,
		BaseURL: env.AI_BASE_URL,
	})
	aiService := ai.NewService(aiClient, store)

	authHandler := auth_handlers.NewAuthHandler(authService, jwtManager)
	chapterHandler := chapter_handlers.NewChapterHandler(chapterService)
	questionHandler := question_handlers.NewQuestionHandler(questionService)
	mockTestHandler := mocktest_handlers.NewMockTestHandler(mockTestService)
	adminHandler := admin_handlers.NewAdminHandler(adminService, configService)
	aiHandler := ai_handlers.NewAIHandler(aiService)

	// Health check endpoint (public)
	app.Get("/ping", handlers.HandleCheckHealth)

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/recover", authHandler.Recover)
	authGroup.Get("/me", authMiddleware.Required(), authHandler.Me)

	// Chapter routes: students see their own instances, admins the catalog
	chapterGroup := api.Group("/chapters", authMiddleware.Required())
	chapterGroup.Get("/", chapterHandler.List)
	chapterGroup.Post("/", chapterHandler.Create)
	chapterGroup.Put("/:id", chapterHandler.Update)
	chapterGroup.Post("/:id/quiz-result", chapterHandler.QuizResult)
	chapterGroup.Post("/:id/study-time", chapterHandler.StudyTime)
	chapterGroup.Post("/:id/video-watched", chapterHandler.VideoWatched)

	// Question pool routes (admin writes, any authenticated reads)
	questionGroup := api.Group("/questions", authMiddleware.Required())
	questionGroup.Get("/", questionHandler.List)
	questionGroup.Post("/", authMiddleware.RequireAdmin(), questionHandler.Create)
	questionGroup.Delete("/:id", authMiddleware.RequireAdmin(), questionHandler.Delete)

	// Mock test routes
	mockGroup := api.Group("/mock-tests", authMiddleware.Required())
	mockGroup.Get("/", mockTestHandler.List)
	mockGroup.Post("/", mockTestHandler.Create)
	mockGroup.Get("/masters", mockTestHandler.ListMasters)
	mockGroup.Post("/masters", authMiddleware.RequireAdmin(), mockTestHandler.CreateMaster)
	mockGroup.Post("/masters/:id/submit", mockTestHandler.Submit)
	mockGroup.Delete("/:id", mockTestHandler.Delete)

	// AI routes (authenticated, fallbacks on any upstream failure)
	aiGroup := api.Group("/ai", authMiddleware.Required())
	aiGroup.Get("/plan", aiHandler.Plan)
	aiGroup.Post("/chat", aiHandler.Chat)
	aiGroup.Get("/insights", aiHandler.Insights)

	// Admin routes
	adminGroup := api.Group("/admin", authMiddleware.RequireAdmin())
	adminGroup.Get("/users", adminHandler.ListUsers)
	adminGroup.Post("/users", adminHandler.CreateUser)
	adminGroup.Put("/users/:id", adminHandler.UpdateUser)
	adminGroup.Delete("/users/:id", adminHandler.DeleteUser)
	adminGroup.Get("/logs", adminHandler.Logs)
	adminGroup.Get("/stats", adminHandler.Stats)
	adminGroup.Get("/config", adminHandler.GetConfig)
	adminGroup.Put("/config", adminHandler.UpdateConfig)
}
