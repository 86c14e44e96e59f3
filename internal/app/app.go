package app

import (
	"errors"
	"fmt"

	"fairway_backend/database"
	"fairway_backend/internal/config"
	"fairway_backend/internal/email"
	"fairway_backend/internal/handlers"
	"fairway_backend/internal/logger"
	"fairway_backend/internal/middleware"
	"fairway_backend/internal/models"
	"fairway_backend/internal/repositories"
	chatrepo "fairway_backend/internal/repositories/chat"
	"fairway_backend/internal/routes"
	"fairway_backend/internal/services"
	chatservice "fairway_backend/internal/services/chat"
	"fairway_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires repositories, services and handlers, returning a ready
// gin engine. Split out so integration tests can mount the full API against
// a test database.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	mailer := email.NewProvider(cfg.Email)
	if !cfg.Email.Enabled {
		logger.Warn("Email disabled, notifications will be logged only")
	}

	userRepo := repositories.NewUserRepository(gormDB)
	coachRepo := repositories.NewCoachRepository(gormDB)
	studentRepo := repositories.NewStudentRepository(gormDB)
	bookingRepo := repositories.NewBookingRepository(gormDB)
	reviewRepo := repositories.NewReviewRepository(gormDB)
	convRepo := chatrepo.NewConversationRepository(gormDB)
	msgRepo := chatrepo.NewMessageRepository(gormDB)

	authService := services.NewAuthService(userRepo, coachRepo, studentRepo)
	coachService := services.NewCoachService(coachRepo, userRepo, mailer)
	bookingService := services.NewBookingService(bookingRepo, coachRepo, mailer)
	reviewService := services.NewReviewService(reviewRepo, bookingRepo, coachRepo)
	chatService := chatservice.NewChatService(convRepo, msgRepo, userRepo)

	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	appHandlers := &handlers.AppHandlers{
		AuthHandler:    handlers.NewAuthHandler(baseHandler, authService),
		CoachHandler:   handlers.NewCoachHandler(baseHandler, coachService, reviewService),
		BookingHandler: handlers.NewBookingHandler(baseHandler, bookingService),
		ChatHandler:    handlers.NewChatHandler(baseHandler, chatService),
		ReviewHandler:  handlers.NewReviewHandler(baseHandler, reviewService),
		AdminHandler:   handlers.NewAdminHandler(baseHandler, coachService),
	}

	ginRouter := initializeGinRouter()
	routes.RegisterRoutes(ginRouter, appHandlers)
	return ginRouter
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}

// seedFirstAdmin creates the bootstrap admin account from config on first
// start. On later starts it is a no-op.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	var adminUser models.User
	result := db.Where("email = ?", adminEmail).First(&adminUser)
	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found. Creating first admin...", "email", adminEmail)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
		AuthProvider: "local",
	}
	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("First admin created", "email", adminEmail)
	return nil
}
