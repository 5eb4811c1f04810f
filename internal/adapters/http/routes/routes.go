package routes

import (
	"hrdocs-api/internal/adapters/http/handlers"
	"hrdocs-api/internal/adapters/http/middleware"
	"hrdocs-api/internal/adapters/persistence/repositories"
	"hrdocs-api/internal/config"
	"hrdocs-api/internal/core/services"
	"hrdocs-api/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	employeeRepo := repositories.NewEmployeeRepository(db)

	// Initialize services
	issuer := jwt.NewIssuer(cfg.JWT.Secret, cfg.JWT.RefreshSecret, cfg.JWT.AccessTTL(), cfg.JWT.RefreshTTL())
	authService := services.NewAuthService(userRepo, refreshTokenRepo, employeeRepo, issuer)
	userService := services.NewUserService(userRepo)
	employeeService := services.NewEmployeeService(employeeRepo, userRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.AppMode, func() error { return config.Ping(db) })
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	authRoutes := apiV1.Group("/auth", middleware.NoCacheHeaders())
	setupAuthRoutes(authRoutes, authHandler, authService, cfg)

	// User management routes (Admin only)
	userRoutes := apiV1.Group("/users", middleware.AuthMiddleware(authService), middleware.AdminOnly())
	setupUserRoutes(userRoutes, userHandler)

	// Employee management routes (Admin only)
	employeeRoutes := apiV1.Group("/employees", middleware.AuthMiddleware(authService), middleware.AdminOnly())
	setupEmployeeRoutes(employeeRoutes, employeeHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, identities middleware.IdentityResolver, cfg *config.Config) {
	// Public routes
	if cfg.IsProd() {
		router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
		router.Post("/refresh", middleware.AuthRateLimiter(), handler.Refresh)
	} else {
		router.Post("/login", handler.Login)
		router.Post("/refresh", handler.Refresh)
	}
	router.Post("/logout", middleware.OptionalAuth(identities), handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(identities), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(identities), handler.LogoutAll)
}

// setupUserRoutes configures user management routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.ListUsers)
	router.Post("/", handler.CreateUser)
	router.Get("/:id", handler.GetUser)
	router.Patch("/:id", handler.UpdateUser)
	router.Delete("/:id", handler.DeleteUser)
}

// setupEmployeeRoutes configures employee management routes
func setupEmployeeRoutes(router fiber.Router, handler *handlers.EmployeeHandler) {
	router.Get("/", handler.ListEmployees)
	router.Post("/", handler.CreateEmployee)
	router.Get("/:id", handler.GetEmployee)
	router.Patch("/:id", handler.UpdateEmployee)
	router.Delete("/:id", handler.DeleteEmployee)
}
