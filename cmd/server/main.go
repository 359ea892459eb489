package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/staffdesk/employee-manager/internal/api"
	"github.com/staffdesk/employee-manager/internal/config"
	"github.com/staffdesk/employee-manager/internal/database"
	"github.com/staffdesk/employee-manager/internal/database/repository"
	"github.com/staffdesk/employee-manager/internal/database/service"
	"github.com/staffdesk/employee-manager/internal/handler"
	"github.com/staffdesk/employee-manager/internal/logger"
	"github.com/staffdesk/employee-manager/internal/middleware"
)

func main() {
	// 1. Config
	_ = godotenv.Load() // .env is optional, plain environment variables work too
	cfg := config.LoadConfig()

	// 2. Logger
	appLogger := logger.New(cfg)

	appLogger.Info("🚀 Starting employee manager API...",
		"environment", cfg.AppEnv,
		"port", cfg.ServerPort,
	)

	// The token signing secret is deliberately not defaulted
	if cfg.JWTSecret == "" {
		appLogger.Error("❌ JWT_SECRET is not set")
		os.Exit(1)
	}

	// 3. Connect to Database
	db, err := database.EnsureDatabase(cfg, appLogger)
	if err != nil {
		appLogger.Error("❌ Failed to connect to database", "error", err)
		os.Exit(1)
	}

	// 4. Initialize Repositories
	userRepo := repository.NewUserRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)

	// 5. Initialize Services
	authService := service.NewAuthService(userRepo, cfg, appLogger)
	employeeService := service.NewEmployeeService(employeeRepo, appLogger)

	// 6. Initialize Login Limiter
	loginLimiter, err := middleware.NewLoginLimiter(cfg, appLogger)
	if err != nil {
		appLogger.Warn("⚠️ Failed to connect to Redis, using no-op login limiter", "error", err)
		loginLimiter = middleware.NewNoOpLoginLimiter(appLogger)
	}
	defer loginLimiter.Close()

	// 7. Initialize Handlers & Middleware
	authHandler := handler.NewAuthHandler(authService, loginLimiter, appLogger)
	employeeHandler := handler.NewEmployeeHandler(employeeService, appLogger)
	authMiddleware := middleware.NewAuthMiddleware(authService, appLogger)

	// 8. Start HTTP Server
	r := api.SetupRouter(authHandler, employeeHandler, authMiddleware)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	appLogger.Info("🌍 HTTP Server running...", "addr", addr)
	if err := r.Run(addr); err != nil {
		appLogger.Error("❌ HTTP Server failed to start", "error", err)
		os.Exit(1)
	}
}
