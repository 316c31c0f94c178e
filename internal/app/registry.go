package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hr-admin/internal/access"
	"hr-admin/internal/auth"
	"hr-admin/internal/config"
	"hr-admin/internal/employee"
	"hr-admin/internal/messaging/kafka"
	"hr-admin/internal/middleware"
	"hr-admin/internal/routemap"
	"hr-admin/internal/schema"
	"hr-admin/internal/shared/listcache"
	"hr-admin/internal/shared/response"
	"hr-admin/internal/user"
	"hr-admin/internal/vacation"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	cfg config.Config,
) error {
	logger := zap.L()
	isProd := cfg.AppEnv == "production"

	// Unsupported verbs on known routes answer 405, not 404.
	router.HandleMethodNotAllowed = true
	router.NoMethod(response.MethodNotAllowed)

	router.Use(middleware.RequestID())

	// --- Capability rules ---
	enforcer, err := access.NewEnforcer(config.App())
	if err != nil {
		return err
	}

	// --- Entity descriptors ---
	registry := schema.NewRegistry(
		employee.Schema(),
		vacation.Schema(),
	)
	employeeDesc, _ := registry.Get(routemap.EntityFor("employees"))
	vacationDesc, _ := registry.Get(routemap.EntityFor("vacation-requests"))

	cache := listcache.New(rdb, logger)

	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	vacationRepo := vacation.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	authService := auth.NewService(userRepo, cfg.JWTSecret)
	userService := user.NewService(userRepo, logger)
	employeeService := employee.NewService(db, employeeRepo, cache, logger)
	vacationService := vacation.NewServiceWithOutbox(db, vacationRepo, outboxRepo, cache, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, isProd)
	userHandler := user.NewHandler(userService, logger)
	employeeHandler := employee.NewHandler(employeeService, employeeDesc, logger)
	vacationHandler := vacation.NewHandler(vacationService, vacationDesc, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, cfg.JWTSecret)
		user.RegisterRoutes(api, userHandler, enforcer, cfg.JWTSecret, logger)
		employee.RegisterRoutes(api, employeeHandler, enforcer, rdb, cfg.JWTSecret, logger)
		vacation.RegisterRoutes(api, vacationHandler, enforcer, rdb, cfg.JWTSecret, logger)
	}

	return nil
}
