package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"smartclass24.backend/internal/config"
	"smartclass24.backend/internal/infrastructure/repositories"
	"smartclass24.backend/internal/interfaces/http/handlers"
	"smartclass24.backend/internal/interfaces/http/middleware"
	"smartclass24.backend/internal/usecases"
	"smartclass24.backend/pkg/jwt"
	"smartclass24.backend/pkg/logger"
	"smartclass24.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
			// Repositories match on gorm.ErrDuplicatedKey, which only exists
			// when the driver errors are translated.
			TranslateError: true,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Redis is optional: without it the billing overview just skips its cache
	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Warn(context.Background(), "Redis unavailable, running without cache", zap.Error(err))
		redis.SetClient(nil)
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	accessKeyRepo := repositories.NewAccessKeyRepository(db)
	redemptionRepo := repositories.NewRedemptionRepository(db)
	identityAdmin := repositories.NewIdentityAdmin(db)
	uow := repositories.NewUnitOfWork(db)

	// Usecases
	tenantClaimsUsecase := usecases.NewTenantClaimsUsecase(identityAdmin, userRepo, cfg.Tenancy)
	authUsecase := usecases.NewAuthUsecase(userRepo, identityAdmin, tenantClaimsUsecase, jwtService)
	accessKeyUsecase := usecases.NewAccessKeyUsecase(accessKeyRepo, uow)
	redemptionUsecase := usecases.NewRedemptionUsecase(accessKeyRepo, redemptionRepo, tenantClaimsUsecase, uow)
	billingUsecase := usecases.NewBillingOverviewUsecase(userRepo, accessKeyRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	redemptionHandler := handlers.NewRedemptionHandler(redemptionUsecase)
	accessKeyHandler := handlers.NewAccessKeyHandler(accessKeyUsecase)
	tenantAdminHandler := handlers.NewTenantAdminHandler(tenantClaimsUsecase, billingUsecase)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:        authHandler,
		redemptionHandler:  redemptionHandler,
		accessKeyHandler:   accessKeyHandler,
		tenantAdminHandler: tenantAdminHandler,
		authMiddleware:     middleware.AuthMiddleware(jwtService),
	})

	log.Printf("🚀 SmartClass24 Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
