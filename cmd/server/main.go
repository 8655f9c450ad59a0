package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vyanhpham/rosea-backend/config"
	"github.com/vyanhpham/rosea-backend/internal/app/controller"
	"github.com/vyanhpham/rosea-backend/internal/app/repository"
	"github.com/vyanhpham/rosea-backend/internal/app/service"
	"github.com/vyanhpham/rosea-backend/internal/db"
	"github.com/vyanhpham/rosea-backend/internal/middleware"
	"github.com/vyanhpham/rosea-backend/internal/router"
	"github.com/vyanhpham/rosea-backend/internal/storage"
	"github.com/vyanhpham/rosea-backend/pkg/logger"
	"github.com/vyanhpham/rosea-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: cfg.Server.Environment == "development",
	})

	logger.Info("Starting ROSEA Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis is optional; without it token revocation degrades to
	// expiry-only validation.
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, token revocation disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	subcategoryRepo := repository.NewSubcategoryRepository(db.GetDB())
	brandRepo := repository.NewBrandRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	variantRepo := repository.NewVariantRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWT)
	categoryService := service.NewCategoryService(categoryRepo, subcategoryRepo)
	brandService := service.NewBrandService(brandRepo)
	productService := service.NewProductService(productRepo, categoryRepo, subcategoryRepo, brandRepo)
	variantService := service.NewVariantService(variantRepo, db.GetDB())
	orderService := service.NewOrderService(orderRepo, db.GetDB())

	s3Storage := storage.NewS3Storage(&cfg.S3)

	// Controllers
	authController := controller.NewAuthController(authService)
	categoryController := controller.NewCategoryController(categoryService)
	brandController := controller.NewBrandController(brandService)
	productController := controller.NewProductController(productService)
	variantController := controller.NewVariantController(variantService)
	orderController := controller.NewOrderController(orderService)
	uploadController := controller.NewUploadController(s3Storage)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	r := router.NewRouter(
		authController,
		categoryController,
		brandController,
		productController,
		variantController,
		orderController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
