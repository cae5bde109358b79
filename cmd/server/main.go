package main

import (
	"log"
	"net/http"
	"os"

	_ "apoteka/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"apoteka/internal/auth"
	"apoteka/internal/cache"
	"apoteka/internal/config"
	"apoteka/internal/db"
	"apoteka/internal/handler"
	"apoteka/internal/model"
	"apoteka/internal/repository"
	"apoteka/internal/router"
	"apoteka/internal/service"
)

// @title Pharmacy Management API
// @version 1.0
// @description Pharmacy backend with inventory, shopping cart checkout, staff tasks and JWT cookie authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name access_token
func main() {
	cfg := config.Load()

	e := echo.New()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.TemperatureHumidityLog{},
			&model.Notification{},
			&model.WorkHour{},
			&model.Task{},
			&model.CartItem{},
			&model.StockLog{},
			&model.Medicine{},
			&model.Supplier{},
			&model.MedicineType{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.MedicineType{},
		&model.Supplier{},
		&model.Medicine{},
		&model.StockLog{},
		&model.CartItem{},
		&model.Task{},
		&model.WorkHour{},
		&model.Notification{},
		&model.TemperatureHumidityLog{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	medicineRepo := repository.NewMedicineRepository(gormDB)
	stockLogRepo := repository.NewStockLogRepository(gormDB)
	cartRepo := repository.NewCartRepository(gormDB)
	typeRepo := repository.NewMedicineTypeRepository(gormDB)
	supplierRepo := repository.NewSupplierRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	notificationRepo := repository.NewNotificationRepository(gormDB)
	climateRepo := repository.NewClimateRepository(gormDB)

	// Initialize auth components
	tokenService := auth.NewTokenService(cfg.JWTSecret)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokenService, cfg.TokenTTL)
	userService := service.NewUserService(userRepo, cacheClient)
	medicineService := service.NewMedicineService(medicineRepo, typeRepo, stockLogRepo, cacheClient)
	cartService := service.NewCartService(cartRepo, medicineRepo)
	checkoutService := service.NewCheckoutService(medicineRepo, cartRepo, stockLogRepo, cacheClient)
	taskService := service.NewTaskService(taskRepo, userRepo, notificationRepo)
	lookupService := service.NewLookupService(typeRepo, supplierRepo)
	climateService := service.NewClimateService(climateRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	medicineHandler := handler.NewMedicineHandler(medicineService)
	cartHandler := handler.NewCartHandler(cartService, checkoutService)
	taskHandler := handler.NewTaskHandler(taskService)
	lookupHandler := handler.NewLookupHandler(lookupService)
	climateHandler := handler.NewClimateHandler(climateService)

	// Register routes
	router.Register(
		e,
		cfg,
		userRepo,
		authHandler,
		userHandler,
		medicineHandler,
		cartHandler,
		taskHandler,
		lookupHandler,
		climateHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: http://%s/api-docs", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/api-docs", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
