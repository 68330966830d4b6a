package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/stockguard/damage_service/config"
	"github.com/stockguard/damage_service/infra/queue"
	"github.com/stockguard/damage_service/internal/api/rest/handlers"
	"github.com/stockguard/damage_service/internal/api/rest/middleware"
	"github.com/stockguard/damage_service/internal/domain"
	"github.com/stockguard/damage_service/internal/helper"
	"github.com/stockguard/damage_service/internal/repository"
	"github.com/stockguard/damage_service/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Customer{},
		&domain.Product{},
		&domain.WarehouseLocation{},
		&domain.DamageReport{},
		&domain.StatusHistory{},
		&domain.AuditLog{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	seedAdmin(db, cfg)

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)

	authHelper := helper.SetupAuth(cfg.AccessSecret)

	// ---------- Repositories ----------
	reportRepo := repository.NewReportRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// ---------- Services ----------
	auditSvc := services.NewAuditService(auditRepo)
	notifySvc := services.NewNotificationService(kafkaProducer)
	userSvc := services.NewUserService(userRepo, auditSvc, authHelper)
	reportSvc := services.NewReportService(reportRepo, customerRepo, productRepo, auditSvc, notifySvc)
	catalogSvc := services.NewCatalogService(customerRepo, productRepo, locationRepo, auditSvc)
	importSvc := services.NewImportService(customerRepo, productRepo, userRepo, locationRepo, auditSvc)

	// ---------- Handlers ----------
	userHandler := handlers.NewUserHandler(userSvc, auditSvc)
	reportHandler := handlers.NewReportHandler(reportSvc, userSvc)
	catalogHandler := handlers.NewCatalogHandler(catalogSvc)
	importHandler := handlers.NewImportHandler(importSvc, userSvc)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	userHandler.SetupPublicRoutes(app)

	app.Use(middleware.AuthMiddleware(authHelper))

	userHandler.SetupRoutes(app)
	reportHandler.SetupRoutes(app)
	catalogHandler.SetupRoutes(app)
	importHandler.SetupRoutes(app)

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}

func seedAdmin(db *gorm.DB, cfg config.Config) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}

	var existing domain.User
	err := db.Where("email = ?", cfg.AdminEmail).First(&existing).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("seed admin: lookup error: %v", err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("seed admin: hash error: %v", err)
		return
	}

	_ = db.Create(&domain.User{
		Email:        cfg.AdminEmail,
		Username:     "admin",
		PasswordHash: string(hashed),
		DisplayName:  "Administrator",
		Role:         domain.RoleAdmin,
		Status:       "active",
	}).Error
}
