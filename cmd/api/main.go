package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/Shrey0428/ExoticBill/internal/application/service"
	"github.com/Shrey0428/ExoticBill/internal/config"
	"github.com/Shrey0428/ExoticBill/internal/domain/billing"
	"github.com/Shrey0428/ExoticBill/internal/domain/enum"
	"github.com/Shrey0428/ExoticBill/internal/infrastructure/cache"
	"github.com/Shrey0428/ExoticBill/internal/infrastructure/database"
	"github.com/Shrey0428/ExoticBill/internal/infrastructure/repository"
	"github.com/Shrey0428/ExoticBill/internal/presentation/http/handler"
	"github.com/Shrey0428/ExoticBill/internal/presentation/http/routes"
	"github.com/Shrey0428/ExoticBill/pkg/printer"
	"github.com/Shrey0428/ExoticBill/pkg/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Load pricing tables
	card, err := billing.LoadRateCard(cfg.Ledger.RateCardPath)
	if err != nil {
		log.Fatalf("Failed to load rate card: %v", err)
	}
	loc := cfg.Ledger.Location()

	// Report cache
	var reportCache service.ReportCache = cache.NoopCache{}
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Printf("Warning: Redis unavailable, reports will not be cached: %v", err)
		} else {
			defer client.Close()
			reportCache = cache.NewRedisCache(client, cfg.Redis.TTL)
		}
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	tx := repository.NewTransactor(db)
	billRepo := repository.NewBillRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	hoodRepo := repository.NewHoodRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	loyaltyRepo := repository.NewLoyaltyRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	loyaltyService := service.NewLoyaltyService(loyaltyRepo, tx, card)
	billingService := service.NewBillingService(billRepo, employeeRepo, membershipRepo, loyaltyService, tx, reportCache, card)
	membershipService := service.NewMembershipService(membershipRepo, billingService, tx, reportCache, card)
	billService := service.NewBillService(billRepo, tx, reportCache)
	employeeService := service.NewEmployeeService(employeeRepo, hoodRepo, reportCache, card)
	hoodService := service.NewHoodService(hoodRepo, employeeRepo, tx, reportCache)
	shiftService := service.NewShiftService(shiftRepo, employeeRepo, tx)
	reportService := service.NewReportService(analyticsRepo, billRepo, employeeRepo, membershipRepo, membershipService, loyaltyService, reportCache, loc)
	exportService := service.NewExportService(billRepo, loc)

	authService, err := service.NewAuthService([]service.Credential{
		{Username: cfg.Auth.Admin.Username, Password: cfg.Auth.Admin.Password, Role: enum.RoleAdmin},
		{Username: cfg.Auth.User.Username, Password: cfg.Auth.User.Password, Role: enum.RoleStandardUser},
	}, jwtManager, membershipService)
	if err != nil {
		log.Fatalf("Failed to configure accounts: %v", err)
	}

	// Startup housekeeping
	startup, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if archived, err := membershipService.SweepExpired(startup); err != nil {
		log.Printf("Warning: startup membership sweep failed: %v", err)
	} else {
		log.Printf("Startup membership sweep archived %d memberships", archived)
	}
	if err := idempotencyRepo.DeleteExpired(startup, time.Now()); err != nil {
		log.Printf("Warning: Failed to purge expired idempotency keys: %v", err)
	}
	cancel()

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, billRepo, employeeRepo, card, service.PrinterOptions{
		Type:     cfg.Printer.Type,
		ShopName: cfg.Ledger.ShopName,
		Width:    cfg.Printer.Width,
		Location: loc,
	})

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Bill:       handler.NewBillHandler(billingService, billService),
		Membership: handler.NewMembershipHandler(membershipService),
		Employee:   handler.NewEmployeeHandler(employeeService, billService, reportService),
		Customer:   handler.NewCustomerHandler(billService, reportService),
		Hood:       handler.NewHoodHandler(hoodService),
		Loyalty:    handler.NewLoyaltyHandler(loyaltyService),
		Shift:      handler.NewShiftHandler(shiftService),
		Report:     handler.NewReportHandler(reportService),
		Export:     handler.NewExportHandler(exportService),
		Catalog:    handler.NewCatalogHandler(card),
		Printer:    handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router, rateLimiter, err := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Principals:      authService,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})
	if err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}
	defer rateLimiter.Stop()

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Printf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
