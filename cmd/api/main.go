package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/discount-label-api/internal/application/service"
	"github.com/sangkips/discount-label-api/internal/config"
	domainRepo "github.com/sangkips/discount-label-api/internal/domain/repository"
	"github.com/sangkips/discount-label-api/internal/infrastructure/catalog"
	"github.com/sangkips/discount-label-api/internal/infrastructure/database"
	"github.com/sangkips/discount-label-api/internal/infrastructure/repository"
	"github.com/sangkips/discount-label-api/internal/infrastructure/sqlite"
	"github.com/sangkips/discount-label-api/internal/presentation/http/handler"
	"github.com/sangkips/discount-label-api/internal/presentation/http/routes"
	"github.com/sangkips/discount-label-api/pkg/printer"
	"github.com/sangkips/discount-label-api/pkg/utils"
)

type repositories struct {
	scans       domainRepo.ScanRepository
	settings    domainRepo.SettingsRepository
	idempotency domainRepo.IdempotencyRepository
}

// openRepositories connects the configured database. Stations run on a
// local SQLite file; a shared PostgreSQL is used when labels are managed
// centrally.
func openRepositories(cfg *config.Config) (*repositories, error) {
	switch cfg.Database.Driver {
	case "postgres":
		db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
		if err != nil {
			return nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, err
		}
		return &repositories{
			scans:       repository.NewScanRepository(db),
			settings:    repository.NewSettingsRepository(db),
			idempotency: repository.NewIdempotencyRepository(db),
		}, nil
	default:
		db, err := database.NewSQLiteDB(&cfg.Database)
		if err != nil {
			return nil, err
		}
		return &repositories{
			scans:       sqlite.NewScanRepository(db),
			settings:    sqlite.NewSettingsRepository(db),
			idempotency: sqlite.NewIdempotencyRepository(db),
		}, nil
	}
}

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	repos, err := openRepositories(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	catalogClient := catalog.NewClient(catalog.Config{
		BaseURL:      cfg.Catalog.BaseURL,
		Token:        cfg.Catalog.Token,
		ClientID:     cfg.Catalog.ClientID,
		ClientSecret: cfg.Catalog.ClientSecret,
		TokenURL:     cfg.Catalog.TokenURL,
		Timeout:      cfg.Catalog.Timeout,
	})

	// Initialize label printer
	printerCfg := printer.Config{
		Type:       cfg.Printer.Type,
		SerialPort: cfg.Printer.SerialPort,
		BaudRate:   cfg.Printer.BaudRate,
		USBPath:    cfg.Printer.USBPath,
		Address:    cfg.Printer.Address,
	}
	labelPrinter, err := printer.NewPrinterFromConfig(printerCfg)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		labelPrinter = printer.NewNullPrinter()
		printerCfg = printer.Config{Type: printer.TypeNone}
	}
	conn := printer.NewConnection(labelPrinter, printerCfg)
	defer conn.Close()

	// Initialize services
	settingsService := service.NewSettingsService(repos.settings, cfg.Discount)
	scanService := service.NewScanService(repos.scans, settingsService, catalogClient)
	labelService := service.NewLabelService(repos.scans)
	printerService := service.NewPrinterService(conn, repos.scans, settingsService, printer.NewPrinterFromConfig)

	// A printer connected from the UI survives restarts
	if err := printerService.Restore(context.Background()); err != nil {
		log.Printf("Warning: Failed to restore saved printer: %v", err)
	}

	go purgeIdempotencyKeys(repos.idempotency, time.Hour)

	rateLimiter := routes.NewRateLimiter(&cfg.RateLimit)
	defer rateLimiter.Stop()

	handlers := &routes.Handlers{
		Health:   handler.NewHealthHandler(cfg.App.Name, printerService),
		Settings: handler.NewSettingsHandler(settingsService),
		Scan:     handler.NewScanHandler(scanService),
		Label:    handler.NewLabelHandler(labelService),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: repos.idempotency,
		RateLimiter:     rateLimiter,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s, database: %s, printer: %s", cfg.App.Env, cfg.Database.Driver, printerService.GetStatus().Type)

	if err := router.Run(":" + port); err != nil {
		log.Printf("Failed to start server: %v", err)
		os.Exit(1)
	}
}

func purgeIdempotencyKeys(repo domainRepo.IdempotencyRepository, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for range ticker.C {
		if err := repo.DeleteExpired(context.Background()); err != nil {
			log.Printf("Warning: Failed to purge idempotency keys: %v", err)
		}
	}
}
