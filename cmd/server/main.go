package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"bikerental/internal/app"
	"bikerental/internal/config"
	"bikerental/internal/handler"
	internalRedis "bikerental/internal/redis"
	"bikerental/internal/repository/postgres"
	"bikerental/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s (with DB instrumentation)", cfg.NewRelic.AppName)
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Wire dependencies.
	server, scheduler := wire(db, redisClient, nrApp, cfg)

	// Start background jobs.
	scheduler.Start()
	defer scheduler.Stop()

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wire wires all dependencies and returns the HTTP server and the job
// scheduler running the overdue sweep and dashboard refresh.
func wire(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) (*http.Server, *cron.Cron) {
	// Initialize Redis stores.
	lockStore := internalRedis.NewLockStore(redisClient)
	statsCache := internalRedis.NewStatsCache(redisClient, cfg.Dashboard.CacheTTL)

	// Initialize repositories.
	bikeRepo := postgres.NewBikeRepository(db)
	clientRepo := postgres.NewClientRepository(db)
	rentalRepo := postgres.NewRentalRepository(db)
	invoiceRepo := postgres.NewInvoiceRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	reportRepo := postgres.NewReportRepository(db)
	uow := postgres.NewUnitOfWork(db)

	// Initialize services.
	notificationService := service.NewNotificationService()
	pricingService := service.NewPricingService(bikeRepo)
	bikeService := service.NewBikeService(bikeRepo)
	clientService := service.NewClientService(clientRepo, rentalRepo)
	rentalService := service.NewRentalService(uow, rentalRepo, lockStore, notificationService)
	paymentService := service.NewPaymentService(paymentRepo, invoiceRepo)
	reportService := service.NewReportService(reportRepo, cfg.Reports.OutputDir)
	dashboardService := service.NewDashboardService(bikeRepo, clientRepo, rentalRepo, statsCache)
	monitor := service.NewOverdueMonitor(rentalRepo, clientRepo, bikeRepo, lockStore, notificationService)

	// Initialize handlers.
	clientHandler := handler.NewClientHandler(clientService)
	bikeHandler := handler.NewBikeHandler(bikeService)
	rentalHandler := handler.NewRentalHandler(rentalService, pricingService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	reportHandler := handler.NewReportHandler(reportService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		ClientHandler:    clientHandler,
		BikeHandler:      bikeHandler,
		RentalHandler:    rentalHandler,
		PaymentHandler:   paymentHandler,
		ReportHandler:    reportHandler,
		DashboardHandler: dashboardHandler,
		RedisClient:      redisClient,
		NewRelicApp:      nrApp,
	})

	// Schedule background jobs.
	scheduler := cron.New()
	mustSchedule(scheduler, cfg.Monitor.SweepInterval, func() {
		if err := monitor.Sweep(context.Background()); err != nil {
			log.Printf("overdue sweep failed: %v", err)
		}
	})
	mustSchedule(scheduler, cfg.Dashboard.RefreshInterval, func() {
		if _, err := dashboardService.Refresh(context.Background()); err != nil {
			log.Printf("dashboard refresh failed: %v", err)
		}
	})

	// Create HTTP server.
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return server, scheduler
}

func mustSchedule(scheduler *cron.Cron, every time.Duration, job func()) {
	if _, err := scheduler.AddFunc(fmt.Sprintf("@every %s", every), job); err != nil {
		log.Fatalf("failed to schedule job: %v", err)
	}
}
