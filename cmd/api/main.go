package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/temple-api/internal/application/service"
	"github.com/sangkips/temple-api/internal/config"
	domainRepo "github.com/sangkips/temple-api/internal/domain/repository"
	"github.com/sangkips/temple-api/internal/infrastructure/database"
	"github.com/sangkips/temple-api/internal/infrastructure/repository"
	"github.com/sangkips/temple-api/internal/infrastructure/upstream"
	"github.com/sangkips/temple-api/internal/presentation/http/dto/request"
	"github.com/sangkips/temple-api/internal/presentation/http/handler"
	"github.com/sangkips/temple-api/internal/presentation/http/routes"
	"github.com/sangkips/temple-api/pkg/printer"
	"github.com/sangkips/temple-api/pkg/printwindow"
	"go.uber.org/zap"
)

func newLogger(debug bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func main() {
	// Load configuration
	cfg := config.Load()

	logger := newLogger(cfg.App.Debug)
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Local repositories
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	snapshotRepo := repository.NewBrandingSnapshotRepository(db)
	printJobRepo := repository.NewPrintJobRepository(db)

	// Temple backend
	client := upstream.NewClient(upstream.Config{
		BaseURL: cfg.Upstream.BaseURL,
		Timeout: cfg.Upstream.Timeout,
	}, logger)
	settingsRepo := upstream.NewSettingsRepository(client)
	bookingRepo := upstream.NewBookingRepository(client)
	offeringTypeRepo := upstream.NewOfferingTypeRepository(client)
	reportRepo := upstream.NewPurchaseReportRepository(client)
	statementRepo := upstream.NewSupplierStatementRepository(client)

	windows := printwindow.NewStore(printwindow.Config{
		BaseURL: "/print",
		TTL:     cfg.Print.WindowTTL,
		MaxOpen: cfg.Print.WindowMaxOpen,
	})
	settings := service.PrintSettingsFromConfig(cfg.Print)

	// Initialize services
	brandingService := service.NewBrandingService(settingsRepo, snapshotRepo, cfg.Branding, logger.Named("branding"))
	printService := service.NewPrintService(windows, printJobRepo, cfg.Print.NavigateDelay, logger.Named("print"))
	bookingService := service.NewBookingService(bookingRepo, brandingService, printService, settings, logger.Named("bookings"))
	offeringTypeService := service.NewOfferingTypeService(offeringTypeRepo)
	reportService := service.NewReportService(reportRepo, brandingService, printService, settings, logger.Named("reports"))
	statementService := service.NewStatementService(statementRepo, brandingService, printService, settings, logger.Named("statements"))

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		logger.Warn("failed to initialize printer", zap.Error(err))
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(
		thermalPrinter,
		bookingService,
		brandingService,
		settings,
		cfg.Printer.Type,
		cfg.Printer.CharWidth,
		logger.Named("printer"),
	)

	// Initialize handlers
	handlers := &routes.Handlers{
		Branding:     handler.NewBrandingHandler(brandingService),
		Booking:      handler.NewBookingHandler(bookingService),
		OfferingType: handler.NewOfferingTypeHandler(offeringTypeService),
		Report:       handler.NewReportHandler(reportService, statementService),
		Print:        handler.NewPrintHandler(printService),
		Printer:      handler.NewPrinterHandler(printerService),
	}

	if err := request.RegisterValidators(); err != nil {
		logger.Fatal("failed to register validators", zap.Error(err))
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Logger:          logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go purgeIdempotencyKeys(ctx, idempotencyRepo, logger)

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logger.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("port", port),
		zap.String("env", cfg.App.Env),
		zap.String("upstream", cfg.Upstream.BaseURL),
	)

	timeout := cfg.App.ShutdownTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	if err := serve(ctx, srv, ln, timeout, logger); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
	}
	if err := thermalPrinter.Close(); err != nil {
		logger.Warn("failed to close printer", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("server stopped")
}

// serve runs srv on ln until ctx is done, then drains in-flight requests
// for at most timeout.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, timeout time.Duration, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func purgeIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, logger *zap.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx); err != nil {
				logger.Warn("failed to purge idempotency keys", zap.Error(err))
			}
		}
	}
}
