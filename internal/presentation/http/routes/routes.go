package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/temple-api/internal/config"
	domainRepo "github.com/sangkips/temple-api/internal/domain/repository"
	"github.com/sangkips/temple-api/internal/presentation/http/handler"
	"github.com/sangkips/temple-api/internal/presentation/http/middleware"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Branding     *handler.BrandingHandler
	Booking      *handler.BookingHandler
	OfferingType *handler.OfferingTypeHandler
	Report       *handler.ReportHandler
	Print        *handler.PrintHandler
	Printer      *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Logger          *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()
	if err := router.SetTrustedProxies(deps.Cfg.App.TrustedProxies); err != nil {
		deps.Logger.Warn("invalid trusted proxies, trusting none", zap.Error(err))
		_ = router.SetTrustedProxies(nil)
	}

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))
	router.Use(middleware.ForwardMiddleware())

	rateLimiter := middleware.NewClientRateLimiter(
		middleware.RateLimiterConfigFor(deps.Cfg.RateLimit.Requests, deps.Cfg.RateLimit.Duration),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":        "ok",
			"service":       deps.Cfg.App.Name,
			"print_windows": h.Print.OpenWindows(),
			"rate_limiter":  rateLimiter.Stats(),
		})
	})

	// Print windows are opened by the browser directly
	router.GET("/print/:id", h.Print.Window)
	router.DELETE("/print/:id", h.Print.CloseWindow)

	v1 := router.Group("/api/v1")
	{
		v1.Use(rateLimiter.Middleware())

		idempotency := middleware.Idempotency(middleware.IdempotencyConfig{
			Repo:   deps.IdempotencyRepo,
			Logger: deps.Logger,
		})

		v1.GET("/settings/branding", h.Branding.GetBranding)

		registerBookingRoutes(v1, h, idempotency)
		registerOfferingTypeRoutes(v1, h)
		registerPurchaseRoutes(v1, h)
		registerPrintRoutes(v1, h)
	}

	return router
}

func registerBookingRoutes(v1 *gin.RouterGroup, h *Handlers, idempotency gin.HandlerFunc) {
	bookings := v1.Group("/bookings/buddha-lamp")
	{
		bookings.GET("", h.Booking.List)
		bookings.POST("", idempotency, h.Booking.Create)
		bookings.GET("/:id", h.Booking.Get)
		bookings.PUT("/:id", idempotency, h.Booking.Update)
		bookings.POST("/:id/cancel", idempotency, h.Booking.Cancel)
		bookings.GET("/:id/receipt", h.Booking.Receipt)
		bookings.POST("/:id/print", h.Booking.Print)
	}
}

func registerOfferingTypeRoutes(v1 *gin.RouterGroup, h *Handlers) {
	types := v1.Group("/offering-types")
	{
		types.GET("", h.OfferingType.List)
		types.POST("", h.OfferingType.Create)
		types.GET("/:id", h.OfferingType.Get)
		types.PUT("/:id", h.OfferingType.Update)
		types.DELETE("/:id", h.OfferingType.Delete)
	}
}

func registerPurchaseRoutes(v1 *gin.RouterGroup, h *Handlers) {
	purchase := v1.Group("/purchase")
	{
		reports := purchase.Group("/reports")
		reports.GET("/:kind", h.Report.Report)
		reports.GET("/:kind/document", h.Report.Document)
		reports.POST("/:kind/print", h.Report.Print)

		suppliers := purchase.Group("/suppliers")
		suppliers.GET("/:id/statement", h.Report.Statement)
		suppliers.GET("/:id/statement/document", h.Report.StatementDocument)
		suppliers.POST("/:id/statement/print", h.Report.StatementPrint)
	}
}

func registerPrintRoutes(v1 *gin.RouterGroup, h *Handlers) {
	v1.GET("/print-jobs", h.Print.ListJobs)

	printer := v1.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", h.Printer.TestPrint)
		printer.POST("/receipt", h.Printer.PrintReceipt)
	}
}
