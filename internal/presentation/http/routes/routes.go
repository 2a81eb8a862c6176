package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/discount-label-api/internal/config"
	domainRepo "github.com/sangkips/discount-label-api/internal/domain/repository"
	"github.com/sangkips/discount-label-api/internal/presentation/http/handler"
	"github.com/sangkips/discount-label-api/internal/presentation/http/middleware"
	"github.com/sangkips/discount-label-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Health   *handler.HealthHandler
	Settings *handler.SettingsHandler
	Scan     *handler.ScanHandler
	Label    *handler.LabelHandler
	Printer  *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.OperatorRateLimiter
}

// NewRateLimiter builds the per-operator limiter from the configured
// request budget.
func NewRateLimiter(cfg *config.RateLimitConfig) *middleware.OperatorRateLimiter {
	perSecond := 0.0
	if cfg.Duration > 0 {
		perSecond = float64(cfg.Requests) / float64(cfg.Duration)
	}
	return middleware.NewOperatorRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: perSecond,
		BurstSize:         cfg.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", h.Health.Health)

	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		if deps.RateLimiter != nil {
			protected.Use(deps.RateLimiter.Middleware())
		}

		registerSettingsRoutes(protected, h)
		registerScanRoutes(protected, h)
		registerLabelRoutes(protected, h)
		registerPrinterRoutes(protected, h, deps)
	}

	return router
}

func registerSettingsRoutes(protected *gin.RouterGroup, h *Handlers) {
	settings := protected.Group("/settings")
	{
		settings.GET("", h.Settings.GetSettings)
		settings.PUT("/discount", h.Settings.UpdateDiscount)
	}
}

func registerScanRoutes(protected *gin.RouterGroup, h *Handlers) {
	scans := protected.Group("/scans")
	{
		scans.POST("", h.Scan.Scan)
		scans.GET("", h.Scan.List)
		scans.DELETE("", h.Scan.Clear)
		scans.GET("/latest", h.Scan.Latest)
		scans.GET("/:id", h.Scan.Get)
		scans.DELETE("/:id", h.Scan.Delete)
		scans.GET("/:id/preview", h.Label.PreviewScan)
		scans.GET("/:id/barcode.png", h.Label.BarcodePNG)
	}
}

func registerLabelRoutes(protected *gin.RouterGroup, h *Handlers) {
	labels := protected.Group("/labels")
	{
		labels.POST("/preview", h.Label.Preview)
		labels.GET("/sheet.pdf", h.Label.SheetPDF)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	printer := protected.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.GET("/ports", h.Printer.Ports)
		printer.POST("/connect", h.Printer.Connect)
		printer.POST("/disconnect", h.Printer.Disconnect)

		// Retried print requests replay the first response
		idempotent := printer.Group("")
		idempotent.Use(middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}))
		idempotent.POST("/test", h.Printer.TestPrint)
		idempotent.POST("/print", h.Printer.Print)
		idempotent.POST("/print/:id", h.Printer.PrintOne)
	}
}
