package router

import (
	"time"

	"github.com/charleshllw2/DocuInvoice-Pro/internal/config"
	"github.com/charleshllw2/DocuInvoice-Pro/internal/handler"
	"github.com/charleshllw2/DocuInvoice-Pro/internal/infra"
	"github.com/charleshllw2/DocuInvoice-Pro/internal/middleware"
	"github.com/charleshllw2/DocuInvoice-Pro/internal/repository"
	"github.com/charleshllw2/DocuInvoice-Pro/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, docsCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	docsClient := infra.NewGoogleDocsClient(cfg.DocsAPIBaseURL, cfg.DriveAPIBase, docsCB)
	oauthClient := infra.NewGoogleOAuthClient(cfg.OAuthAPIBase)

	// ── Repositories ─────────────────────────────────────────────────────────
	invoiceRepo := repository.NewInvoiceRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(oauthClient, cfg)
	invoiceSvc := service.NewInvoiceService(invoiceRepo)
	generationSvc := service.NewGenerationService(docsClient, invoiceRepo, cfg.DemoMode())

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	invoicesH := handler.NewInvoicesHandler(invoiceSvc, generationSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, docsCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/session", middleware.SessionRateLimiter(), authH.Session)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.POST("/invoices", invoicesH.Create)
		v1.GET("/invoices", invoicesH.List)
		v1.GET("/invoices/:id", invoicesH.Get)
		v1.PUT("/invoices/:id", invoicesH.Update)
		v1.POST("/invoices/:id/generate", invoicesH.Generate)
		v1.PATCH("/invoices/:id/paid", invoicesH.MarkPaid)
		v1.GET("/invoices/:id/pdf", invoicesH.DownloadPDF)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
