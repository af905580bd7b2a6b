package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/cart"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/config"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/handler"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/middleware"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/printing"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/receipt"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/repository"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/service"
	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(
	cfg *config.Config,
	db *gorm.DB,
	rdb *redis.Client,
	relay *printing.RelayBackend,
	printDispatcher *printing.Dispatcher,
	jobs *worker.Dispatcher,
) *gin.Engine {
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

	storeInfo := receipt.StoreInfo{
		Name:    cfg.StoreName,
		Address: cfg.StoreAddress,
		City:    cfg.StoreCity,
	}

	// ── Repositories ─────────────────────────────────────────────────────────
	stockRepo := repository.NewStockRepository(db)
	voucherRepo := repository.NewVoucherRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	auditRepo := repository.NewStockTransactionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	cartStore := cart.NewStore(rdb, time.Duration(cfg.CartTTLMinutes)*time.Minute)
	catalogSvc := service.NewCatalogService(stockRepo, rdb, time.Duration(cfg.SnapshotTTLSeconds)*time.Second)
	voucherSvc := service.NewVoucherService(voucherRepo)
	cartSvc := service.NewCartService(cartStore, catalogSvc)
	checkoutSvc := service.NewCheckoutService(
		cartStore, catalogSvc, voucherSvc,
		stockRepo, txRepo, auditRepo,
		jobs, cfg.StrictStock,
	)

	// ── Handlers ─────────────────────────────────────────────────────────────
	cartH := handler.NewCartHandler(cartSvc)
	checkoutH := handler.NewCheckoutHandler(checkoutSvc)
	vouchersH := handler.NewVouchersHandler(voucherSvc)
	printH := handler.NewPrintHandler(relay, printDispatcher, txRepo, storeInfo)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Protected routes — every register operation requires a cashier token
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		carts := v1.Group("/carts")
		{
			carts.POST("", cartH.Create)
			carts.GET("/:id", cartH.Get)
			carts.POST("/:id/items", cartH.AddItem)
			carts.PUT("/:id/items/:itemId", cartH.SetQuantity)
			carts.PUT("/:id/items/:itemId/unit", cartH.ChangeUnit)
		}

		v1.POST("/checkout", middleware.RequireRole("kasir", "supervisor", "admin"), checkoutH.Commit)
		v1.GET("/vouchers/:id", vouchersH.Validate)

		v1.GET("/print/status", printH.Status)
		v1.POST("/transactions/:id/print", middleware.RequireRole("kasir", "supervisor", "admin"), printH.Reprint)
	}

	return r
}
