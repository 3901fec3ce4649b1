package apphttp

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/olabanji12-ojo/lifestyles-sub000/internal/config"
	"github.com/olabanji12-ojo/lifestyles-sub000/internal/http/handlers"
	adminh "github.com/olabanji12-ojo/lifestyles-sub000/internal/http/handlers/admin"
	"github.com/olabanji12-ojo/lifestyles-sub000/internal/http/middleware"
	"github.com/olabanji12-ojo/lifestyles-sub000/internal/modules/cart"
	"github.com/olabanji12-ojo/lifestyles-sub000/internal/modules/checkout"
	"github.com/olabanji12-ojo/lifestyles-sub000/internal/modules/orders"
	"github.com/olabanji12-ojo/lifestyles-sub000/internal/modules/payments"
)

// NewRouter wires every handler explicitly from the dependencies built in
// main: one store, one gateway client, no lazy singletons.
func NewRouter(logger *slog.Logger, db *gorm.DB, gw payments.Gateway, cfg config.Config) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	orderRepo := orders.NewRepo(db)
	cartRepo := cart.NewRepo(db)

	checkoutSvc := checkout.NewService(orderRepo, cartRepo, gw, cfg.BaseURL, cfg.Currency)
	checkoutSvc.SetLogger(logger)

	webhookSvc := payments.NewWebhookService(cfg.PaystackSecretKey, gw, orderRepo)
	webhookSvc.SetLogger(logger)

	verifySvc := payments.NewVerifyService(gw, orderRepo)
	verifySvc.SetLogger(logger)

	adminSvc := orders.NewAdminService(db)

	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.ErrorHandler(logger, cfg.IsDevelopment()))

	checkoutH := handlers.NewCheckoutHandler(checkoutSvc, cfg.IsDevelopment())
	webhookH := handlers.NewWebhookHandler(webhookSvc)
	verifyH := handlers.NewVerifyHandler(verifySvc, cfg.IsDevelopment())
	ordersH := handlers.NewOrdersHandler(orderRepo)
	adminOrdersH := adminh.NewOrdersHandler(adminSvc)

	// Browser-facing JSON endpoints: permissive CORS, POST+OPTIONS.
	browser := r.Group("/api", middleware.CORS())
	preflight := func(c *gin.Context) {} // CORS middleware answers OPTIONS
	browser.POST("/checkout", checkoutH.Post)
	browser.OPTIONS("/checkout", preflight)
	browser.POST("/payments/verify", verifyH.Post)
	browser.OPTIONS("/payments/verify", preflight)
	browser.GET("/orders", ordersH.List)
	browser.GET("/orders/:id", ordersH.Detail)

	// Server-to-server; no CORS here.
	r.POST("/api/paystack/webhook", webhookH.Post)

	admin := r.Group("/api/admin", middleware.RequireAdminToken(cfg.AdminAPIToken))
	admin.POST("/orders/:id/transition", adminOrdersH.Transition)

	return r
}
