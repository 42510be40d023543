package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	checkoutController "github.com/saludmexfood/saluds-mx-food/controllers/checkout"
	menuController "github.com/saludmexfood/saluds-mx-food/controllers/menu"
	orderController "github.com/saludmexfood/saluds-mx-food/controllers/order"
	"github.com/saludmexfood/saluds-mx-food/middleware"
)

// SetupPublicRoutes registers the storefront endpoints. No auth.
func SetupPublicRoutes(r *gin.Engine, deps Deps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	qr := orderController.NewQRGenerator(deps.Cfg.UploadsDir, "")

	public := r.Group("/api/public")
	{
		// ─────────── Menu ───────────
		public.GET("/menu/", menuController.GetCurrentMenu(deps.DB, deps.MenuCache))

		// ─────────── Orders ───────────
		public.POST("/orders/", orderController.CreateOrderHandler(deps.DB, deps.Publisher, deps.Cfg.DeliveryFeeCents, qr))

		// ─────────── Checkout ───────────
		public.POST("/checkout/session", checkoutController.CreateSessionHandler(deps.DB, deps.Cfg))
		public.POST("/stripe/webhook",
			middleware.StripeWebhookAuth(deps.Cfg.StripeWebhookSecret),
			checkoutController.WebhookHandler(deps.DB),
		)
	}
}
