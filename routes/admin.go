package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/saludmexfood/saluds-mx-food/auth"
	menuController "github.com/saludmexfood/saluds-mx-food/controllers/menu"
	orderController "github.com/saludmexfood/saluds-mx-food/controllers/order"
	queueController "github.com/saludmexfood/saluds-mx-food/controllers/queue"
	systemController "github.com/saludmexfood/saluds-mx-food/controllers/system"
	"github.com/saludmexfood/saluds-mx-food/middleware"
)

// SetupAdminRoutes registers the login endpoint and every bearer-protected
// console endpoint behind the single RequireAdmin guard.
func SetupAdminRoutes(r *gin.Engine, deps Deps) {
	r.POST("/admin/auth/login", auth.AdminLoginHandler(deps.Cfg))

	requireAdmin := middleware.RequireAdmin(deps.Cfg.JWTSecret)

	// ─────────── Menu Management ───────────
	menuAdmin := r.Group("/admin/menu")
	menuAdmin.Use(requireAdmin)
	{
		weeks := menuAdmin.Group("/weeks")
		{
			weeks.GET("/", menuController.GetMenuWeeks(deps.DB))
			weeks.POST("/", menuController.CreateMenuWeek(deps.DB, deps.MenuCache))
			weeks.PATCH("/:id", menuController.UpdateMenuWeek(deps.DB, deps.MenuCache))
			weeks.GET("/:id/items", menuController.GetWeekItems(deps.DB))
		}
		items := menuAdmin.Group("/items")
		{
			items.GET("/", menuController.GetMenuItems(deps.DB))
			items.POST("/", menuController.CreateMenuItem(deps.DB, deps.MenuCache))
			items.PATCH("/:id", menuController.UpdateMenuItem(deps.DB, deps.MenuCache))
		}
	}

	api := r.Group("/api")
	api.Use(requireAdmin)
	{
		// ─────────── Orders ───────────
		orders := api.Group("/orders")
		{
			orders.GET("", orderController.GetAllOrdersHandler(deps.DB))
			orders.GET("/tally", orderController.GetOrdersTallyHandler(deps.DB))
			orders.PATCH("/:id/status", orderController.UpdateOrderStatusHandler(deps.DB, deps.Publisher))
			orders.GET("/ws", orderController.OrderWebSocketHandler)
		}

		// ─────────── Review Queues ───────────
		api.GET("/queues", queueController.ListQueuesHandler(deps.Cfg.ReviewDir))
		api.GET("/queue/get", queueController.GetQueueFileHandler(deps.Cfg.ReviewDir))
		api.POST("/decision", queueController.PostDecisionHandler(deps.Cfg.ReviewDir))

		// ─────────── System Controls ───────────
		systemCtl := &systemController.Controller{
			Sweeper:   deps.Sweeper,
			Pause:     deps.Pause,
			ReviewDir: deps.Cfg.ReviewDir,
			LogDir:    deps.Cfg.LogDir,
		}
		system := api.Group("/system")
		{
			system.POST("/pause", systemCtl.PauseHandler())
			system.POST("/resume", systemCtl.ResumeHandler())
			system.POST("/stop", systemCtl.StopHandler())
			system.POST("/run_now", systemCtl.RunNowHandler())
			system.POST("/clear_queues", systemCtl.ClearQueuesHandler())
			system.POST("/clear_approvals", systemCtl.ClearApprovalsHandler())
			system.POST("/clear_logs", systemCtl.ClearLogsHandler())
		}
	}
}
