package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/saludmexfood/saluds-mx-food/cache"
	"github.com/saludmexfood/saluds-mx-food/config"
	systemcontroller "github.com/saludmexfood/saluds-mx-food/controllers/system"
	"github.com/saludmexfood/saluds-mx-food/events"
	"gorm.io/gorm"
)

// Deps carries everything the route groups need.
type Deps struct {
	DB        *gorm.DB
	Cfg       config.Config
	MenuCache *cache.MenuCache
	Pause     *cache.PauseState
	Publisher *events.Publisher
	Sweeper   *systemcontroller.Sweeper
}

// SetupRoutes is the single entry-point that wires up the public storefront,
// admin auth, and bearer-protected admin route groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	// 1️⃣ Public storefront routes (no middleware)
	SetupPublicRoutes(r, deps)

	// 2️⃣ Admin routes (login + JWT-protected console)
	SetupAdminRoutes(r, deps)
}
