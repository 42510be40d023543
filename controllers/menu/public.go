package menucontroller

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/saludmexfood/saluds-mx-food/cache"
	"github.com/saludmexfood/saluds-mx-food/models"
	"gorm.io/gorm"
)

// GetCurrentMenu returns the most recent published menu week with its
// available items, or JSON null when nothing is published. The rendered
// payload is cached in Redis and invalidated by admin menu mutations.
func GetCurrentMenu(db *gorm.DB, menuCache *cache.MenuCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		if payload, ok := menuCache.GetPublicMenu(c.Request.Context()); ok {
			c.Data(http.StatusOK, "application/json", []byte(payload))
			return
		}

		var week models.MenuWeek
		err := db.
			Preload("Items", "available = ?", true).
			Where("published = ?", true).
			Order("starts_at DESC").
			First(&week).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusOK, nil)
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load menu"})
			return
		}

		if payload, err := json.Marshal(week); err == nil {
			menuCache.SetPublicMenu(c.Request.Context(), string(payload))
		}
		c.JSON(http.StatusOK, week)
	}
}
