package menucontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/saludmexfood/saluds-mx-food/cache"
	"github.com/saludmexfood/saluds-mx-food/models"
	"gorm.io/gorm"
)

type CreateMenuItemRequest struct {
	MenuWeekID  uint   `json:"menu_week_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	PhotoURL    string `json:"photo_url"`
	PriceCents  *int   `json:"price_cents" binding:"required"`
	QtyLimit    *int   `json:"qty_limit"`
	Available   *bool  `json:"available"`
}

type UpdateMenuItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	PhotoURL    *string `json:"photo_url"`
	PriceCents  *int    `json:"price_cents"`
	QtyLimit    *int    `json:"qty_limit"`
	IsSoldOut   *bool   `json:"is_sold_out"`
	Available   *bool   `json:"available"`
}

// GetMenuItems lists every menu item ordered by id.
func GetMenuItems(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var items []models.MenuItem
		if err := db.Order("id").Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load menu items"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// CreateMenuItem creates a menu item under an existing week.
func CreateMenuItem(db *gorm.DB, menuCache *cache.MenuCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateMenuItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		if *req.PriceCents < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price_cents must be a non-negative integer"})
			return
		}

		var week models.MenuWeek
		if err := db.First(&week, req.MenuWeekID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusBadRequest, gin.H{"error": "MenuWeek does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate menu week"})
			return
		}

		available := true
		if req.Available != nil {
			available = *req.Available
		}
		item := models.MenuItem{
			MenuWeekID:  req.MenuWeekID,
			Name:        req.Name,
			Description: req.Description,
			PhotoURL:    req.PhotoURL,
			PriceCents:  *req.PriceCents,
			QtyLimit:    req.QtyLimit,
			Available:   available,
		}
		if err := db.Create(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu item"})
			return
		}

		menuCache.InvalidatePublicMenu(c.Request.Context())
		c.JSON(http.StatusCreated, item)
	}
}

// UpdateMenuItem applies a partial update; only provided fields change.
func UpdateMenuItem(db *gorm.DB, menuCache *cache.MenuCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item models.MenuItem
		if err := db.First(&item, "id = ?", c.Param("id")).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "MenuItem not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load menu item"})
			return
		}

		var req UpdateMenuItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.PriceCents != nil && *req.PriceCents < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price_cents must be a non-negative integer"})
			return
		}
		if req.Name != nil {
			if strings.TrimSpace(*req.Name) == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
				return
			}
			item.Name = *req.Name
		}
		if req.Description != nil {
			item.Description = *req.Description
		}
		if req.PhotoURL != nil {
			item.PhotoURL = *req.PhotoURL
		}
		if req.PriceCents != nil {
			item.PriceCents = *req.PriceCents
		}
		if req.QtyLimit != nil {
			item.QtyLimit = req.QtyLimit
		}
		if req.IsSoldOut != nil {
			item.IsSoldOut = *req.IsSoldOut
		}
		if req.Available != nil {
			item.Available = *req.Available
		}

		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu item"})
			return
		}

		menuCache.InvalidatePublicMenu(c.Request.Context())
		c.JSON(http.StatusOK, item)
	}
}
