package menucontroller

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/saludmexfood/saluds-mx-food/cache"
	"github.com/saludmexfood/saluds-mx-food/models"
	"gorm.io/gorm"
)

type CreateMenuWeekRequest struct {
	StartsAt         time.Time `json:"starts_at" binding:"required"`
	SellingDays      string    `json:"selling_days" binding:"required"`
	Status           string    `json:"status"`
	Published        bool      `json:"published"`
	PickupWindowText string    `json:"pickup_window_text"`
	NotesText        string    `json:"notes_text"`
}

type UpdateMenuWeekRequest struct {
	StartsAt         *time.Time `json:"starts_at"`
	SellingDays      *string    `json:"selling_days"`
	Status           *string    `json:"status"`
	Published        *bool      `json:"published"`
	PickupWindowText *string    `json:"pickup_window_text"`
	NotesText        *string    `json:"notes_text"`
}

// GetMenuWeeks lists all menu weeks, including unpublished, newest first.
func GetMenuWeeks(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var weeks []models.MenuWeek
		if err := db.Preload("Items").Order("starts_at DESC").Find(&weeks).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load menu weeks"})
			return
		}
		c.JSON(http.StatusOK, weeks)
	}
}

// CreateMenuWeek creates a new menu week.
func CreateMenuWeek(db *gorm.DB, menuCache *cache.MenuCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateMenuWeekRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if strings.TrimSpace(req.SellingDays) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "selling_days is required"})
			return
		}

		status := req.Status
		if status == "" {
			status = "draft"
		}
		week := models.MenuWeek{
			StartsAt:         req.StartsAt,
			SellingDays:      req.SellingDays,
			Status:           status,
			Published:        req.Published,
			PickupWindowText: req.PickupWindowText,
			NotesText:        req.NotesText,
		}
		if err := db.Create(&week).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu week"})
			return
		}

		menuCache.InvalidatePublicMenu(c.Request.Context())
		c.JSON(http.StatusCreated, week)
	}
}

// UpdateMenuWeek applies a partial update; only provided fields change.
func UpdateMenuWeek(db *gorm.DB, menuCache *cache.MenuCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var week models.MenuWeek
		if err := db.First(&week, "id = ?", c.Param("id")).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "MenuWeek not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load menu week"})
			return
		}

		var req UpdateMenuWeekRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if req.StartsAt != nil {
			week.StartsAt = *req.StartsAt
		}
		if req.SellingDays != nil {
			week.SellingDays = *req.SellingDays
		}
		if req.Status != nil {
			week.Status = *req.Status
		}
		if req.Published != nil {
			week.Published = *req.Published
		}
		if req.PickupWindowText != nil {
			week.PickupWindowText = *req.PickupWindowText
		}
		if req.NotesText != nil {
			week.NotesText = *req.NotesText
		}

		if err := db.Save(&week).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu week"})
			return
		}

		menuCache.InvalidatePublicMenu(c.Request.Context())
		c.JSON(http.StatusOK, week)
	}
}

// GetWeekItems lists the items of one week ordered by id.
func GetWeekItems(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var items []models.MenuItem
		if err := db.Where("menu_week_id = ?", c.Param("id")).Order("id").Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load week items"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}
