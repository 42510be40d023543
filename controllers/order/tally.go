package ordercontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/saludmexfood/saluds-mx-food/models"
	"gorm.io/gorm"
)

type ItemCount struct {
	MenuItemID uint `json:"menu_item_id"`
	TotalQty   int  `json:"total_qty"`
}

type SpecialRequest struct {
	OrderID uint    `json:"order_id"`
	Comment *string `json:"comment"`
}

type DeliveryEntry struct {
	OrderID uint    `json:"order_id"`
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Address *string `json:"address"`
	Comment *string `json:"comment"`
}

type OrdersTally struct {
	TotalOrders         int64            `json:"total_orders"`
	TotalPickupOrders   int64            `json:"total_pickup_orders"`
	TotalDeliveryOrders int64            `json:"total_delivery_orders"`
	ItemCounts          []ItemCount      `json:"item_counts"`
	SpecialRequests     []SpecialRequest `json:"special_requests"`
	DeliveryList        []DeliveryEntry  `json:"delivery_list"`
}

// GetOrdersTallyHandler aggregates order counts, per-item quantities, special
// requests, and the delivery run list.
func GetOrdersTallyHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tally OrdersTally

		if err := db.Model(&models.Order{}).Count(&tally.TotalOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to tally orders"})
			return
		}
		if err := db.Model(&models.Order{}).Where("pickup_or_delivery = ?", "pickup").
			Count(&tally.TotalPickupOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to tally orders"})
			return
		}
		if err := db.Model(&models.Order{}).Where("pickup_or_delivery = ?", "delivery").
			Count(&tally.TotalDeliveryOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to tally orders"})
			return
		}

		if err := db.Model(&models.OrderItem{}).
			Select("menu_item_id, SUM(qty) AS total_qty").
			Group("menu_item_id").
			Scan(&tally.ItemCounts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to tally items"})
			return
		}

		if err := db.Model(&models.Order{}).
			Select("id AS order_id, comment").
			Where("comment IS NOT NULL").
			Scan(&tally.SpecialRequests).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to collect special requests"})
			return
		}

		if err := db.Model(&models.Order{}).
			Select("orders.id AS order_id, customers.name, customers.phone, orders.delivery_address AS address, orders.comment").
			Joins("LEFT JOIN customers ON customers.id = orders.customer_id").
			Where("orders.pickup_or_delivery = ?", "delivery").
			Scan(&tally.DeliveryList).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to collect delivery list"})
			return
		}

		if tally.ItemCounts == nil {
			tally.ItemCounts = []ItemCount{}
		}
		if tally.SpecialRequests == nil {
			tally.SpecialRequests = []SpecialRequest{}
		}
		if tally.DeliveryList == nil {
			tally.DeliveryList = []DeliveryEntry{}
		}

		c.JSON(http.StatusOK, tally)
	}
}
