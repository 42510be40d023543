package ordercontroller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/saludmexfood/saluds-mx-food/events"
	"github.com/saludmexfood/saluds-mx-food/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// -------- Request Structs --------

type OrderItemInput struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Qty        int  `json:"qty" binding:"required"`
}

type CreateOrderRequest struct {
	Name             string           `json:"name"`
	Phone            string           `json:"phone"`
	Email            string           `json:"email"`
	PickupOrDelivery string           `json:"pickup_or_delivery" binding:"required"`
	DeliveryAddress  *string          `json:"delivery_address"`
	Comment          *string          `json:"comment"`
	Items            []OrderItemInput `json:"items" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

var (
	ErrEmptyOrder        = errors.New("Order must contain at least one item")
	ErrBadQuantity       = errors.New("Quantity must be at least 1")
	ErrAddressRequired   = errors.New("Delivery address is required for delivery")
	ErrItemNotFound      = errors.New("menu item not found")
	ErrItemNotAvailable  = errors.New("menu item is not available")
	ErrItemSoldOut       = errors.New("menu item is sold out")
	ErrBadDeliveryChoice = errors.New("pickup_or_delivery must be \"pickup\" or \"delivery\"")
)

// -------- Core Logic --------

// CreateOrder validates and persists a storefront order. Prices come from the
// server-side menu items, never from the request; total_cents is the sum of
// line totals plus the delivery fee.
func CreateOrder(db *gorm.DB, req CreateOrderRequest, deliveryFeeCents int) (models.Order, error) {
	var order models.Order

	if len(req.Items) == 0 {
		return order, ErrEmptyOrder
	}
	mode := strings.ToLower(req.PickupOrDelivery)
	if mode != "pickup" && mode != "delivery" {
		return order, ErrBadDeliveryChoice
	}
	if mode == "delivery" && (req.DeliveryAddress == nil || strings.TrimSpace(*req.DeliveryAddress) == "") {
		return order, ErrAddressRequired
	}
	if mode == "pickup" {
		req.DeliveryAddress = nil
	}

	fee := 0
	if mode == "delivery" {
		fee = deliveryFeeCents
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		order = models.Order{
			Phone:            req.Phone,
			Email:            req.Email,
			PickupOrDelivery: mode,
			DeliveryFeeCents: fee,
			DeliveryAddress:  req.DeliveryAddress,
			Comment:          req.Comment,
			Status:           models.OrderStatusPending,
		}

		if strings.TrimSpace(req.Name) != "" {
			customer := models.Customer{Name: req.Name, Phone: req.Phone, Email: req.Email}
			if err := tx.Create(&customer).Error; err != nil {
				return err
			}
			order.CustomerID = &customer.ID
			order.Customer = &customer
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		total := 0
		for _, input := range req.Items {
			if input.Qty < 1 {
				return ErrBadQuantity
			}

			// SQLite (tests) has no FOR UPDATE
			q := tx
			if tx.Dialector.Name() == "postgres" {
				q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
			}

			var item models.MenuItem
			if err := q.First(&item, "id = ?", input.MenuItemID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return ErrItemNotFound
				}
				return err
			}
			if !item.Available {
				return ErrItemNotAvailable
			}
			if item.IsSoldOut || (item.QtyLimit != nil && item.QtySold+input.Qty > *item.QtyLimit) {
				return ErrItemSoldOut
			}

			item.QtySold += input.Qty
			if item.QtyLimit != nil && item.QtySold >= *item.QtyLimit {
				item.IsSoldOut = true
			}
			if err := tx.Save(&item).Error; err != nil {
				return err
			}

			lineTotal := item.PriceCents * input.Qty
			orderItem := models.OrderItem{
				OrderID:        order.ID,
				MenuItemID:     item.ID,
				Qty:            input.Qty,
				LineTotalCents: lineTotal,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
			order.Items = append(order.Items, orderItem)
			total += lineTotal
		}

		order.TotalCents = total + fee
		return tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("total_cents", order.TotalCents).Error
	})
	return order, err
}

// -------- Handlers --------

// CreateOrderHandler is the public storefront endpoint.
func CreateOrderHandler(db *gorm.DB, pub *events.Publisher, deliveryFeeCents int, qr *QRGenerator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := CreateOrder(db, req, deliveryFeeCents)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, ErrItemNotFound) {
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		// Best-effort extras after commit: pickup QR, event stream, live admin feed.
		if url, qrErr := qr.GenerateForOrder(order.ID); qrErr == nil {
			db.Model(&models.Order{}).Where("id = ?", order.ID).Update("qr_code_url", url)
			order.QRCodeURL = url
		}
		pub.OrderCreated(c.Request.Context(), order)
		BroadcastOrder(order)

		c.JSON(http.StatusCreated, order)
	}
}

// GetAllOrdersHandler lists every order, newest first.
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Customer").
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// UpdateOrderStatusHandler validates and applies a status transition, then
// returns the full updated order.
func UpdateOrderStatusHandler(db *gorm.DB, pub *events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("id")
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := models.MapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var order models.Order
		if err := db.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
			return
		}

		order.Status = newStatus
		if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("status", newStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}

		pub.OrderStatusChanged(c.Request.Context(), order)
		BroadcastOrder(order)
		c.JSON(http.StatusOK, order)
	}
}
