package checkoutcontroller

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/saludmexfood/saluds-mx-food/config"
	"github.com/saludmexfood/saluds-mx-food/models"
	"gorm.io/gorm"
)

// StripeSessionResponse is the slice of the Checkout Session object we use.
type StripeSessionResponse struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type lineItem struct {
	Name       string
	UnitAmount int
	Qty        int
}

// createStripeSession calls the Checkout Sessions API with form-encoded
// parameters and returns the session id and redirect URL.
func createStripeSession(cfg config.Config, orderID uint, items []lineItem) (string, string, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("success_url", cfg.StripeSuccessURL)
	form.Set("cancel_url", cfg.StripeCancelURL)
	form.Set("metadata[order_id]", strconv.FormatUint(uint64(orderID), 10))
	form.Set("client_reference_id", uuid.NewString())

	for i, item := range items {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[price_data][currency]", "usd")
		form.Set(prefix+"[price_data][product_data][name]", item.Name)
		form.Set(prefix+"[price_data][unit_amount]", strconv.Itoa(item.UnitAmount))
		form.Set(prefix+"[quantity]", strconv.Itoa(item.Qty))
	}

	req, err := http.NewRequest("POST", cfg.StripeAPIURL+"/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+cfg.StripeSecretKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("failed to reach Stripe: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var session StripeSessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return "", "", fmt.Errorf("failed to parse Stripe response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		if session.Error != nil {
			return "", "", fmt.Errorf("stripe error: %s", session.Error.Message)
		}
		return "", "", fmt.Errorf("stripe API error (%d): %s", resp.StatusCode, string(body))
	}
	if session.URL == "" {
		return "", "", fmt.Errorf("stripe returned empty checkout URL")
	}

	return session.ID, session.URL, nil
}

// CreateSessionHandler builds a Checkout Session for an existing order and
// returns the redirect URL. 503 when Stripe is not configured.
func CreateSessionHandler(db *gorm.DB, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.StripeSecretKey == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Stripe is not configured on this server"})
			return
		}

		var req struct {
			OrderID uint `json:"order_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var order models.Order
		if err := db.Preload("Items").First(&order, req.OrderID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
			return
		}

		var items []lineItem
		for _, oi := range order.Items {
			var menuItem models.MenuItem
			if err := db.First(&menuItem, oi.MenuItemID).Error; err != nil {
				continue
			}
			items = append(items, lineItem{
				Name:       menuItem.Name,
				UnitAmount: menuItem.PriceCents,
				Qty:        oi.Qty,
			})
		}
		if order.DeliveryFeeCents > 0 {
			items = append(items, lineItem{Name: "Delivery fee", UnitAmount: order.DeliveryFeeCents, Qty: 1})
		}
		if len(items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No valid items found in order"})
			return
		}

		sessionID, sessionURL, err := createStripeSession(cfg, order.ID, items)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("stripe_session_id", sessionID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save checkout session"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"url": sessionURL, "session_id": sessionID})
	}
}

type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID            string `json:"id"`
			PaymentIntent string `json:"payment_intent"`
			Metadata      struct {
				OrderID string `json:"order_id"`
			} `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// WebhookHandler marks the order PAID on checkout.session.completed. Signature
// verification happens in middleware.StripeWebhookAuth.
func WebhookHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var event webhookEvent
		if err := c.ShouldBindJSON(&event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook payload"})
			return
		}

		if event.Type == "checkout.session.completed" && event.Data.Object.Metadata.OrderID != "" {
			updates := map[string]interface{}{
				"status":            models.OrderStatusPaid,
				"payment_intent_id": event.Data.Object.PaymentIntent,
			}
			if err := db.Model(&models.Order{}).
				Where("id = ?", event.Data.Object.Metadata.OrderID).
				Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
