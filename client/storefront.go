package client

import (
	"errors"
	"strings"

	"github.com/saludmexfood/saluds-mx-food/models"
)

type OrderItemInput struct {
	MenuItemID uint `json:"menu_item_id"`
	Qty        int  `json:"qty"`
}

type CreateOrderRequest struct {
	Name             string           `json:"name,omitempty"`
	Phone            string           `json:"phone"`
	Email            string           `json:"email,omitempty"`
	PickupOrDelivery string           `json:"pickup_or_delivery"`
	DeliveryAddress  *string          `json:"delivery_address,omitempty"`
	Comment          *string          `json:"comment,omitempty"`
	Items            []OrderItemInput `json:"items"`
}

type CheckoutSessionResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

// CurrentMenu fetches the published menu week, or nil when none is published.
func (c *Client) CurrentMenu() (*models.MenuWeek, error) {
	var week *models.MenuWeek
	if err := c.do("GET", "/api/public/menu/", nil, false, &week); err != nil {
		return nil, err
	}
	return week, nil
}

// CreateOrder submits a storefront order and returns the created order.
func (c *Client) CreateOrder(req CreateOrderRequest) (models.Order, error) {
	var order models.Order
	err := c.do("POST", "/api/public/orders/", req, false, &order)
	return order, err
}

// CreateCheckoutSession requests a hosted checkout session for an order.
func (c *Client) CreateCheckoutSession(orderID uint) (CheckoutSessionResponse, error) {
	var session CheckoutSessionResponse
	err := c.do("POST", "/api/public/checkout/session", map[string]uint{"order_id": orderID}, false, &session)
	return session, err
}

// ValidateContact enforces the required contact fields before any network
// call: name and phone always, a delivery address in delivery mode.
func ValidateContact(req CreateOrderRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(req.Phone) == "" {
		return errors.New("phone is required")
	}
	if strings.ToLower(req.PickupOrDelivery) == "delivery" {
		if req.DeliveryAddress == nil || strings.TrimSpace(*req.DeliveryAddress) == "" {
			return errors.New("delivery address is required")
		}
	}
	return nil
}

// Checkout runs the two-step flow: validate locally, create the order, then
// create a checkout session keyed by the returned order id. The session call
// never precedes the order call. Returns the URL to redirect the browser to.
func (c *Client) Checkout(req CreateOrderRequest) (string, error) {
	if err := ValidateContact(req); err != nil {
		return "", err
	}
	order, err := c.CreateOrder(req)
	if err != nil {
		return "", err
	}
	session, err := c.CreateCheckoutSession(order.ID)
	if err != nil {
		return "", err
	}
	return session.URL, nil
}
