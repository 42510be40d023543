package models

import (
	"errors"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"   // Created, awaiting payment
	OrderStatusConfirmed OrderStatus = "CONFIRMED" // Confirmed by staff
	OrderStatusPaid      OrderStatus = "PAID"      // Payment completed
	OrderStatusCompleted OrderStatus = "COMPLETED" // Handed over to the customer
	OrderStatusCancelled OrderStatus = "CANCELLED" // Cancelled before completion
)

// MapOrderStatus validates a raw status string against the known statuses.
func MapOrderStatus(status string) (OrderStatus, error) {
	switch strings.ToUpper(status) {
	case string(OrderStatusPending):
		return OrderStatusPending, nil
	case string(OrderStatusConfirmed):
		return OrderStatusConfirmed, nil
	case string(OrderStatusPaid):
		return OrderStatusPaid, nil
	case string(OrderStatusCompleted):
		return OrderStatusCompleted, nil
	case string(OrderStatusCancelled):
		return OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

type Order struct {
	ID               uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID       *uint       `json:"customer_id"`
	Customer         *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Phone            string      `json:"phone"`
	Email            string      `json:"email"`
	PickupOrDelivery string      `gorm:"type:VARCHAR(10);not null" json:"pickup_or_delivery"`
	DeliveryFeeCents int         `gorm:"default:0" json:"delivery_fee_cents"`
	DeliveryAddress  *string     `json:"delivery_address"`
	Comment          *string     `json:"comment"`
	TotalCents       int         `gorm:"not null;default:0" json:"total_cents"`
	Status           OrderStatus `gorm:"type:VARCHAR(20);default:'PENDING'" json:"status"`
	StripeSessionID  string      `json:"stripe_session_id,omitempty"`
	PaymentIntentID  string      `json:"payment_intent_id,omitempty"`
	QRCodeURL        string      `json:"qr_code_url,omitempty"`
	Items            []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt        time.Time   `json:"created_at"`
}

// OrderItem lines are immutable once created; line_total_cents is the unit
// price at order time multiplied by qty.
type OrderItem struct {
	ID             uint `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID        uint `gorm:"index" json:"order_id"`
	MenuItemID     uint `json:"menu_item_id"`
	Qty            int  `json:"qty"`
	LineTotalCents int  `json:"line_total_cents"`
}
