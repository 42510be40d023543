package client

import (
	"fmt"

	"github.com/saludmexfood/saluds-mx-food/models"
)

// Cart is the client-local, ephemeral item-id → quantity mapping. It never
// holds a zero or negative quantity.
type Cart struct {
	quantities map[uint]int
}

func NewCart() *Cart {
	return &Cart{quantities: make(map[uint]int)}
}

// SetQty clamps qty to ≥ 0; zero removes the entry entirely.
func (c *Cart) SetQty(itemID uint, qty int) {
	if qty <= 0 {
		delete(c.quantities, itemID)
		return
	}
	c.quantities[itemID] = qty
}

func (c *Cart) Qty(itemID uint) int {
	return c.quantities[itemID]
}

func (c *Cart) Len() int {
	return len(c.quantities)
}

func (c *Cart) Clear() {
	c.quantities = make(map[uint]int)
}

// Line is one cart entry resolved against the menu.
type Line struct {
	Item models.MenuItem
	Qty  int
}

// Lines intersects the cart with the currently available menu items; entries
// whose item went unavailable silently drop out.
func (c *Cart) Lines(items []models.MenuItem) []Line {
	var lines []Line
	for _, item := range items {
		if !item.Available {
			continue
		}
		if qty, ok := c.quantities[item.ID]; ok {
			lines = append(lines, Line{Item: item, Qty: qty})
		}
	}
	return lines
}

// Subtotal is Σ price_cents × qty over the resolved lines.
func (c *Cart) Subtotal(items []models.MenuItem) int {
	total := 0
	for _, line := range c.Lines(items) {
		total += line.Item.PriceCents * line.Qty
	}
	return total
}

// DeliveryFee is the flat fee when the cart is non-empty and the order is for
// delivery, zero otherwise.
func (c *Cart) DeliveryFee(items []models.MenuItem, delivery bool, feeCents int) int {
	if !delivery || len(c.Lines(items)) == 0 {
		return 0
	}
	return feeCents
}

// Total is subtotal plus the delivery fee.
func (c *Cart) Total(items []models.MenuItem, delivery bool, feeCents int) int {
	return c.Subtotal(items) + c.DeliveryFee(items, delivery, feeCents)
}

// OrderItems renders the cart as order line inputs for the create-order call.
func (c *Cart) OrderItems(items []models.MenuItem) []OrderItemInput {
	var out []OrderItemInput
	for _, line := range c.Lines(items) {
		out = append(out, OrderItemInput{MenuItemID: line.Item.ID, Qty: line.Qty})
	}
	return out
}

// FormatPrice renders cents as dollars: 1234 → "$12.34".
func FormatPrice(cents int) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// DisplayName resolves the customer name shown on the order list: the
// delivery-list name when present, else the order email, else the phone.
func DisplayName(order models.Order, deliveryNames map[uint]string) string {
	if name, ok := deliveryNames[order.ID]; ok && name != "" {
		return name
	}
	if order.Email != "" {
		return order.Email
	}
	return order.Phone
}
